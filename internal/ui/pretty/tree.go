package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/golitedoc/pkg/ldast"
)

// Content preview limits for verbose output.
const (
	codePreviewLimit = 60
	mathPreviewLimit = 40
)

// TreeFormatter renders a parsed document's structure as indented text.
type TreeFormatter struct {
	styles  *Styles
	verbose bool
}

// NewTreeFormatter creates a new tree formatter. Verbose mode adds block
// content and source spans to the structural outline.
func NewTreeFormatter(styles *Styles, verbose bool) *TreeFormatter {
	return &TreeFormatter{
		styles:  styles,
		verbose: verbose,
	}
}

// FormatDocument renders the document outline: profile, modules, front
// matter, and one line per top-level block.
func (t *TreeFormatter) FormatDocument(doc *ldast.Document) string {
	if doc == nil {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(t.styles.Bold.Render("Profile:") + " " + doc.Profile.String() + "\n")

	if len(doc.Modules) > 0 {
		names := make([]string, len(doc.Modules))
		for i, m := range doc.Modules {
			names[i] = string(m)
		}
		builder.WriteString(t.styles.Bold.Render("Modules:") + " " + strings.Join(names, ", ") + "\n")
	}

	if t.verbose {
		builder.WriteString(t.styles.Bold.Render("Span:") + " " +
			t.styles.Dim.Render(doc.Span.String()) + "\n")
	}

	if doc.Metadata.Len() > 0 {
		word := "entries"
		if doc.Metadata.Len() == 1 {
			word = "entry"
		}
		builder.WriteString(t.styles.Bold.Render("Metadata:") +
			fmt.Sprintf(" %d %s\n", doc.Metadata.Len(), word))
		for _, entry := range doc.Metadata.Entries {
			builder.WriteString("  " + entry.Key + ": " +
				t.styles.Dim.Render(formatValue(entry.Value)) + "\n")
		}
	}

	builder.WriteString(t.styles.Bold.Render("Blocks:") + " " +
		strconv.Itoa(len(doc.Blocks)) + "\n")

	for i, block := range doc.Blocks {
		index := t.styles.Dim.Render(fmt.Sprintf("[%d]", i+1))
		builder.WriteString("  " + index + " " + describeBlock(block))
		if t.verbose {
			builder.WriteString(" " + t.styles.Dim.Render(block.Bounds().String()))
		}
		builder.WriteString("\n")
		if t.verbose {
			t.writeBlockDetail(&builder, block, 2)
		}
	}

	return builder.String()
}

// describeBlock returns a one-line description of a block.
func describeBlock(block ldast.Block) string {
	switch v := block.(type) {
	case *ldast.Heading:
		return fmt.Sprintf("Heading (level %d)", v.Level)
	case *ldast.Paragraph:
		return "Paragraph"
	case *ldast.List:
		return fmt.Sprintf("List (%s, %d items)", v.Kind, len(v.Items))
	case *ldast.CodeBlock:
		if v.Lang == "" {
			return "CodeBlock"
		}
		return fmt.Sprintf("CodeBlock (lang: %s)", v.Lang)
	case *ldast.Callout:
		if v.Title == "" {
			return fmt.Sprintf("Callout (type: %s)", v.Kind)
		}
		return fmt.Sprintf("Callout (type: %s, title: %q)", v.Kind, v.Title)
	case *ldast.Quote:
		return "Quote"
	case *ldast.Figure:
		return fmt.Sprintf("Figure (src: %s)", v.Src)
	case *ldast.Table:
		return fmt.Sprintf("Table (%d rows)", len(v.Rows))
	case *ldast.Footnotes:
		return fmt.Sprintf("Footnotes (%d defs)", len(v.Defs))
	case *ldast.MathBlock:
		return fmt.Sprintf("Math (display: %t)", v.Display)
	case *ldast.ThematicBreak:
		return "ThematicBreak"
	case *ldast.HTMLBlock:
		return "HtmlBlock"
	case *ldast.RawBlock:
		return "RawBlock"
	default:
		return string(ldast.BlockKindOf(block))
	}
}

// writeBlockDetail writes the verbose body of a block: leaf content for text
// blocks, nested structure for containers.
func (t *TreeFormatter) writeBlockDetail(builder *strings.Builder, block ldast.Block, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch v := block.(type) {
	case *ldast.Heading:
		builder.WriteString(prefix + t.styles.Dim.Render("Content:") + " " +
			t.FormatInlines(v.Content) + "\n")
	case *ldast.Paragraph:
		builder.WriteString(prefix + t.styles.Dim.Render("Content:") + " " +
			t.FormatInlines(v.Content) + "\n")
	case *ldast.List:
		for i, item := range v.Items {
			builder.WriteString(prefix + t.styles.Dim.Render(fmt.Sprintf("Item %d:", i+1)) + "\n")
			for _, nested := range item.Blocks {
				t.writeBlockDetail(builder, nested, indent+1)
			}
		}
	case *ldast.CodeBlock:
		preview := strings.ReplaceAll(previewString(v.Content, codePreviewLimit), "\n", "\\n")
		builder.WriteString(prefix + t.styles.Dim.Render("Content:") + " " + preview + "\n")
	case *ldast.Callout:
		t.writeNestedBlocks(builder, v.Blocks, indent)
	case *ldast.Quote:
		t.writeNestedBlocks(builder, v.Blocks, indent)
	case *ldast.Figure:
		if len(v.Caption) > 0 {
			builder.WriteString(prefix + t.styles.Dim.Render("Caption:") + " " +
				t.FormatInlines(v.Caption) + "\n")
		}
		t.writeNestedBlocks(builder, v.Blocks, indent)
	case *ldast.Table:
		for i, row := range v.Rows {
			marker := ""
			if row.Header {
				marker = " (header)"
			}
			cells := make([]string, len(row.Cells))
			for j, cell := range row.Cells {
				cells[j] = t.FormatInlines(cell.Content)
			}
			builder.WriteString(prefix +
				t.styles.Dim.Render(fmt.Sprintf("Row %d%s:", i+1, marker)) + " " +
				strings.Join(cells, " | ") + "\n")
		}
	case *ldast.Footnotes:
		for _, def := range v.Defs {
			builder.WriteString(prefix + t.styles.Dim.Render("[^"+def.Label+"]:") + "\n")
			for _, nested := range def.Blocks {
				t.writeBlockDetail(builder, nested, indent+1)
			}
		}
	case *ldast.MathBlock:
		builder.WriteString(prefix + t.styles.Dim.Render("Content:") + " " +
			previewString(v.Content, mathPreviewLimit) + "\n")
	}
}

// writeNestedBlocks writes numbered nested block bodies for container blocks.
func (t *TreeFormatter) writeNestedBlocks(builder *strings.Builder, blocks []ldast.Block, indent int) {
	prefix := strings.Repeat("  ", indent)
	for i, nested := range blocks {
		builder.WriteString(prefix + t.styles.Dim.Render(fmt.Sprintf("Block %d:", i+1)) + "\n")
		t.writeBlockDetail(builder, nested, indent+1)
	}
}

// FormatInlines reconstructs the surface form of an inline sequence.
func (t *TreeFormatter) FormatInlines(content []ldast.Inline) string {
	var builder strings.Builder

	for _, in := range content {
		switch v := in.(type) {
		case *ldast.Text:
			builder.WriteString(v.Content)
		case *ldast.Emphasis:
			builder.WriteString("*" + t.FormatInlines(v.Children) + "*")
		case *ldast.Strong:
			builder.WriteString("**" + t.FormatInlines(v.Children) + "**")
		case *ldast.Strikethrough:
			builder.WriteString("~~" + t.FormatInlines(v.Children) + "~~")
		case *ldast.CodeSpan:
			builder.WriteString("`" + v.Content + "`")
		case *ldast.Link:
			builder.WriteString("[[" + t.FormatInlines(v.Label) + "|" + v.Destination + "]]")
		case *ldast.AutoLink:
			builder.WriteString("<" + v.Destination + ">")
		case *ldast.FootnoteRef:
			builder.WriteString("[^" + v.Label + "]")
		case *ldast.HardBreak:
			builder.WriteString("\\n")
		case *ldast.SoftBreak:
			builder.WriteString(" ")
		}
	}

	return builder.String()
}

// formatValue renders a front-matter value in literal form.
func formatValue(v ldast.Value) string {
	switch val := v.(type) {
	case ldast.StringValue:
		return strconv.Quote(string(val))
	case ldast.IntValue:
		return strconv.FormatInt(int64(val), 10)
	case ldast.FloatValue:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case ldast.BoolValue:
		return strconv.FormatBool(bool(val))
	case ldast.ListValue:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}

// previewString truncates s to limit runes, marking the cut with an ellipsis.
func previewString(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

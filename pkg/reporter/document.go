package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/runner"
)

// DocumentOutput is the top-level JSON structure for parsed documents.
type DocumentOutput struct {
	Version   string         `json:"version"`
	Documents []DocumentJSON `json:"documents"`
}

// DocumentJSON is the serialized form of one parsed document.
type DocumentJSON struct {
	Path     string         `json:"path"`
	Profile  string         `json:"profile"`
	Engine   string         `json:"engine"`
	Modules  []string       `json:"modules,omitempty"`
	Metadata []MetadataJSON `json:"metadata,omitempty"`
	Span     ldast.Span     `json:"span"`
	Blocks   []BlockJSON    `json:"blocks"`
}

// MetadataJSON is one front-matter entry. Value is the plain Go value of the
// typed entry: string, int64, float64, bool, or a list of those.
type MetadataJSON struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// BlockJSON is the type-tagged serialized form of a block. Only the fields
// meaningful for the tagged type are populated.
type BlockJSON struct {
	Type    string         `json:"type"`
	Span    ldast.Span     `json:"span"`
	Level   int            `json:"level,omitempty"`
	Kind    string         `json:"kind,omitempty"`
	Title   string         `json:"title,omitempty"`
	Lang    string         `json:"lang,omitempty"`
	Literal string         `json:"literal,omitempty"`
	Src     string         `json:"src,omitempty"`
	Alt     string         `json:"alt,omitempty"`
	Display *bool          `json:"display,omitempty"`
	Start   *int64         `json:"start,omitempty"`
	Content []InlineJSON   `json:"content,omitempty"`
	Caption []InlineJSON   `json:"caption,omitempty"`
	Items   []ItemJSON     `json:"items,omitempty"`
	Blocks  []BlockJSON    `json:"blocks,omitempty"`
	Rows    []RowJSON      `json:"rows,omitempty"`
	Defs    []FootnoteJSON `json:"defs,omitempty"`
}

// ItemJSON is one list item.
type ItemJSON struct {
	Span   ldast.Span  `json:"span"`
	Blocks []BlockJSON `json:"blocks"`
}

// RowJSON is one table row.
type RowJSON struct {
	Header bool       `json:"header"`
	Span   ldast.Span `json:"span"`
	Cells  []CellJSON `json:"cells"`
}

// CellJSON is one table cell.
type CellJSON struct {
	Span    ldast.Span   `json:"span"`
	Content []InlineJSON `json:"content"`
}

// FootnoteJSON is one footnote definition.
type FootnoteJSON struct {
	Label  string      `json:"label"`
	Span   ldast.Span  `json:"span"`
	Blocks []BlockJSON `json:"blocks"`
}

// InlineJSON is the type-tagged serialized form of an inline node.
type InlineJSON struct {
	Type        string       `json:"type"`
	Span        ldast.Span   `json:"span"`
	Content     string       `json:"content,omitempty"`
	Destination string       `json:"destination,omitempty"`
	Ref         string       `json:"ref,omitempty"`
	Label       []InlineJSON `json:"label,omitempty"`
	Children    []InlineJSON `json:"children,omitempty"`
}

// DocumentJSONReporter serializes parsed documents as JSON. Recovered
// diagnostics go to the error writer as plain warnings so stdout stays
// valid JSON.
type DocumentJSONReporter struct {
	opts Options
	bw   *bufio.Writer
	ew   io.Writer
}

// NewDocumentJSONReporter creates a new document JSON reporter.
func NewDocumentJSONReporter(opts Options) *DocumentJSONReporter {
	ew := opts.ErrorWriter
	if ew == nil {
		ew = io.Discard
	}

	return &DocumentJSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
		ew:   ew,
	}
}

// Report implements Reporter.
func (r *DocumentJSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := DocumentOutput{
		Version:   jsonSchemaVersion,
		Documents: make([]DocumentJSON, 0),
	}

	var total int

	if result != nil {
		if len(result.Files) > 0 {
			output.Documents = make([]DocumentJSON, 0, len(result.Files))
		}

		for _, file := range result.Files {
			if file.Error != nil {
				fmt.Fprintf(r.ew, "%s: error: %v\n", file.Path, file.Error)
				continue
			}

			if file.Document == nil {
				continue
			}

			total += r.writeWarnings(file)
			output.Documents = append(output.Documents, documentToJSON(file))
		}
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return total, nil
}

// writeWarnings emits recovered parse errors as plain text on the error
// writer and returns how many there were.
func (r *DocumentJSONReporter) writeWarnings(file runner.FileOutcome) int {
	if len(file.Diagnostics) == 0 {
		return 0
	}

	lines := ldast.BuildLines(string(file.Content))

	for _, diag := range file.Diagnostics {
		pos := diag.Position(lines)
		fmt.Fprintf(r.ew, "warning: %s:%d:%d: %s\n", file.Path, pos.Line, pos.Column, diag.Message)
	}

	return len(file.Diagnostics)
}

func documentToJSON(file runner.FileOutcome) DocumentJSON {
	doc := file.Document

	out := DocumentJSON{
		Path:    file.Path,
		Profile: doc.Profile.String(),
		Engine:  string(file.Engine),
		Span:    doc.Span,
		Blocks:  blocksToJSON(doc.Blocks),
	}

	for _, mod := range doc.Modules {
		out.Modules = append(out.Modules, string(mod))
	}

	if doc.Metadata != nil {
		out.Metadata = make([]MetadataJSON, 0, len(doc.Metadata.Entries))
		for _, entry := range doc.Metadata.Entries {
			out.Metadata = append(out.Metadata, MetadataJSON{
				Key:   entry.Key,
				Value: valueToJSON(entry.Value),
			})
		}
	}

	return out
}

func blocksToJSON(blocks []ldast.Block) []BlockJSON {
	out := make([]BlockJSON, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, blockToJSON(block))
	}
	return out
}

func blockToJSON(block ldast.Block) BlockJSON {
	out := BlockJSON{
		Type: string(ldast.BlockKindOf(block)),
		Span: block.Bounds(),
	}

	switch v := block.(type) {
	case *ldast.Heading:
		out.Level = v.Level
		out.Content = inlinesToJSON(v.Content)
	case *ldast.Paragraph:
		out.Content = inlinesToJSON(v.Content)
	case *ldast.List:
		out.Kind = string(v.Kind)
		out.Start = v.Start
		out.Items = make([]ItemJSON, 0, len(v.Items))
		for _, item := range v.Items {
			out.Items = append(out.Items, ItemJSON{
				Span:   item.Span,
				Blocks: blocksToJSON(item.Blocks),
			})
		}
	case *ldast.CodeBlock:
		out.Lang = v.Lang
		out.Literal = v.Content
	case *ldast.Callout:
		out.Kind = v.Kind
		out.Title = v.Title
		out.Blocks = blocksToJSON(v.Blocks)
	case *ldast.Quote:
		out.Blocks = blocksToJSON(v.Blocks)
	case *ldast.Figure:
		out.Src = v.Src
		out.Alt = v.Alt
		if len(v.Caption) > 0 {
			out.Caption = inlinesToJSON(v.Caption)
		}
		if len(v.Blocks) > 0 {
			out.Blocks = blocksToJSON(v.Blocks)
		}
	case *ldast.Table:
		out.Rows = make([]RowJSON, 0, len(v.Rows))
		for _, row := range v.Rows {
			rowJSON := RowJSON{
				Header: row.Header,
				Span:   row.Span,
				Cells:  make([]CellJSON, 0, len(row.Cells)),
			}
			for _, cell := range row.Cells {
				rowJSON.Cells = append(rowJSON.Cells, CellJSON{
					Span:    cell.Span,
					Content: inlinesToJSON(cell.Content),
				})
			}
			out.Rows = append(out.Rows, rowJSON)
		}
	case *ldast.Footnotes:
		out.Defs = make([]FootnoteJSON, 0, len(v.Defs))
		for _, def := range v.Defs {
			out.Defs = append(out.Defs, FootnoteJSON{
				Label:  def.Label,
				Span:   def.Span,
				Blocks: blocksToJSON(def.Blocks),
			})
		}
	case *ldast.MathBlock:
		display := v.Display
		out.Display = &display
		out.Literal = v.Content
	case *ldast.HTMLBlock:
		out.Literal = v.Content
	case *ldast.RawBlock:
		out.Literal = v.Content
	}

	return out
}

func inlinesToJSON(content []ldast.Inline) []InlineJSON {
	out := make([]InlineJSON, 0, len(content))
	for _, node := range content {
		out = append(out, inlineToJSON(node))
	}
	return out
}

func inlineToJSON(node ldast.Inline) InlineJSON {
	out := InlineJSON{
		Type: string(ldast.InlineKindOf(node)),
		Span: node.Bounds(),
	}

	switch v := node.(type) {
	case *ldast.Text:
		out.Content = v.Content
	case *ldast.Emphasis:
		out.Children = inlinesToJSON(v.Children)
	case *ldast.Strong:
		out.Children = inlinesToJSON(v.Children)
	case *ldast.Strikethrough:
		out.Children = inlinesToJSON(v.Children)
	case *ldast.CodeSpan:
		out.Content = v.Content
	case *ldast.Link:
		out.Label = inlinesToJSON(v.Label)
		out.Destination = v.Destination
	case *ldast.AutoLink:
		out.Destination = v.Destination
	case *ldast.FootnoteRef:
		out.Ref = v.Label
	}

	return out
}

func valueToJSON(value ldast.Value) any {
	switch v := value.(type) {
	case ldast.StringValue:
		return string(v)
	case ldast.IntValue:
		return int64(v)
	case ldast.FloatValue:
		return float64(v)
	case ldast.BoolValue:
		return bool(v)
	case ldast.ListValue:
		items := make([]any, 0, len(v))
		for _, item := range v {
			items = append(items, valueToJSON(item))
		}
		return items
	default:
		return nil
	}
}

package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/golitedoc/internal/ui/pretty"
	"github.com/yaklabco/golitedoc/pkg/stats"
)

// Table layout constants for statistics output.
const (
	statsNumColWidth = 8  // Width of numeric columns.
	statsNumColumns  = 4  // Blocks, Inlines, Words, Errors.
	minFileColWidth  = 30 // Narrowest the path column is allowed to get.
	maxFileColWidth  = 70 // Widest the path column is allowed to get.
	totalsLabelWidth = 18 // Width of the label column in the totals block.
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// StatsTextRenderer formats document statistics as a styled table with a
// totals block.
type StatsTextRenderer struct {
	opts      Options
	styles    *pretty.Styles
	out       io.Writer
	termWidth int
}

// NewStatsTextRenderer creates a new text statistics renderer.
func NewStatsTextRenderer(opts Options) *StatsTextRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &StatsTextRenderer{
		opts:      opts,
		styles:    pretty.NewStyles(colorEnabled),
		out:       opts.Writer,
		termWidth: getTerminalWidth(opts.Writer),
	}
}

// Render implements Renderer.
func (r *StatsTextRenderer) Render(_ context.Context, report *stats.Report) error {
	if report == nil || report.Totals.Files == 0 {
		fmt.Fprintln(r.out, r.styles.Dim.Render("No documents analyzed."))
		return nil
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Document Statistics"))
	fmt.Fprintln(r.out)

	if len(report.ByFile) > 0 {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
	}

	r.renderTotals(report.Totals)

	return nil
}

// fileColumnWidth sizes the path column from the terminal width, keeping the
// numeric columns intact.
func (r *StatsTextRenderer) fileColumnWidth() int {
	width := r.termWidth - statsNumColumns*(statsNumColWidth+1)
	if width < minFileColWidth {
		return minFileColWidth
	}
	if width > maxFileColWidth {
		return maxFileColWidth
	}
	return width
}

func (r *StatsTextRenderer) renderFileTable(files []stats.FileStats) {
	fileCol := r.fileColumnWidth()
	separator := strings.Repeat("─", fileCol+statsNumColumns*(statsNumColWidth+1))

	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(separator))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileCol)),
		r.styles.TableHeader.Render(padLeft("Blocks", statsNumColWidth)),
		r.styles.TableHeader.Render(padLeft("Inlines", statsNumColWidth)),
		r.styles.TableHeader.Render(padLeft("Words", statsNumColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", statsNumColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(separator))

	// Rows
	for _, file := range files {
		path := file.Path
		if len(path) > fileCol-2 {
			path = "…" + path[len(path)-(fileCol-3):]
		}

		// Pad first, then style
		paddedPath := padRight(path, fileCol)
		styledPath := paddedPath
		if file.Diagnostics > 0 {
			styledPath = r.styles.TableErrorRow.Render(paddedPath)
		}

		errCount := padLeft(strconv.Itoa(file.Diagnostics), statsNumColWidth)
		if file.Diagnostics > 0 {
			errCount = r.styles.Error.Render(errCount)
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			styledPath,
			padLeft(strconv.Itoa(file.Blocks), statsNumColWidth),
			padLeft(strconv.Itoa(file.Inlines), statsNumColWidth),
			padLeft(strconv.Itoa(file.Words), statsNumColWidth),
			errCount,
		)
	}
}

func (r *StatsTextRenderer) renderTotals(totals stats.Totals) {
	fmt.Fprintln(r.out, r.styles.Bold.Render("Totals"))

	r.totalLine("Files analyzed:", totals.Files)
	r.totalLine("Parsed:", totals.Parsed)
	if totals.Errored > 0 {
		fmt.Fprintf(r.out, "  %s %s\n",
			padRight("Unreadable:", totalsLabelWidth),
			r.styles.Failure.Render(strconv.Itoa(totals.Errored)),
		)
	}
	r.totalLine("Blocks:", totals.Blocks)
	r.totalLine("Inlines:", totals.Inlines)
	r.totalLine("Words:", totals.Words)

	errCount := strconv.Itoa(totals.Diagnostics)
	if totals.Diagnostics > 0 {
		errCount = r.styles.Error.Render(errCount)
	}
	fmt.Fprintf(r.out, "  %s %s\n", padRight("Parse errors:", totalsLabelWidth), errCount)

	if len(totals.BlockKinds) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Bold.Render("Block kinds"))
		r.renderBreakdown(totals.BlockKinds)
	}

	if len(totals.Languages) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Bold.Render("Code languages"))
		r.renderBreakdown(totals.Languages)
	}
}

func (r *StatsTextRenderer) totalLine(label string, value int) {
	fmt.Fprintf(r.out, "  %s %d\n", padRight(label, totalsLabelWidth), value)
}

// renderBreakdown prints a name-to-count map sorted by count descending,
// then name ascending for equal counts.
func (r *StatsTextRenderer) renderBreakdown(counts map[string]int) {
	type entry struct {
		name  string
		count int
	}

	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name: name, count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	for _, e := range entries {
		fmt.Fprintf(r.out, "  %s %d\n", padRight(e.name+":", totalsLabelWidth), e.count)
	}
}

// StatsJSONRenderer serializes the statistics report as JSON.
type StatsJSONRenderer struct {
	opts Options
	out  io.Writer
}

// NewStatsJSONRenderer creates a new JSON statistics renderer.
func NewStatsJSONRenderer(opts Options) *StatsJSONRenderer {
	return &StatsJSONRenderer{
		opts: opts,
		out:  opts.Writer,
	}
}

// Render implements Renderer.
func (r *StatsJSONRenderer) Render(_ context.Context, report *stats.Report) error {
	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}

package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/golitedoc/internal/ui/pretty"
	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/litedoc"
	"github.com/yaklabco/golitedoc/pkg/runner"
)

// TextReporter formats validation results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to validate."))
		}
		return 0, nil
	}

	var total int

	if r.opts.GroupByFile {
		total = r.reportGrouped(ctx, result)
	} else {
		total = r.reportFlat(ctx, result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportGrouped writes diagnostics grouped by file.
func (r *TextReporter) reportGrouped(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		// Handle file errors
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if len(file.Diagnostics) == 0 {
			continue
		}

		// File header
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(file.Diagnostics)))

		source := string(file.Content)
		lines := ldast.BuildLines(source)

		for _, diag := range file.Diagnostics {
			fmt.Fprint(r.bw, r.formatDiagnostic(file.Path, diag, source, lines))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes diagnostics without grouping.
func (r *TextReporter) reportFlat(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		// Handle file errors
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if len(file.Diagnostics) == 0 {
			continue
		}

		source := string(file.Content)
		lines := ldast.BuildLines(source)

		for _, diag := range file.Diagnostics {
			fmt.Fprint(r.bw, r.formatDiagnostic(file.Path, diag, source, lines))
			total++
		}
	}

	return total
}

// formatDiagnostic resolves a diagnostic against the file's line index and
// renders it, quoting the offending source line when context is enabled.
func (r *TextReporter) formatDiagnostic(path string, diag litedoc.ParseError, source string, lines ldast.Lines) string {
	pos := diag.Position(lines)

	var sourceLine string
	if r.opts.ShowContext {
		sourceLine = lines.Content(source, pos.Line)
	}

	return r.styles.FormatDiagnostic(pretty.Diagnostic{
		Path:    path,
		Line:    pos.Line,
		Column:  pos.Column,
		Kind:    string(diag.Kind),
		Message: diag.Message,
	}, r.opts.ShowContext, sourceLine)
}

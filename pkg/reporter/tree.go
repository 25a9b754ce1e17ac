package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/golitedoc/internal/ui/pretty"
	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/runner"
)

// TreeReporter prints parsed document outlines as styled text. Recovered
// diagnostics go to the error writer so stdout stays parseable.
type TreeReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TreeFormatter
	bw        *bufio.Writer
	ew        io.Writer
}

// NewTreeReporter creates a new document tree reporter.
func NewTreeReporter(opts Options) *TreeReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	ew := opts.ErrorWriter
	if ew == nil {
		ew = io.Discard
	}

	return &TreeReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTreeFormatter(styles, opts.Verbose),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
		ew:        ew,
	}
}

// Report implements Reporter.
func (r *TreeReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to parse."))
		return 0, nil
	}

	var total int
	first := true

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.ew, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Document == nil {
			continue
		}

		total += r.writeWarnings(file)

		if !first {
			fmt.Fprintln(r.bw)
		}
		first = false

		fmt.Fprintln(r.bw, r.styles.FilePath.Render(file.Path))
		fmt.Fprint(r.bw, r.formatter.FormatDocument(file.Document))
	}

	return total, nil
}

// writeWarnings emits recovered parse errors to the error writer and returns
// how many there were.
func (r *TreeReporter) writeWarnings(file runner.FileOutcome) int {
	if len(file.Diagnostics) == 0 {
		return 0
	}

	lines := ldast.BuildLines(string(file.Content))

	for _, diag := range file.Diagnostics {
		pos := diag.Position(lines)
		fmt.Fprint(r.ew, r.styles.FormatWarning(pretty.Diagnostic{
			Path:    file.Path,
			Line:    pos.Line,
			Column:  pos.Column,
			Kind:    string(diag.Kind),
			Message: diag.Message,
		}))
	}

	return len(file.Diagnostics)
}

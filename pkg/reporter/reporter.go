// Package reporter renders parse results: diagnostics, document trees,
// and run statistics, as styled text or JSON.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/golitedoc/pkg/runner"
	"github.com/yaklabco/golitedoc/pkg/stats"
)

// Compile-time interface check for statsFacade.
var _ Reporter = (*statsFacade)(nil)

// Reporter formats and writes parse results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of diagnostics reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// statsFacade bridges the Reporter interface to Renderer implementations.
type statsFacade struct {
	renderer  Renderer
	statsOpts stats.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *statsFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := stats.Analyze(result, f.statsOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Diagnostics, nil
}

// newStatsFacade creates a facade wrapping a Renderer.
func newStatsFacade(renderer Renderer, opts Options) *statsFacade {
	return &statsFacade{
		renderer: renderer,
		statsOpts: stats.Options{
			IncludeKinds:     true,
			IncludeLanguages: true,
			SortBy:           opts.SortBy,
			SortDesc:         opts.SortDesc,
			WorkingDir:       opts.WorkingDir,
		},
	}
}

// New creates a Reporter for validation output in the specified format.
func New(opts Options) (Reporter, error) {
	// Default writer to stdout if not specified
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	// Validate and handle format
	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// NewDocument creates a Reporter that prints parsed document trees.
// The summary format has no tree rendition and is rejected.
func NewDocument(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTreeReporter(opts), nil
	case FormatJSON:
		return NewDocumentJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported document format: %s", format)
	}
}

// NewStats creates a Reporter that prints aggregate document statistics.
func NewStats(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return newStatsFacade(NewStatsTextRenderer(opts), opts), nil
	case FormatJSON:
		return newStatsFacade(NewStatsJSONRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unsupported stats format: %s", format)
	}
}

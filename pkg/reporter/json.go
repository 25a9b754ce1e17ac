package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/runner"
)

// jsonSchemaVersion identifies the JSON output schema.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure for validation results.
type JSONOutput struct {
	Version string           `json:"version"`
	Valid   bool             `json:"valid"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's validation result.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Profile     string           `json:"profile"`
	Engine      string           `json:"engine"`
	Valid       bool             `json:"valid"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic represents a single recovered parse error.
type JSONDiagnostic struct {
	Kind    string     `json:"kind"`
	Message string     `json:"message"`
	Line    int        `json:"line"`
	Column  int        `json:"column"`
	Span    ldast.Span `json:"span"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked         int            `json:"filesChecked"`
	FilesParsed          int            `json:"filesParsed"`
	FilesErrored         int            `json:"filesErrored"`
	FilesWithDiagnostics int            `json:"filesWithDiagnostics"`
	DiagnosticsTotal     int            `json:"diagnosticsTotal"`
	ByKind               map[string]int `json:"byKind"`
}

// JSONReporter formats validation results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.DiagnosticsTotal, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Valid:   true,
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByKind: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	// Pre-allocate if we have files
	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        file.Path,
			Profile:     file.Profile.String(),
			Engine:      string(file.Engine),
			Valid:       true,
			Diagnostics: make([]JSONDiagnostic, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			fileResult.Valid = false
			output.Summary.FilesErrored++
		}

		if file.Document != nil {
			output.Summary.FilesParsed++
		}

		if len(file.Diagnostics) > 0 {
			lines := ldast.BuildLines(string(file.Content))

			for _, diag := range file.Diagnostics {
				pos := diag.Position(lines)
				fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
					Kind:    string(diag.Kind),
					Message: diag.Message,
					Line:    pos.Line,
					Column:  pos.Column,
					Span:    diag.Span,
				})

				output.Summary.DiagnosticsTotal++
				output.Summary.ByKind[string(diag.Kind)]++
			}

			fileResult.Valid = false
			output.Summary.FilesWithDiagnostics++
		}

		output.Valid = output.Valid && fileResult.Valid
		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}

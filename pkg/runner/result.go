package runner

import (
	"github.com/yaklabco/golitedoc/pkg/config"
	"github.com/yaklabco/golitedoc/pkg/ldast"
	"github.com/yaklabco/golitedoc/pkg/litedoc"
)

// FileOutcome is the result of parsing a single file.
type FileOutcome struct {
	// Path is the absolute path of the file that was processed.
	Path string

	// Content is the raw file content. Reporters use it to resolve spans
	// to line/column positions and to quote source context.
	Content []byte

	// Profile is the parse profile the file was parsed under, either
	// forced by configuration or inferred from the file extension.
	Profile ldast.Profile

	// Engine is the front end that parsed the file.
	Engine config.Engine

	// Document is the parsed tree. Nil only when Error is set.
	Document *ldast.Document

	// Diagnostics holds the problems the parser recovered from, in source
	// order. Always empty for the goldmark engine, which has no recovery
	// reporting.
	Diagnostics litedoc.ParseErrors

	// Error is set when the file could not be read or parsed at all.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files parsed to a document.
	FilesParsed int

	// FilesErrored is the number of files that could not be processed.
	FilesErrored int

	// FilesWithDiagnostics is the number of files with at least one
	// parse diagnostic.
	FilesWithDiagnostics int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsByKind maps parse error kinds to counts.
	DiagnosticsByKind map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasDiagnostics reports whether any file produced parse diagnostics.
func (r *Result) HasDiagnostics() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether any file failed outright (unreadable, or a
// front end returned an error instead of a document).
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DiagnosticsByKind: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Document == nil {
		return
	}

	r.Stats.FilesParsed++

	if len(outcome.Diagnostics) == 0 {
		return
	}

	r.Stats.FilesWithDiagnostics++
	r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)
	for i := range outcome.Diagnostics {
		r.Stats.DiagnosticsByKind[string(outcome.Diagnostics[i].Kind)]++
	}
}

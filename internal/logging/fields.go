// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldProfile  = "profile"
	FieldEngine   = "engine"
	FieldFormat   = "format"
	FieldMaxDepth = "max_depth"
	FieldJobs     = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithErrors = "files_with_errors"
	FieldErrorsTotal     = "errors_total"
	FieldBlocksTotal     = "blocks_total"
	FieldWordsTotal      = "words_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Parse fields.
	FieldKind     = "kind"
	FieldSpan     = "span"
	FieldLine     = "line"
	FieldLanguage = "language"
)

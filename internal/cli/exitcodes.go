package cli

import (
	"errors"
	"io/fs"
)

// Exit codes for golitedoc. The high codes follow sysexits.h.
const (
	// ExitSuccess indicates successful execution with no diagnostics.
	ExitSuccess = 0

	// ExitDiagnostics indicates validation completed but found diagnostics.
	ExitDiagnostics = 1

	// ExitUsage indicates invalid command-line usage.
	ExitUsage = 2

	// ExitNoInput indicates no input files were found.
	ExitNoInput = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors commands return to signal an exit code to main.
var (
	// ErrUsage marks command-line usage errors.
	ErrUsage = errors.New("invalid usage")

	// ErrNoInput is returned when discovery finds no input files.
	ErrNoInput = errors.New("no input files found")

	// ErrFilesUnreadable is returned when one or more input files could
	// not be read. The per-file errors have already been reported.
	ErrFilesUnreadable = errors.New("input files unreadable")
)

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrDiagnosticsFound):
		return ExitDiagnostics
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrNoInput), errors.Is(err, fs.ErrNotExist):
		return ExitNoInput
	case errors.Is(err, ErrFilesUnreadable), errors.Is(err, fs.ErrExist):
		return ExitIOError
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return ExitIOError
	}

	return ExitInternalError
}

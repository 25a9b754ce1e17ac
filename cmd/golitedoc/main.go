// Package main is the entry point for the golitedoc CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/golitedoc/internal/cli"
	"github.com/yaklabco/golitedoc/internal/logging"
)

// Build-time variables injected via ldflags (see stavefile.go).
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Build and execute the root command.
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Diagnostics and unreadable files were already reported by the
		// command; everything else gets logged here because cobra errors
		// are silenced.
		if !errors.Is(err, cli.ErrDiagnosticsFound) && !errors.Is(err, cli.ErrFilesUnreadable) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeForError(err)
	}

	return cli.ExitSuccess
}

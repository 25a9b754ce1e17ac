// Package cli provides the Cobra command structure for golitedoc.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golitedoc/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root golitedoc command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "golitedoc",
		Short: "A deterministic parser for LiteDoc and Markdown documents",
		Long: `golitedoc parses LiteDoc and Markdown documents into a typed block and
inline tree with byte-accurate source spans.

It supports three profiles (litedoc, md, md-strict), front-matter
metadata, and directive containers, and recovers from structural errors
so a document is always produced. Results render as styled text for
humans or as JSON for tooling.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Flag parse failures map to the usage exit code.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

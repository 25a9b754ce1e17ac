package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golitedoc/internal/logging"
	"github.com/yaklabco/golitedoc/pkg/reporter"
)

func newParseCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Parse documents and print their structure",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addRunFlags(cmd, flags, "text, json")

	return cmd
}

const parseLongDescription = `Parse LiteDoc and Markdown documents into a typed block tree.

By default, parses all .ld, .litedoc, .md, and .markdown files in the
current directory and subdirectories. Specify paths to parse specific
files or directories. Structural errors are recovered and reported as
warnings on stderr; a document is always produced and the command still
exits 0.

Examples:
  golitedoc parse                       # Parse current directory
  golitedoc parse docs/ guide.ld        # Parse specific paths
  golitedoc parse --verbose guide.ld    # Include spans and inline content
  golitedoc parse --format json docs/   # Full document tree as JSON
  golitedoc parse --profile md notes.ld # Force the md profile`

func runParse(cmd *cobra.Command, args []string, flags *runFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cfg, workDir, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	result, err := parseDocuments(ctx, args, cfg, workDir)
	if err != nil {
		return err
	}

	if result.Stats.FilesDiscovered == 0 {
		return ErrNoInput
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	rep, err := reporter.NewDocument(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		Compact:     flags.compact,
		Verbose:     cfg.Verbose,
		WorkingDir:  workDir,
	})
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	// Recovered diagnostics are not failures for parse, unreadable files are.
	if result.HasErrors() {
		return ErrFilesUnreadable
	}

	return nil
}

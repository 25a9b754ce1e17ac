package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golitedoc/internal/logging"
	"github.com/yaklabco/golitedoc/pkg/reporter"
)

// ErrDiagnosticsFound is returned when validated documents contain parse
// diagnostics.
var ErrDiagnosticsFound = errors.New("diagnostics found")

type validateFlags struct {
	runFlags
	noContext bool
}

func newValidateCommand() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Check documents for structural errors",
		Long:  validateLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, flags)
		},
	}

	addRunFlags(cmd, &flags.runFlags, "text, json, summary")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")

	return cmd
}

const validateLongDescription = `Check LiteDoc and Markdown documents for structural errors.

Parsing recovers from every error, so all diagnostics in a file are
reported in one pass: unterminated containers, unknown directives,
malformed tables and metadata, bad heading levels and list markers, and
nesting beyond the depth limit. The command exits 1 when any document
has diagnostics.

Examples:
  golitedoc validate                    # Validate current directory
  golitedoc validate docs/ README.md    # Validate specific paths
  golitedoc validate --format json      # Machine-readable report for CI
  golitedoc validate --format summary   # Totals only
  golitedoc validate --no-context       # Hide source lines`

func runValidate(cmd *cobra.Command, args []string, flags *validateFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cfg, workDir, err := resolveConfig(cmd, &flags.runFlags)
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

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	count, err := rep.Report(ctx, result)
	if err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if count > 0 {
		return ErrDiagnosticsFound
	}
	if result.HasErrors() {
		return ErrFilesUnreadable
	}

	return nil
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golitedoc/internal/logging"
	"github.com/yaklabco/golitedoc/pkg/reporter"
	"github.com/yaklabco/golitedoc/pkg/stats"
)

type statsFlags struct {
	runFlags
	sortBy string
	desc   bool
}

func newStatsCommand() *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Show document statistics",
		Long:  statsLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, flags)
		},
	}

	addRunFlags(cmd, &flags.runFlags, "text, json")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "alpha", "sort per-file rows by: alpha, words, blocks")
	cmd.Flags().BoolVar(&flags.desc, "desc", false, "sort in descending order")

	return cmd
}

const statsLongDescription = `Show statistics for LiteDoc and Markdown documents.

Counts blocks by kind, inlines, words, and code block languages for
each file and in aggregate. Fenced code without a language tag is
classified by content analysis.

Examples:
  golitedoc stats                      # Stats for current directory
  golitedoc stats docs/ --sort blocks  # Order rows by block count
  golitedoc stats --sort words --desc  # Largest documents first
  golitedoc stats --format json        # Machine-readable report`

func runStats(cmd *cobra.Command, args []string, flags *statsFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	sortBy := stats.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return errors.Join(ErrUsage,
			fmt.Errorf("invalid sort field %q; must be one of: alpha, words, blocks", flags.sortBy))
	}

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

	rep, err := reporter.NewStats(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		Compact:     flags.compact,
		SortBy:      sortBy,
		SortDesc:    flags.desc,
		WorkingDir:  workDir,
	})
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return ErrFilesUnreadable
	}

	return nil
}

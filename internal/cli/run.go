package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golitedoc/internal/configloader"
	"github.com/yaklabco/golitedoc/internal/logging"
	"github.com/yaklabco/golitedoc/pkg/config"
	"github.com/yaklabco/golitedoc/pkg/runner"
)

// runFlags holds the flags shared by the parse, validate, and stats commands.
type runFlags struct {
	format   string
	profile  string
	engine   string
	maxDepth int
	ignore   []string
	jobs     int
	verbose  bool
	compact  bool
}

// addRunFlags registers the shared flags on a command. formats documents
// the output formats the command accepts.
func addRunFlags(cmd *cobra.Command, flags *runFlags, formats string) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: "+formats)
	cmd.Flags().StringVar(&flags.profile, "profile", "",
		"force a parse profile: litedoc, md, md-strict (default: infer from extension)")
	cmd.Flags().StringVar(&flags.engine, "engine", "",
		"parsing front end: litedoc, goldmark")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", 0,
		"container nesting limit (0 = engine default)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = one per CPU)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false,
		"verbose output: spans, inline content, debug logging")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "single-line JSON output")
}

// commandContext returns the command's context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

// resolveConfig merges CLI flags with discovered configuration files and
// environment variables. Only flags the user actually set override the
// file-based configuration. Returns the merged config and the working
// directory the run resolves paths against.
func resolveConfig(cmd *cobra.Command, flags *runFlags) (*config.Config, string, error) {
	logger := logging.Default()

	// Map string flags to typed config values. Guarding on Changed keeps
	// flag defaults from shadowing values set in config files.
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("profile") {
		cliCfg.Profile = flags.profile
	}
	if cmd.Flags().Changed("engine") {
		cliCfg.Engine = config.Engine(flags.engine)
	}
	if cmd.Flags().Changed("max-depth") {
		cliCfg.MaxDepth = flags.maxDepth
	}
	if cmd.Flags().Changed("color") {
		if colorMode, err := cmd.Flags().GetString("color"); err == nil {
			cliCfg.Color = config.ColorMode(colorMode)
		}
	}
	cliCfg.Ignore = flags.ignore
	cliCfg.Jobs = flags.jobs
	cliCfg.Verbose = flags.verbose

	// Reject bad flag values here so they map to the usage exit code
	// instead of surfacing as config load failures.
	if v := configloader.Validate(cliCfg); !v.Valid() {
		return nil, "", errors.Join(ErrUsage, &v.Errors[0])
	}

	ctx := commandContext(cmd)

	// The explicit config path comes from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	finalCfg := loadResult.Config
	if finalCfg.Verbose {
		logging.SetLevel("debug")
	}

	logger.Debug("configuration loaded",
		logging.FieldProfile, finalCfg.Profile,
		logging.FieldEngine, finalCfg.Engine,
		logging.FieldFormat, finalCfg.Format,
		logging.FieldMaxDepth, finalCfg.MaxDepth,
		logging.FieldJobs, finalCfg.Jobs,
	)

	return finalCfg, workDir, nil
}

// parseDocuments discovers and parses the given paths with the merged
// configuration.
func parseDocuments(ctx context.Context, args []string, cfg *config.Config, workDir string) (*runner.Result, error) {
	logger := logging.Default()

	opts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Config:       cfg,
	}

	logger.Debug("starting parse run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := runner.New().Run(ctx, opts)
	if err != nil {
		return nil, errors.Join(errors.New("parse run failed"), err)
	}

	logger.Debug("parse run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesParsed,
		logging.FieldErrorsTotal, result.Stats.DiagnosticsTotal,
	)

	return result, nil
}

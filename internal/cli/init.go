package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/golitedoc/internal/logging"
	"github.com/yaklabco/golitedoc/pkg/config"
	"github.com/yaklabco/golitedoc/pkg/fsutil"
)

// configFilePermissions is the file mode for generated configuration files.
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		Long: `Create a .golitedoc.yml configuration file in the current directory
with every option documented and set to its default. Uncomment and edit
the keys you want to change.

Examples:
  golitedoc init                     Create .golitedoc.yml
  golitedoc init --output cfg.yml    Write to a custom file path
  golitedoc init --force             Overwrite an existing file`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .golitedoc.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()
	ctx := commandContext(cmd)

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".golitedoc.yml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: %q; use --force to overwrite", fs.ErrExist, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, config.StarterTemplate(), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("uncomment keys in the file to override defaults")

	return nil
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/tdsdose/internal/config"
)

// errConfigExists is returned by config init when the file is already there.
var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project (a directory holding .tdsdose/, or one named by
// --project-dir) it writes the project overlay unless --global is set.
// Otherwise it writes the user config at ~/.tdsdose/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project, creates $PROJECT/.tdsdose/config.yaml. Its sections replace
the matching sections of the user configuration. Use --global to write
~/.tdsdose/config.yaml (or $TDSDOSE_HOME/config.yaml) instead.`,
		Example: `  # Create the user configuration
  tdsdose config init --global

  # Create a project overlay
  tdsdose --project-dir ./plant-a config init

  # Overwrite an existing configuration
  tdsdose config init --force`,
		Annotations: map[string]string{skipConfigValidation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configInitPath(global)
			if err != nil {
				return err
			}
			return writeDefaultConfig(cmd, path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "write the user configuration even inside a project")

	return cmd
}

// configInitPath returns where config init writes.
func configInitPath(global bool) (string, error) {
	if projectDir := config.GetResolvedProjectDir(); projectDir != "" && !global {
		return filepath.Join(projectDir, "config.yaml"), nil
	}
	return config.DefaultConfigPath()
}

// writeDefaultConfig saves the built-in configuration to path.
func writeDefaultConfig(cmd *cobra.Command, path string, force bool) error {
	if !force {
		_, err := os.Stat(path)
		if err == nil {
			return errConfigExists
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("cannot access config path %s: %w", path, err)
		}
	}

	if err := config.Default().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", path)
	return nil
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/tdsdose/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration for syntax and semantic correctness.

This includes:
- YAML syntax of the configuration file
- Output format and log level names
- The form variant and the field names under form.defaults
- The packaging descriptor app_id`,
		Example: `  # Validate current configuration
  tdsdose config validate

  # Validate a specific file and show a summary
  tdsdose config validate --config ./plant.yaml --verbose`,
		Annotations: map[string]string{skipConfigValidation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg, err := loadConfigForValidation(cmd)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Println("✅ Configuration is valid")

	if verbose {
		source := cfg.Path()
		if source == "" {
			source = "built-in defaults"
		}
		cmd.Printf("\nSource: %s\n", source)
		if projectDir := config.GetResolvedProjectDir(); projectDir != "" {
			cmd.Printf("Project: %s\n", projectDir)
		}
		cmd.Printf("Output format: %s\n", cfg.Output.DefaultFormat)
		cmd.Printf("Log level: %s\n", cfg.Logging.Level)
		cmd.Printf("Form variant: %s\n", cfg.Form.Variant)
		cmd.Printf("Form defaults: %d\n", len(cfg.Form.Defaults))
		cmd.Printf("Server address: %s\n", cfg.Server.Addr)
		cmd.Printf("App: %s (%s)\n", cfg.App.AppName, cfg.App.AppID)
	}

	return nil
}

// loadConfigForValidation reloads the configuration strictly, surfacing
// read and parse errors that setupConfig tolerated.
func loadConfigForValidation(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFile(path)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	projectDir := config.GetResolvedProjectDir()
	if projectDir == "" {
		return cfg, nil
	}
	overlay := filepath.Join(projectDir, "config.yaml")
	if _, statErr := os.Stat(overlay); statErr != nil {
		return cfg, nil
	}
	if err = config.ShallowMergeYAML(cfg, overlay); err != nil {
		return nil, err
	}
	return cfg, nil
}

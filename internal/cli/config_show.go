package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tdsdose/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after the project overlay and environment
// overrides are applied.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Example: `  # Show as YAML
  tdsdose config show

  # Show as JSON
  tdsdose config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			switch strings.ToLower(output) {
			case "yaml", "":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("encoding YAML: %w", err)
				}
				cmd.Print(string(data))
				return nil
			case outputFormatJSON:
				return writeJSON(cmd.OutOrStdout(), cfg, true)
			default:
				return fmt.Errorf("unsupported output format %q", output)
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", "yaml", "output format: yaml or json")

	return cmd
}

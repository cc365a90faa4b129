package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/tdsdose/internal/config"
	"github.com/rshade/tdsdose/internal/dosing"
	"github.com/rshade/tdsdose/internal/tui"
)

// errNotTerminal is returned when the interactive form has no terminal.
var errNotTerminal = errors.New("the interactive form needs a terminal; use 'tdsdose calculate' instead")

// NewFormCmd creates the "form" command, which runs the interactive dosing
// form in the terminal.
func NewFormCmd() *cobra.Command {
	var (
		variant string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in the dosing form interactively",
		Long: `Fill in the dosing form interactively.

Tab and shift+tab move between fields, ctrl+s or enter on CALCULATE runs the
calculation, esc quits. The last result is printed after the form closes.`,
		Example: `  # Chemical form (default)
  tdsdose form

  # Basic form, printing the last result as JSON on exit
  tdsdose form --variant basic --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeForm(cmd, variant, output)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "form variant: basic or chemical (default from configuration)")
	cmd.Flags().StringVar(&output, "output", "", "format of the result printed on exit: table, json, or ndjson")

	return cmd
}

func executeForm(cmd *cobra.Command, variantFlag, outputFlag string) error {
	ctx := cmd.Context()

	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	cfg := config.GetGlobalConfig()
	variant, err := resolveVariant(variantFlag, cfg)
	if err != nil {
		return err
	}
	format := resolveOutputFormat(outputFlag)

	form, _ := dosing.NewFormWithDefaults(variant, cfg.Form.Defaults)

	p := tea.NewProgram(tui.NewDosingModel(ctx, form), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run interactive form: %w", err)
	}

	model, ok := final.(*tui.DosingModel)
	if !ok {
		return nil
	}
	res, ok := model.Result()
	if !ok {
		return nil
	}
	return renderResult(cmd.OutOrStdout(), format, variant, model.Form().Inputs(), res)
}

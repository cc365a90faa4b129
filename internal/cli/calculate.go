package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/rshade/tdsdose/internal/config"
	"github.com/rshade/tdsdose/internal/dosing"
	"github.com/rshade/tdsdose/internal/logging"
)

// calculateParams holds the parameters for the calculate command execution.
type calculateParams struct {
	variant string
	output  string
	set     []string
	fields  map[dosing.Field]*string
}

// NewCalculateCmd creates the "calculate" command, which fills the form from
// flags and runs the calculate action once.
//
// Every form field has its own flag (--tds, --pump-capacity, ...). Values
// start from the form defaults and the configured form.defaults; --set
// key=value and the field flags are applied on top, in that order.
func NewCalculateCmd() *cobra.Command {
	params := calculateParams{fields: make(map[dosing.Field]*string)}

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate dosing figures from plant parameters",
		Long: `Calculate dosing figures from plant parameters.

All fields of the selected form variant must be non-empty. Blank fields block
the calculation with "` + dosing.AlertMessage + `".
Values are read like a browser number field: a leading numeric prefix is used
and anything else counts as 0.`,
		Example: calculateExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalculate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.variant, "variant", "", "form variant: basic or chemical (default from configuration)")
	cmd.Flags().StringVar(&params.output, "output", "", "output format: table, json, or ndjson (default from configuration)")
	cmd.Flags().StringArrayVar(&params.set, "set", nil, "set a field by name, e.g. --set runningHours=20 (repeatable)")

	for _, spec := range dosing.VariantChemical.Fields() {
		value := new(string)
		params.fields[spec.Field] = value
		cmd.Flags().StringVar(value, flagName(spec.Field), "", fmt.Sprintf("%s (%s)", spec.Label, spec.Unit))
	}

	return cmd
}

const calculateExample = `  # Basic form
  tdsdose calculate --variant basic --temperature 25 --pump-capacity 10 \
    --recovery 75 --flow 5 --tank-size 200 --pump-setting 50 --running-hours 20

  # Override the default TDS and print JSON
  tdsdose calculate --variant basic --tds 4500 --temperature 25 --pump-capacity 10 \
    --recovery 75 --flow 5 --tank-size 200 --pump-setting 50 --running-hours 20 --output json

  # Set fields by name
  tdsdose calculate --variant basic --set flow=5 --set recovery=75 ...`

// executeCalculate builds the form, applies the flags and renders the result.
func executeCalculate(cmd *cobra.Command, params calculateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	cfg := config.GetGlobalConfig()
	variant, err := resolveVariant(params.variant, cfg)
	if err != nil {
		return err
	}
	format := resolveOutputFormat(params.output)

	form, unknown := dosing.NewFormWithDefaults(variant, cfg.Form.Defaults)
	if len(unknown) > 0 {
		log.Warn().Ctx(ctx).Strs("fields", unknown).Str("variant", string(variant)).
			Msg("ignoring configured defaults the form variant does not carry")
	}

	if err = applySetFlags(form, params.set); err != nil {
		return err
	}

	for _, spec := range dosing.VariantChemical.Fields() {
		name := flagName(spec.Field)
		if !cmd.Flags().Changed(name) {
			continue
		}
		if err = form.SetField(spec.Field, *params.fields[spec.Field]); err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
	}

	log.Debug().Ctx(ctx).Str("operation", "calculate").Str("variant", string(variant)).
		Bool("complete", form.IsComplete()).Msg("running calculate action")

	res, err := form.Calculate()
	if err != nil {
		var incomplete *dosing.IncompleteError
		if errors.As(err, &incomplete) {
			return fmt.Errorf("%w (missing: %s)", err, joinFields(incomplete.Missing))
		}
		return err
	}

	return renderResult(cmd.OutOrStdout(), format, variant, form.Inputs(), res)
}

// applySetFlags applies key=value pairs to form.
func applySetFlags(form *dosing.Form, pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("--set %q: expected key=value", pair)
		}
		field, err := dosing.ParseField(strings.TrimSpace(key))
		if err != nil {
			return fmt.Errorf("--set %q: %w", pair, err)
		}
		if err = form.SetField(field, value); err != nil {
			return fmt.Errorf("--set %q: %w", pair, err)
		}
	}
	return nil
}

// resolveVariant returns the flag variant, or the configured one when empty.
func resolveVariant(flag string, cfg *config.Config) (dosing.Variant, error) {
	if flag != "" {
		return dosing.ParseVariant(flag)
	}
	return cfg.Variant()
}

// resolveOutputFormat returns the flag format, or the configured default.
func resolveOutputFormat(flag string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	return config.GetDefaultOutputFormat()
}

// flagName converts a field name to its kebab-case flag, e.g. pumpCapacity
// becomes pump-capacity.
func flagName(f dosing.Field) string {
	var b strings.Builder
	for _, r := range string(f) {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// joinFields renders field names as a comma separated list.
func joinFields(fields []dosing.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

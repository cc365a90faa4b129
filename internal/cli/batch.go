package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tdsdose/internal/config"
	"github.com/rshade/tdsdose/internal/dosing"
	"github.com/rshade/tdsdose/internal/logging"
	"github.com/rshade/tdsdose/internal/report"
)

// batchParams holds the parameters for the batch command execution.
type batchParams struct {
	variant string
	output  string
	out     string
}

// NewBatchCmd creates the "batch" command, which evaluates a file of
// scenarios, each on its own form.
func NewBatchCmd() *cobra.Command {
	var params batchParams

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Calculate dosing for a file of scenarios",
		Long: `Calculate dosing for a file of scenarios.

The file is YAML (or JSON when it ends in .json) with an optional variant and
a list of scenarios, each holding a name and the form inputs. Use - to read
YAML from stdin. Incomplete scenarios are reported and do not stop the batch.`,
		Example: batchExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeBatch(cmd, args[0], params)
		},
	}

	cmd.Flags().StringVar(&params.variant, "variant", "", "form variant, overriding the file and configuration")
	cmd.Flags().StringVar(&params.output, "output", "", "output format: table, json, ndjson, or xlsx")
	cmd.Flags().StringVar(&params.out, "out", "", "file to write the xlsx workbook to")

	return cmd
}

const batchExample = `  # Print a table of results
  tdsdose batch plants.yaml

  # Export a spreadsheet
  tdsdose batch plants.yaml --output xlsx --out plants.xlsx

  # Stream results as NDJSON
  cat plants.yaml | tdsdose batch - --output ndjson`

func executeBatch(cmd *cobra.Command, path string, params batchParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	format := resolveOutputFormat(params.output)
	if format == outputFormatXLSX && params.out == "" {
		return errors.New("--output xlsx requires --out <file>")
	}

	file, err := readScenarioFile(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	variantFlag := params.variant
	if variantFlag == "" {
		variantFlag = file.Variant
	}
	variant, err := resolveVariant(variantFlag, config.GetGlobalConfig())
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).Str("operation", "batch").Str("file", path).
		Str("variant", string(variant)).Int("scenarios", len(file.Scenarios)).
		Msg("evaluating scenarios")

	results, err := dosing.CalculateBatch(ctx, variant, file.Scenarios)
	if err != nil {
		return fmt.Errorf("calculating scenarios: %w", err)
	}

	if format == outputFormatXLSX {
		if err = report.WriteXLSX(params.out, variant, results); err != nil {
			return err
		}
		cmd.Printf("Wrote %d scenarios to %s\n", len(results), params.out)
		return nil
	}
	return renderBatch(cmd.OutOrStdout(), format, results)
}

// readScenarioFile decodes the scenario file at path, or stdin for "-".
func readScenarioFile(stdin io.Reader, path string) (dosing.ScenarioFile, error) {
	var file dosing.ScenarioFile

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return file, fmt.Errorf("reading scenario file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return file, fmt.Errorf("parsing scenario file %s: %w", path, err)
	}

	for i := range file.Scenarios {
		if file.Scenarios[i].Name == "" {
			file.Scenarios[i].Name = fmt.Sprintf("scenario-%d", i+1)
		}
	}
	return file, nil
}

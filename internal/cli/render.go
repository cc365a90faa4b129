package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rshade/tdsdose/internal/dosing"
	"github.com/rshade/tdsdose/internal/tui"
)

// tabPadding is the column padding of tabular output.
const tabPadding = 2

// calculationOutput is the JSON form of a single calculation.
type calculationOutput struct {
	Name      string                 `json:"name,omitempty"`
	Variant   dosing.Variant         `json:"variant"`
	Inputs    dosing.Inputs          `json:"inputs"`
	Result    dosing.FormattedResult `json:"result"`
	NonFinite []string               `json:"nonFinite,omitempty"`
}

// scenarioOutput is the JSON form of one batch scenario.
type scenarioOutput struct {
	Name      string                  `json:"name"`
	Status    string                  `json:"status"`
	Result    *dosing.FormattedResult `json:"result,omitempty"`
	NonFinite []string                `json:"nonFinite,omitempty"`
	Missing   []dosing.Field          `json:"missing,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// Scenario status values.
const (
	statusOK         = "ok"
	statusIncomplete = "incomplete"
	statusFailed     = "failed"
)

// renderResult writes a single result in the given format.
func renderResult(w io.Writer, format string, v dosing.Variant, in dosing.Inputs, res dosing.Result) error {
	switch format {
	case outputFormatJSON, outputFormatNDJSON:
		out := calculationOutput{
			Variant:   v,
			Inputs:    in,
			Result:    res.Formatted(),
			NonFinite: res.NonFinite(),
		}
		return writeJSON(w, out, format == outputFormatJSON)
	case outputFormatTable:
		return renderResultTable(w, res)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// renderResultTable writes the six metrics as an aligned table.
func renderResultTable(w io.Writer, res dosing.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE\tUNIT")
	for _, m := range res.Metrics() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Label, dosing.FormatDisplay(m.Value, m.Precision), m.Unit)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	if keys := res.NonFinite(); len(keys) > 0 {
		fmt.Fprintf(w, "\n%s non-finite values: %v\n", tui.IconWarning, keys)
	}
	return nil
}

// renderBatch writes batch results in the given format.
func renderBatch(w io.Writer, format string, results []dosing.ScenarioResult) error {
	switch format {
	case outputFormatJSON:
		out := make([]scenarioOutput, 0, len(results))
		for _, r := range results {
			out = append(out, toScenarioOutput(r))
		}
		return writeJSON(w, out, true)
	case outputFormatNDJSON:
		for _, r := range results {
			if err := writeJSON(w, toScenarioOutput(r), false); err != nil {
				return err
			}
		}
		return nil
	case outputFormatTable:
		return renderBatchTable(w, results)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderBatchTable(w io.Writer, results []dosing.ScenarioResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprint(tw, "SCENARIO\tSTATUS")
	for _, m := range (dosing.Result{}).Metrics() {
		fmt.Fprintf(tw, "\t%s", m.Label)
	}
	fmt.Fprintln(tw)

	for _, r := range results {
		out := toScenarioOutput(r)
		fmt.Fprintf(tw, "%s\t%s", out.Name, out.Status)
		if r.OK() {
			for _, m := range r.Result.Metrics() {
				fmt.Fprintf(tw, "\t%s", dosing.FormatDisplay(m.Value, m.Precision))
			}
		} else {
			for range (dosing.Result{}).Metrics() {
				fmt.Fprint(tw, "\t-")
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func toScenarioOutput(r dosing.ScenarioResult) scenarioOutput {
	out := scenarioOutput{Name: r.Scenario.Name}
	if r.OK() {
		formatted := r.Result.Formatted()
		out.Status = statusOK
		out.Result = &formatted
		out.NonFinite = r.Result.NonFinite()
		return out
	}

	var incomplete *dosing.IncompleteError
	if errors.As(r.Err, &incomplete) {
		out.Status = statusIncomplete
		out.Missing = incomplete.Missing
	} else {
		out.Status = statusFailed
	}
	out.Error = r.Err.Error()
	return out
}

func writeJSON(w io.Writer, v interface{}, indent bool) error {
	encoder := json.NewEncoder(w)
	if indent {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

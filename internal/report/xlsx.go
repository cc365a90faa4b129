// Package report exports batch dosing results as spreadsheets.
package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/tdsdose/internal/dosing"
)

// Sheet names of the exported workbook.
const (
	ResultsSheet = "Results"
	InputsSheet  = "Inputs"
)

// Status cell values.
const (
	statusOK         = "ok"
	statusIncomplete = "incomplete"
)

// NewWorkbook builds a workbook with one row per scenario on the Results
// sheet and the entered values on the Inputs sheet. The caller must Close it.
func NewWorkbook(v dosing.Variant, results []dosing.ScenarioResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if err := writeResults(f, results); err != nil {
		_ = f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(InputsSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("adding inputs sheet: %w", err)
	}
	if err := writeInputs(f, v, results); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// WriteXLSX saves the workbook of results to path.
func WriteXLSX(path string, v dosing.Variant, results []dosing.ScenarioResult) error {
	f, err := NewWorkbook(v, results)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeResults(f *excelize.File, results []dosing.ScenarioResult) error {
	sw, err := f.NewStreamWriter(ResultsSheet)
	if err != nil {
		return fmt.Errorf("opening results sheet: %w", err)
	}

	header := []interface{}{"Scenario", "Status"}
	for _, m := range (dosing.Result{}).Metrics() {
		header = append(header, fmt.Sprintf("%s (%s)", m.Label, m.Unit))
	}
	header = append(header, "Error")
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range results {
		row := []interface{}{r.Scenario.Name}
		if r.OK() {
			row = append(row, statusOK)
			for _, m := range r.Result.Metrics() {
				row = append(row, cellValue(m))
			}
		} else {
			row = append(row, statusIncomplete)
			for range (dosing.Result{}).Metrics() {
				row = append(row, nil)
			}
			row = append(row, errorText(r.Err))
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return sw.Flush()
}

func writeInputs(f *excelize.File, v dosing.Variant, results []dosing.ScenarioResult) error {
	sw, err := f.NewStreamWriter(InputsSheet)
	if err != nil {
		return fmt.Errorf("opening inputs sheet: %w", err)
	}

	specs := v.Fields()
	header := []interface{}{"Scenario"}
	for _, spec := range specs {
		header = append(header, fmt.Sprintf("%s (%s)", spec.Label, spec.Unit))
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range results {
		row := []interface{}{r.Scenario.Name}
		for _, spec := range specs {
			row = append(row, r.Scenario.Inputs.Get(spec.Field))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return sw.Flush()
}

// cellValue rounds finite metrics to their display precision. Non-finite
// values are written as text since a cell cannot hold them as numbers.
func cellValue(m dosing.Metric) interface{} {
	if math.IsInf(m.Value, 0) || math.IsNaN(m.Value) {
		return dosing.FormatFixed(m.Value, m.Precision)
	}
	return dosing.Round(m.Value, m.Precision)
}

func errorText(err error) string {
	var incomplete *dosing.IncompleteError
	if errors.As(err, &incomplete) {
		return incomplete.Detail()
	}
	return err.Error()
}

package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rshade/tdsdose/internal/dosing"
)

func scenarioResults(t *testing.T) []dosing.ScenarioResult {
	t.Helper()
	ref := dosing.Inputs{
		TDS: "3000", Temperature: "25", PumpCapacity: "10", Recovery: "75",
		Flow: "5", TankSize: "200", PumpSetting: "50", RunningHours: "20",
	}
	full := ref
	full.Recovery = "100"
	missing := ref
	missing.Flow = ""

	results, err := dosing.CalculateBatch(context.Background(), dosing.VariantBasic, []dosing.Scenario{
		{Name: "reference", Inputs: ref},
		{Name: "full recovery", Inputs: full},
		{Name: "no flow", Inputs: missing},
	})
	require.NoError(t, err)
	return results
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dosing.xlsx")
	require.NoError(t, WriteXLSX(path, dosing.VariantBasic, scenarioResults(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ResultsSheet, InputsSheet}, f.GetSheetList())

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Scenario", rows[0][0])
	assert.Equal(t, "Error", rows[0][len(rows[0])-1])

	assert.Equal(t, []string{"reference", statusOK, "5", "4", "20", "0.21", "4.17", "48"}, rows[1])

	assert.Equal(t, "full recovery", rows[2][0])
	assert.Equal(t, "Infinity", rows[2][3])
	assert.Equal(t, "Infinity", rows[2][4])

	assert.Equal(t, "no flow", rows[3][0])
	assert.Equal(t, statusIncomplete, rows[3][1])
	assert.Contains(t, rows[3][len(rows[3])-1], "flow")

	inputs, err := f.GetRows(InputsSheet)
	require.NoError(t, err)
	require.Len(t, inputs, 4)
	assert.Len(t, inputs[0], 1+len(dosing.VariantBasic.Fields()))
	assert.Equal(t, "3000", inputs[1][1])
}

func TestWriteXLSXBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "dosing.xlsx")
	err := WriteXLSX(path, dosing.VariantBasic, nil)
	assert.Error(t, err)
}

func TestWriteXLSX_MatchesFormattedText(t *testing.T) {
	tie := dosing.Inputs{
		TDS: "75", Temperature: "25", PumpCapacity: "10", Recovery: "75",
		Flow: "3", TankSize: "200", PumpSetting: "50", RunningHours: "20",
	}
	results, err := dosing.CalculateBatch(context.Background(), dosing.VariantBasic, []dosing.Scenario{
		{Name: "ties", Inputs: tie},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ties.xlsx")
	require.NoError(t, WriteXLSX(path, dosing.VariantBasic, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	formatted := results[0].Result.Formatted()
	assert.Equal(t, "0.13", formatted.AdjustedTDS)
	assert.Equal(t, formatted.AdjustedTDS, rows[1][2])
	assert.Equal(t, formatted.DosingRate, rows[1][5])
}

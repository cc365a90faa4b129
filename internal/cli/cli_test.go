package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tdsdose/internal/cli"
	"github.com/rshade/tdsdose/internal/config"
	"github.com/rshade/tdsdose/internal/dosing"
)

// setupCLITest isolates the command from the user's home and environment.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("TDSDOSE_HOME", home)
	t.Setenv("TDSDOSE_PROJECT_DIR", "")
	t.Setenv("TDSDOSE_LOG_LEVEL", "error")
	t.Setenv("TDSDOSE_LOG_FORMAT", "")
	t.Setenv("TDSDOSE_OUTPUT_FORMAT", "")
	t.Setenv("TDSDOSE_SERVER_ADDR", "")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// executeCLI runs the root command with args and returns its output.
func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

var basicArgs = []string{
	"calculate", "--variant", "basic",
	"--temperature", "25", "--pump-capacity", "10", "--recovery", "75", "--flow", "5",
	"--tank-size", "200", "--pump-setting", "50", "--running-hours", "20",
}

func TestCalculate_Table(t *testing.T) {
	setupCLITest(t)

	out, err := executeCLI(t, basicArgs...)
	require.NoError(t, err)

	assert.Contains(t, out, "METRIC")
	assert.Regexp(t, `Adjusted TDS\s+5\.00\s+ppm`, out)
	assert.Regexp(t, `Concentration Factor\s+4\.00\s+x`, out)
	assert.Regexp(t, `Concentrated TDS\s+20\.00\s+ppm`, out)
	assert.Regexp(t, `Dosing Rate\s+0\.21\s+LPH`, out)
	assert.Regexp(t, `Daily Consumption\s+4\.17\s+ltr/day`, out)
	assert.Regexp(t, `Tank Duration\s+48\.0\s+days`, out)
	assert.NotContains(t, out, "non-finite")
}

func TestCalculate_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := executeCLI(t, append(basicArgs, "--output", "json", "--recovery", "100")...)
	require.NoError(t, err)

	var got struct {
		Variant   string                 `json:"variant"`
		Inputs    dosing.Inputs          `json:"inputs"`
		Result    dosing.FormattedResult `json:"result"`
		NonFinite []string               `json:"nonFinite"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "basic", got.Variant)
	assert.Equal(t, "3000", got.Inputs.TDS)
	assert.Equal(t, "Infinity", got.Result.ConcentrationFactor)
	assert.Equal(t, "0.21", got.Result.DosingRate)
	assert.Equal(t, []string{"concentrationFactor", "concentratedTDS"}, got.NonFinite)
}

func TestCalculate_SetFlag(t *testing.T) {
	setupCLITest(t)

	out, err := executeCLI(t, "calculate", "--variant", "basic", "--output", "json",
		"--set", "temperature=25", "--set", "pumpCapacity=10", "--set", "recovery=75",
		"--set", "flow=5", "--set", "tankSize=200", "--set", "pumpSetting=50",
		"--set", "runningHours=20", "--tds", "6000")
	require.NoError(t, err)
	assert.Contains(t, out, `"adjustedTDS": "10.00"`)
}

func TestCalculate_Incomplete(t *testing.T) {
	setupCLITest(t)

	out, err := executeCLI(t, "calculate", "--variant", "basic", "--flow", "5")
	require.Error(t, err)
	require.ErrorIs(t, err, dosing.ErrIncompleteForm)
	assert.Contains(t, err.Error(), dosing.AlertMessage)
	assert.Contains(t, err.Error(), "temperature")
	assert.NotContains(t, out, "METRIC")
}

func TestCalculate_ChemicalNeedsIons(t *testing.T) {
	setupCLITest(t)

	args := []string{
		"calculate", "--temperature", "25", "--pump-capacity", "10", "--recovery", "75", "--flow", "5",
		"--tank-size", "200", "--pump-setting", "50", "--running-hours", "20",
	}
	_, err := executeCLI(t, args...)
	require.ErrorIs(t, err, dosing.ErrIncompleteForm)

	args = append(args, "--ca", "1", "--mg", "1", "--co3", "1", "--hco3", "1", "--cl", "1", "--fe", "1")
	out, err := executeCLI(t, args...)
	require.NoError(t, err)
	assert.Regexp(t, `Tank Duration\s+48\.0`, out)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown variant", args: []string{"calculate", "--variant", "ionic"}},
		{name: "bad set pair", args: []string{"calculate", "--set", "flow"}},
		{name: "unknown set field", args: []string{"calculate", "--set", "silica=1"}},
		{name: "ion on basic", args: []string{"calculate", "--variant", "basic", "--fe", "1"}},
		{name: "bad output", args: append(append([]string{}, basicArgs...), "--output", "xml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLITest(t)
			_, err := executeCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCalculate_ConfigDefaults(t *testing.T) {
	home := setupCLITest(t)

	cfg := config.Default()
	cfg.Form.Variant = "basic"
	cfg.Form.Defaults = map[string]string{"runningHours": "24", "flow": "5"}
	require.NoError(t, cfg.Save(filepath.Join(home, "config.yaml")))

	out, err := executeCLI(t, "calculate", "--output", "json",
		"--temperature", "25", "--pump-capacity", "10", "--recovery", "75",
		"--tank-size", "200", "--pump-setting", "50")
	require.NoError(t, err)
	assert.Contains(t, out, `"variant": "basic"`)
	assert.Contains(t, out, `"runningHours": "24"`)
	assert.Contains(t, out, `"dailyConsumption": "5.00"`)
}

func TestBatch(t *testing.T) {
	setupCLITest(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "plants.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`variant: basic
scenarios:
  - name: plant-a
    inputs:
      tds: "3000"
      temperature: "25"
      pumpCapacity: "10"
      recovery: "75"
      flow: "5"
      tankSize: "200"
      pumpSetting: "50"
      runningHours: "20"
  - name: plant-b
    inputs:
      tds: "3000"
`), 0o600))

	t.Run("table", func(t *testing.T) {
		out, err := executeCLI(t, "batch", path)
		require.NoError(t, err)
		assert.Contains(t, out, "SCENARIO")
		assert.Regexp(t, `plant-a\s+ok\s+5\.00`, out)
		assert.Regexp(t, `plant-b\s+incomplete`, out)
	})

	t.Run("ndjson", func(t *testing.T) {
		out, err := executeCLI(t, "batch", path, "--output", "ndjson")
		require.NoError(t, err)

		lines := bytes.Split(bytes.TrimSpace([]byte(out)), []byte("\n"))
		require.Len(t, lines, 2)

		var first, second map[string]interface{}
		require.NoError(t, json.Unmarshal(lines[0], &first))
		require.NoError(t, json.Unmarshal(lines[1], &second))
		assert.Equal(t, "ok", first["status"])
		assert.Equal(t, "incomplete", second["status"])
		assert.Contains(t, second["missing"], "flow")
	})

	t.Run("xlsx", func(t *testing.T) {
		target := filepath.Join(dir, "plants.xlsx")
		out, err := executeCLI(t, "batch", path, "--output", "xlsx", "--out", target)
		require.NoError(t, err)
		assert.Contains(t, out, "Wrote 2 scenarios")
		_, statErr := os.Stat(target)
		assert.NoError(t, statErr)
	})

	t.Run("xlsx needs out", func(t *testing.T) {
		_, err := executeCLI(t, "batch", path, "--output", "xlsx")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := executeCLI(t, "batch", filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestBatch_JSONFile(t *testing.T) {
	setupCLITest(t)

	path := filepath.Join(t.TempDir(), "plants.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"variant":"basic","scenarios":[{"inputs":{
		"temperature":"25","pumpCapacity":"10","recovery":"75","flow":"5",
		"tankSize":"200","pumpSetting":"50","runningHours":"20"}}]}`), 0o600))

	out, err := executeCLI(t, "batch", path, "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "scenario-1"`)
	assert.Contains(t, out, `"tankDuration": "48.0"`)
}

func TestFormCmd_NeedsTerminal(t *testing.T) {
	setupCLITest(t)

	_, err := executeCLI(t, "form")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestVersion(t *testing.T) {
	setupCLITest(t)

	out, err := executeCLI(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "test\n", out)
}

func TestCalculate_TiesRoundUp(t *testing.T) {
	setupCLITest(t)

	out, err := executeCLI(t, append(append([]string{}, basicArgs...), "--tds", "75", "--flow", "3")...)
	require.NoError(t, err)
	assert.Regexp(t, `Adjusted TDS\s+0\.13\s+ppm`, out)
	assert.Regexp(t, `Dosing Rate\s+0\.13\s+LPH`, out)
}

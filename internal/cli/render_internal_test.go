package cli

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tdsdose/internal/dosing"
)

func TestFlagName(t *testing.T) {
	tests := map[dosing.Field]string{
		dosing.FieldTDS:          "tds",
		dosing.FieldPumpCapacity: "pump-capacity",
		dosing.FieldRunningHours: "running-hours",
		dosing.FieldHCO3:         "hco3",
	}
	for field, want := range tests {
		assert.Equal(t, want, flagName(field))
	}
}

func TestRenderResultTable_NonFinite(t *testing.T) {
	var buf bytes.Buffer
	res := dosing.Result{ConcentrationFactor: math.Inf(1), TankDuration: math.NaN()}

	require.NoError(t, renderResultTable(&buf, res))
	out := buf.String()
	assert.Contains(t, out, "Infinity")
	assert.Contains(t, out, "NaN")
	assert.Contains(t, out, "non-finite values: [concentrationFactor tankDuration]")
}

func TestRenderBatch_UnsupportedFormat(t *testing.T) {
	err := renderBatch(&bytes.Buffer{}, "xml", nil)
	assert.Error(t, err)
}

func TestJoinFields(t *testing.T) {
	assert.Equal(t, "flow, fe", joinFields([]dosing.Field{dosing.FieldFlow, dosing.FieldFe}))
	assert.Empty(t, joinFields(nil))
}

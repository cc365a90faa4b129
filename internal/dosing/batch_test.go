package dosing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBatch(t *testing.T) {
	incomplete := referenceInputs()
	incomplete.Flow = ""

	scenarios := []Scenario{{Name: "reference", Inputs: referenceInputs()}, {Name: "no flow", Inputs: incomplete}}
	for i := range 20 {
		in := referenceInputs()
		in.TDS = fmt.Sprint(600 * (i + 1))
		scenarios = append(scenarios, Scenario{Name: fmt.Sprintf("tds-%d", i), Inputs: in})
	}

	results, err := CalculateBatch(context.Background(), VariantChemical, scenarios)
	require.NoError(t, err)
	require.Len(t, results, len(scenarios))

	assert.True(t, results[0].OK())
	assert.Equal(t, "20.00", results[0].Result.Formatted().ConcentratedTDS)

	assert.False(t, results[1].OK())
	assert.ErrorIs(t, results[1].Err, ErrIncompleteForm)

	for i := range 20 {
		r := results[i+2]
		assert.Equal(t, fmt.Sprintf("tds-%d", i), r.Scenario.Name)
		assert.InDelta(t, float64(i+1), r.Result.AdjustedTDS, 1e-12)
	}
}

func TestCalculateBatch_BasicVariantIgnoresIons(t *testing.T) {
	in := referenceInputs()
	in.Ca, in.Mg, in.CO3, in.HCO3, in.Cl, in.Fe = "", "", "", "", "", ""

	results, err := CalculateBatch(context.Background(), VariantBasic, []Scenario{{Name: "plant", Inputs: in}})
	require.NoError(t, err)
	assert.True(t, results[0].OK())

	results, err = CalculateBatch(context.Background(), VariantChemical, []Scenario{{Name: "plant", Inputs: in}})
	require.NoError(t, err)
	assert.False(t, results[0].OK())
}

func TestCalculateBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CalculateBatch(ctx, VariantBasic, []Scenario{{Name: "a", Inputs: referenceInputs()}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBatch_Empty(t *testing.T) {
	results, err := CalculateBatch(context.Background(), VariantBasic, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

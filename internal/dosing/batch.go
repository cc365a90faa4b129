package dosing

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Scenario is one named set of form inputs.
type Scenario struct {
	Name   string `json:"name"   yaml:"name"`
	Inputs Inputs `json:"inputs" yaml:"inputs"`
}

// ScenarioFile is the on-disk layout of a batch file.
type ScenarioFile struct {
	Variant   string     `json:"variant,omitempty" yaml:"variant,omitempty"`
	Scenarios []Scenario `json:"scenarios"         yaml:"scenarios"`
}

// ScenarioResult is the outcome of one scenario. Exactly one of Result and Err
// is meaningful.
type ScenarioResult struct {
	Scenario Scenario
	Result   Result
	Err      error
}

// OK reports whether the scenario produced a result.
func (r ScenarioResult) OK() bool { return r.Err == nil }

// CalculateBatch runs the calculate action for every scenario on its own form.
// Incomplete scenarios carry an *IncompleteError; they do not fail the batch.
// Results keep the input order. Only cancellation of ctx fails the batch.
func CalculateBatch(ctx context.Context, v Variant, scenarios []Scenario) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, len(scenarios))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, sc := range scenarios {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			form := &Form{variant: v, inputs: sc.Inputs}
			if form.variant == "" {
				form.variant = DefaultVariant
			}
			res, err := form.Calculate()
			results[i] = ScenarioResult{Scenario: sc, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

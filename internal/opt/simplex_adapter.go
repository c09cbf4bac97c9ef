package opt

import (
	"context"

	"github.com/cwbudde/simplexfit/internal/simplex"
)

// SimplexAdapter runs the in-repo simplex engine behind the Optimizer
// interface.
type SimplexAdapter struct {
	opts     simplex.Options
	steps    []float64
	lower    []float64
	upper    []float64
	disabled []bool
}

// NewSimplex creates a simplex optimizer with the given engine options
// and optional steps, bounds and disable mask.
func NewSimplex(opts simplex.Options, steps, lower, upper []float64, disabled []bool) *SimplexAdapter {
	return &SimplexAdapter{
		opts:     opts,
		steps:    steps,
		lower:    lower,
		upper:    upper,
		disabled: disabled,
	}
}

// Minimize implements Optimizer.
func (a *SimplexAdapter) Minimize(ctx context.Context, obj simplex.Objective, start []float64) (simplex.Result, error) {
	return simplex.Minimize(ctx, simplex.Problem{
		Objective: obj,
		Start:     start,
		Steps:     a.steps,
		Lower:     a.lower,
		Upper:     a.upper,
		Disabled:  a.disabled,
	}, a.opts)
}

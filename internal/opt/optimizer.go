package opt

import (
	"context"

	"github.com/cwbudde/simplexfit/internal/simplex"
)

// Optimizer abstracts a minimization algorithm so the CLI can run the
// simplex engine and external optimizers on the same problem.
type Optimizer interface {
	// Minimize searches for the lowest objective value reachable from
	// start. The context is polled cooperatively; cancellation returns
	// the best point found so far, not an error.
	Minimize(ctx context.Context, obj simplex.Objective, start []float64) (simplex.Result, error)
}

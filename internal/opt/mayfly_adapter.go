package opt

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/mayfly"

	"github.com/cwbudde/simplexfit/internal/simplex"
)

// MayflyAdapter runs the external mayfly population optimizer behind
// the Optimizer interface, as a comparison algorithm for the benchmark
// CLI. The library takes scalar bounds, so the first dimension's bounds
// apply to every dimension; objective validity is mapped to a large
// penalty since the library has no notion of invalid points.
type MayflyAdapter struct {
	maxIters int
	popSize  int
	seed     int64
	lower    float64
	upper    float64
}

// NewMayfly creates a mayfly optimizer adapter with the given iteration
// and population budget and scalar search bounds.
func NewMayfly(maxIters, popSize int, seed int64, lower, upper float64) *MayflyAdapter {
	return &MayflyAdapter{
		maxIters: maxIters,
		popSize:  popSize,
		seed:     seed,
		lower:    lower,
		upper:    upper,
	}
}

// Minimize implements Optimizer. The start vector only fixes the
// dimensionality; mayfly seeds its own population inside the bounds.
// The library runs to completion, so the context is not polled here.
func (a *MayflyAdapter) Minimize(_ context.Context, obj simplex.Objective, start []float64) (simplex.Result, error) {
	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = func(x []float64) float64 {
		v, ok := obj(x)
		if !ok {
			return math.MaxFloat64
		}
		return v
	}
	config.ProblemSize = len(start)
	config.MaxIterations = a.maxIters
	config.NPop = a.popSize
	config.LowerBound = a.lower
	config.UpperBound = a.upper
	config.Rand = rand.New(rand.NewSource(a.seed))

	result, err := mayfly.Optimize(config)
	if err != nil {
		return simplex.Result{}, fmt.Errorf("mayfly optimization failed: %w", err)
	}
	return simplex.Result{
		X: result.GlobalBest.Position,
		F: result.GlobalBest.Cost,
		// The library reports no evaluation count; one per particle per
		// iteration is the closest estimate.
		Evaluations: a.maxIters * a.popSize,
		Passes:      1,
		Status:      simplex.StatusBudgetExhausted,
	}, nil
}

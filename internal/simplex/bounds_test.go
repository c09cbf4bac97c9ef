package simplex

import "testing"

func TestWithinBoundsNilPasses(t *testing.T) {
	if !WithinBounds([]float64{1, -5, 100}, nil, nil) {
		t.Error("nil bounds should always pass")
	}
}

func TestWithinBoundsSatisfied(t *testing.T) {
	lower := []float64{0, 0}
	upper := []float64{1, 1}

	if !WithinBounds([]float64{0.5, 0.5}, lower, upper) {
		t.Error("interior point should pass")
	}
	if !WithinBounds([]float64{0, 1}, lower, upper) {
		t.Error("boundary point should pass")
	}
}

func TestWithinBoundsViolated(t *testing.T) {
	lower := []float64{0, 0}
	upper := []float64{1, 1}

	if WithinBounds([]float64{-0.01, 0.5}, lower, upper) {
		t.Error("point below lower bound should fail")
	}
	if WithinBounds([]float64{0.5, 1.01}, lower, upper) {
		t.Error("point above upper bound should fail")
	}
}

func TestWithinBoundsEqualLimitsUnconstrained(t *testing.T) {
	// lower == upper is the "no bound" sentinel for that dimension.
	lower := []float64{0, 3}
	upper := []float64{1, 3}

	if !WithinBounds([]float64{0.5, 1000}, lower, upper) {
		t.Error("dimension with equal limits should be unconstrained")
	}
	if WithinBounds([]float64{2, 1000}, lower, upper) {
		t.Error("constrained dimension should still be checked")
	}
}

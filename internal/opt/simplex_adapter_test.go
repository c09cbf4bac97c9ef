package opt

import (
	"context"
	"math"
	"testing"

	"github.com/cwbudde/simplexfit/internal/simplex"
)

func TestSimplexAdapterOnSphere(t *testing.T) {
	optimizer := NewSimplex(simplex.DefaultOptions(), nil, nil, nil, nil)

	res, err := optimizer.Minimize(context.Background(), sphere, []float64{4, -3, 2})
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}

	if res.F > 1e-6 {
		t.Errorf("Expected cost near 0, got %g", res.F)
	}
	for i, v := range res.X {
		if math.Abs(v) > 1e-2 {
			t.Errorf("Parameter %d = %f, expected near 0", i, v)
		}
	}
}

func TestSimplexAdapterHonorsBounds(t *testing.T) {
	lower := []float64{1, 1}
	upper := []float64{2, 2}
	optimizer := NewSimplex(simplex.DefaultOptions(), nil, lower, upper, nil)

	res, err := optimizer.Minimize(context.Background(), sphere, []float64{1.5, 1.5})
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}

	for i, v := range res.X {
		if v < lower[i] || v > upper[i] {
			t.Errorf("Parameter %d = %f escaped [%v, %v]", i, v, lower[i], upper[i])
		}
	}
	// The constrained optimum is the (1,1) corner.
	if res.F > 2.01 {
		t.Errorf("Expected cost near 2, got %g", res.F)
	}
}

func TestSimplexAdapterDeterministic(t *testing.T) {
	start := []float64{3, 3}

	res1, err := NewSimplex(simplex.DefaultOptions(), nil, nil, nil, nil).Minimize(context.Background(), sphere, start)
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}
	res2, err := NewSimplex(simplex.DefaultOptions(), nil, nil, nil, nil).Minimize(context.Background(), sphere, start)
	if err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}

	if res1.F != res2.F || res1.Evaluations != res2.Evaluations {
		t.Errorf("Non-deterministic: (%g, %d) vs (%g, %d)",
			res1.F, res1.Evaluations, res2.F, res2.Evaluations)
	}
}

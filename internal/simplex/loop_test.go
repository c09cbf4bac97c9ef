package simplex

import (
	"context"
	"testing"
)

// ridgeObj peaks at x[0] == 1, so in the simplex below the vertex
// sitting exactly on the centroid is the worst one and every trial
// factor maps it back onto itself.
func ridgeObj(x []float64) (float64, bool) {
	d := x[0] - 1
	return -d * d, true
}

func newRidgeState() *state {
	s := &state{
		dim:      2,
		obj:      ridgeObj,
		maxEvals: 1000,
	}
	for _, v := range [][]float64{{0, 0}, {2, 0}, {1, 0}} {
		s.verts = append(s.verts, cloneVector(v))
		f, _ := ridgeObj(v)
		s.vals = append(s.vals, f)
	}
	s.cent = centroid(s.verts, s.dim)
	return s
}

func TestTrialReuseCounter(t *testing.T) {
	s := newRidgeState()

	for i := 0; i < 4; i++ {
		s.trial(2, -1)
		if s.usedLast != i {
			t.Fatalf("after %d identical trials usedLast = %d, want %d", i+1, s.usedLast, i)
		}
	}

	s.trial(0, -1)
	if s.usedLast != 0 {
		t.Errorf("distinct trial point left usedLast at %d, want 0", s.usedLast)
	}
}

func TestIterateRepeatedTrialPointStuck(t *testing.T) {
	s := newRidgeState()

	// Burn through the reuse allowance before handing the simplex to
	// the loop; its next identical proposal crosses the threshold.
	for i := 0; i < 3; i++ {
		s.trial(2, -1)
	}

	opts := DefaultOptions()
	status, err := s.iterate(context.Background(), &opts)
	if err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	if status != StatusStuck {
		t.Errorf("status = %v, want stuck after repeated trial-point reuse", status)
	}
}

func TestIterateStrictLoopFlag(t *testing.T) {
	s := newRidgeState()

	opts := DefaultOptions()
	opts.Flags |= FlagStrictLoop

	status, err := s.iterate(context.Background(), &opts)
	if err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	if status != StatusStuck {
		t.Errorf("status = %v, want stuck on the first reuse", status)
	}

	// Without the flag the same geometry survives a single reuse and
	// the search runs on until the evaluation budget is gone.
	s = newRidgeState()
	s.maxEvals = 80
	opts = DefaultOptions()

	status, err = s.iterate(context.Background(), &opts)
	if err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	if status != StatusBudgetExhausted {
		t.Errorf("status = %v, want budget exhausted without the strict flag", status)
	}
}

func TestIterateReflectionTieSkipsContraction(t *testing.T) {
	evals := 0
	s := newTestState(func(x []float64) (float64, bool) {
		evals++
		return 7, true
	})
	evals = 0

	// On a flat objective the reflected value ties the second-worst:
	// that must not trigger a contraction, so the iteration spends one
	// evaluation and breaks with no progress.
	opts := DefaultOptions()
	opts.Tolerance = 0

	status, err := s.iterate(context.Background(), &opts)
	if err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	if status != StatusStuck {
		t.Errorf("status = %v, want stuck", status)
	}
	if evals != 1 {
		t.Errorf("consumed %d evaluations, want 1 (reflection only)", evals)
	}
}

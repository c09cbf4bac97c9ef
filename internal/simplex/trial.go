package simplex

import "math"

// state is the working storage of one pass: the simplex, its values,
// the incrementally maintained centroid, and the bookkeeping for loop
// detection and the evaluation budget. The evaluation counter is
// carried across passes by the driver.
type state struct {
	dim      int
	verts    [][]float64
	vals     []float64
	cent     []float64
	lower    []float64
	upper    []float64
	disabled []bool
	obj      Objective

	evals    int
	maxEvals int

	lastTrial []float64
	usedLast  int
}

// eval runs the objective once, charging one unit of the budget.
func (s *state) eval(x []float64) (float64, bool) {
	s.evals++
	return s.obj(x)
}

// trial computes a candidate vertex by moving the worst vertex relative
// to the centroid by factor (-1 reflection, 2 expansion, 0.5
// contraction), enforces bounds, evaluates the objective and replaces
// the worst vertex only on strict improvement. The centroid is adjusted
// incrementally when a replacement happens. Rejected points (bounds or
// objective invalidity) come back as veryBig without replacement.
func (s *state) trial(worst int, factor float64) (val float64, replaced bool) {
	t := make([]float64, s.dim)
	for d := 0; d < s.dim; d++ {
		if s.disabled != nil && s.disabled[d] {
			t[d] = s.verts[worst][d]
			continue
		}
		t[d] = s.cent[d] + factor*(s.verts[worst][d]-s.cent[d])
	}

	if sameVector(t, s.lastTrial) {
		s.usedLast++
	} else {
		s.usedLast = 0
		s.lastTrial = append(s.lastTrial[:0], t...)
	}

	if !WithinBounds(t, s.lower, s.upper) {
		return veryBig, false
	}
	v, ok := s.eval(t)
	if !ok {
		return veryBig, false
	}
	if v < s.vals[worst] {
		n := float64(len(s.verts))
		for d := 0; d < s.dim; d++ {
			s.cent[d] += (t[d] - s.verts[worst][d]) / n
		}
		copy(s.verts[worst], t)
		s.vals[worst] = v
		replaced = true
	}
	return v, replaced
}

// shrink moves every non-best vertex halfway toward the best vertex,
// re-evaluating each. A vertex whose shrunk coordinates are numerically
// identical to the original is degenerate and skipped; invalid
// evaluations keep their slot at veryBig. Returns the number of usable
// new values and false when degenerate plus invalid vertices reach all
// but one of the simplex points. The centroid is recomputed afterwards
// since more than one vertex moved.
func (s *state) shrink(best int) (moved int, ok bool) {
	bad := 0
	for i := range s.verts {
		if i == best {
			continue
		}
		same := true
		for d := 0; d < s.dim; d++ {
			if s.disabled != nil && s.disabled[d] {
				continue
			}
			nv := 0.5 * (s.verts[i][d] + s.verts[best][d])
			if nv != s.verts[i][d] {
				same = false
			}
			s.verts[i][d] = nv
		}
		if same {
			bad++
			continue
		}
		v, valid := s.eval(s.verts[i])
		if !valid {
			s.vals[i] = veryBig
			bad++
			continue
		}
		s.vals[i] = v
		moved++
	}
	if bad >= len(s.verts)-1 {
		return moved, false
	}
	s.cent = centroid(s.verts, s.dim)
	return moved, true
}

// promoteBest swaps the best vertex into slot 0 so callers can read
// verts[0]/vals[0] as the result.
func (s *state) promoteBest() {
	best, _, _ := bestWorst(s.vals)
	if best != 0 {
		s.verts[0], s.verts[best] = s.verts[best], s.verts[0]
		s.vals[0], s.vals[best] = s.vals[best], s.vals[0]
	}
}

// merit is the convergence gap between the worst and best values:
// the absolute difference, or twice it over the sum of magnitudes in
// fractional mode. A zero fractional denominator is fatal since
// continuing would compare against zero forever.
func merit(worst, best float64, relative bool) (float64, error) {
	if !relative {
		return worst - best, nil
	}
	denom := math.Abs(worst) + math.Abs(best)
	if denom == 0 {
		return 0, ErrDegenerateTolerance
	}
	return 2 * math.Abs(worst-best) / denom, nil
}

package simplex

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
)

// Minimize searches for the lowest objective value reachable from
// p.Start. Each pass seeds a fresh simplex around the current best
// guess via guided one-dimensional scans (or direct perturbation with
// FlagNoScan), runs the iteration loop, then restarts with step sizes
// shrunk from the observed vertex spread until the pass-level merit
// drops below the tolerance or a budget runs out.
//
// The returned Result is best-effort even when err is non-nil; callers
// must inspect err (errors.Is against the package sentinels) before
// trusting Result.Status.
func Minimize(ctx context.Context, p Problem, opts Options) (Result, error) {
	dim := len(p.Start)
	if p.Objective == nil {
		return Result{}, fmt.Errorf("simplex: nil objective")
	}
	if dim == 0 {
		return Result{}, fmt.Errorf("simplex: empty start vector")
	}
	for name, n := range map[string]int{
		"steps": len(p.Steps), "lower": len(p.Lower),
		"upper": len(p.Upper), "disabled": len(p.Disabled),
	} {
		if n != 0 && n != dim {
			return Result{}, fmt.Errorf("simplex: %s length %d does not match dimension %d", name, n, dim)
		}
	}
	normalize(&opts)

	active := dim
	for _, off := range p.Disabled {
		if off {
			active--
		}
	}

	var rng *rand.Rand
	if opts.Flags&FlagRandomSigns != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}

	dx := deriveSteps(p)
	guess := cloneVector(p.Start)
	res := Result{X: cloneVector(p.Start), F: veryBig}
	evals := 0

	for pass := 1; pass <= opts.MaxPasses; pass++ {
		res.Passes = pass

		evals++
		f0, ok := p.Objective(guess)
		res.Evaluations = evals
		if !ok {
			return res, ErrInvalidStart
		}
		if f0 < res.F {
			res.F = f0
			res.X = cloneVector(guess)
		}
		if f0 <= opts.Target {
			res.Status = StatusTargetMet
			return res, nil
		}
		if ctx.Err() != nil {
			res.Status = StatusCancelled
			return res, nil
		}
		if active == 0 {
			// Nothing to perturb: the guess is the answer.
			res.Status = StatusConverged
			return res, nil
		}

		s := &state{
			dim:      dim,
			lower:    p.Lower,
			upper:    p.Upper,
			disabled: p.Disabled,
			obj:      p.Objective,
			evals:    evals,
			maxEvals: opts.MaxEvaluations,
		}
		s.verts = append(s.verts, cloneVector(guess))
		s.vals = append(s.vals, f0)

		for d := 0; d < dim; d++ {
			if p.Disabled != nil && p.Disabled[d] {
				continue
			}
			base, fbase := s.verts[0], s.vals[0]
			if opts.Flags&FlagScanFromSecond != 0 && len(s.verts) > 1 {
				base, fbase = s.verts[1], s.vals[1]
			}
			step := dx[d]
			if rng != nil && rng.Intn(2) == 1 {
				step = -step
			}
			var (
				v   []float64
				fv  float64
				err error
			)
			if opts.Flags&FlagNoScan != 0 {
				v, fv, err = s.perturbVertex(d, base, step, &opts)
			} else {
				v, fv, err = s.scanVertex(d, base, fbase, step, &opts)
			}
			if err != nil {
				res.Evaluations = s.evals
				return res, err
			}
			s.verts = append(s.verts, v)
			s.vals = append(s.vals, fv)
		}
		s.cent = centroid(s.verts, dim)

		status, err := s.iterate(ctx, &opts)
		evals = s.evals
		res.Evaluations = evals
		if s.vals[0] < res.F {
			res.F = s.vals[0]
			res.X = cloneVector(s.verts[0])
		}
		res.Status = status

		if opts.Report != nil {
			opts.Report(res.F, cloneVector(res.X), pass, evals)
		}
		if opts.Flags&FlagVerbose != 0 {
			slog.Info("simplex pass complete",
				"pass", pass,
				"best", res.F,
				"evals", evals,
				"status", status.String(),
			)
		}
		if err != nil {
			return res, err
		}
		switch status {
		case StatusTargetMet, StatusBudgetExhausted:
			return res, nil
		case StatusCancelled:
			if opts.Flags&FlagVerbose != 0 {
				slog.Info("simplex aborted by caller", "pass", pass, "evals", evals)
			}
			return res, nil
		}

		// Pass-level convergence: gap between the value the pass
		// started from and the value it ended at.
		gap, err := merit(f0, s.vals[0], opts.Relative)
		if err != nil {
			return res, err
		}
		if gap < opts.Tolerance {
			res.Status = StatusConverged
			return res, nil
		}

		for d := 0; d < dim; d++ {
			if p.Disabled != nil && p.Disabled[d] {
				continue
			}
			if sp := spread(s.verts, d); sp > 0 {
				dx[d] = opts.StepDecay * sp
			} else {
				dx[d] *= opts.StepDecay
			}
		}
		guess = cloneVector(s.verts[0])
	}
	return res, ErrPassBudget
}

// scanVertex builds one initial-simplex vertex by stepping coordinate d
// away from base. If the first step fails to improve on fbase the sign
// is flipped, then the step shrunk by ScanDivisor, up to MaxDivisions
// times. Once a decrease is found, up to three additional steps are
// taken in that direction while it keeps improving. A valid but
// never-improving point is still accepted; only finding no valid point
// at all is fatal.
func (s *state) scanVertex(d int, base []float64, fbase, step float64, opts *Options) ([]float64, float64, error) {
	var (
		cand      []float64
		fcand     float64
		haveValid bool
	)
	for div := 0; div <= opts.MaxDivisions; div++ {
		for _, sgn := range [2]float64{1, -1} {
			t := cloneVector(base)
			t[d] += sgn * step
			if !WithinBounds(t, s.lower, s.upper) {
				continue
			}
			v, ok := s.eval(t)
			if !ok {
				continue
			}
			if !haveValid {
				cand, fcand, haveValid = t, v, true
			}
			if v < fbase {
				for k := 0; k < 3; k++ {
					n := cloneVector(t)
					n[d] += sgn * step
					if !WithinBounds(n, s.lower, s.upper) {
						break
					}
					nv, nok := s.eval(n)
					if !nok || nv >= v {
						break
					}
					t, v = n, nv
				}
				return t, v, nil
			}
		}
		step /= opts.ScanDivisor
	}
	if haveValid {
		return cand, fcand, nil
	}
	return nil, 0, ErrInitialSimplex
}

// perturbVertex is the FlagNoScan fallback: step coordinate d by
// step/ScanDivisor with alternating sign and doubling magnitude until a
// valid (not necessarily improving) point is found.
func (s *state) perturbVertex(d int, base []float64, step float64, opts *Options) ([]float64, float64, error) {
	step /= opts.ScanDivisor
	for div := 0; div < opts.MaxDivisions; div++ {
		for _, sgn := range [2]float64{1, -1} {
			t := cloneVector(base)
			t[d] += sgn * step
			if !WithinBounds(t, s.lower, s.upper) {
				continue
			}
			if v, ok := s.eval(t); ok {
				return t, v, nil
			}
		}
		step *= 2
	}
	return nil, 0, ErrInitialSimplex
}

// deriveSteps fills in missing step sizes: a quarter of the bound range
// for constrained dimensions, else a quarter of the guess magnitude,
// else 0.25 for a zero guess.
func deriveSteps(p Problem) []float64 {
	dx := make([]float64, len(p.Start))
	for d := range dx {
		if p.Steps != nil && p.Steps[d] != 0 {
			dx[d] = math.Abs(p.Steps[d])
			continue
		}
		if p.Lower != nil && p.Upper != nil && p.Lower[d] != p.Upper[d] {
			dx[d] = 0.25 * (p.Upper[d] - p.Lower[d])
			continue
		}
		dx[d] = 0.25 * math.Abs(p.Start[d])
		if dx[d] == 0 {
			dx[d] = 0.25
		}
	}
	return dx
}

// spread is the coordinate range of the simplex along dimension d.
func spread(verts [][]float64, d int) float64 {
	lo, hi := verts[0][d], verts[0][d]
	for _, v := range verts[1:] {
		if v[d] < lo {
			lo = v[d]
		}
		if v[d] > hi {
			hi = v[d]
		}
	}
	return hi - lo
}

// normalize replaces non-positive budgets and out-of-range factors with
// the defaults so a zero-valued Options still terminates.
func normalize(opts *Options) {
	def := DefaultOptions()
	if opts.MaxEvaluations <= 0 {
		opts.MaxEvaluations = def.MaxEvaluations
	}
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = def.MaxPasses
	}
	if opts.MaxDivisions <= 0 {
		opts.MaxDivisions = def.MaxDivisions
	}
	if opts.ScanDivisor <= 1 {
		opts.ScanDivisor = def.ScanDivisor
	}
	if opts.StepDecay <= 0 || opts.StepDecay >= 1 {
		opts.StepDecay = def.StepDecay
	}
}

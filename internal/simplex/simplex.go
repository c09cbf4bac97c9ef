// Package simplex implements a constrained, derivative-free Nelder-Mead
// minimizer with a guided per-dimension scan initializer.
//
// The engine is synchronous and single-threaded: every objective
// evaluation blocks the calling goroutine, and all working storage is
// owned by one Minimize invocation. Cancellation is cooperative via the
// context passed to Minimize, polled at pass and iteration boundaries.
package simplex

import (
	"errors"
	"math"
)

// Objective maps a coordinate vector to a scalar value. The second
// return reports whether the point is valid; invalid points are routed
// around by the search rather than treated as errors. Implementations
// must not retain the slice beyond the call.
type Objective func(x []float64) (float64, bool)

// Report is an optional progress callback invoked after each pass with
// the best value and point found so far, the pass number and the total
// evaluation count.
type Report func(best float64, x []float64, pass, evals int)

// Flag is a bit-set of behavioral switches.
type Flag uint32

const (
	// FlagVerbose logs per-pass progress.
	FlagVerbose Flag = 1 << iota
	// FlagDebug logs per-iteration diagnostics.
	FlagDebug
	// FlagRandomSigns randomizes the sign of the initial scan steps.
	FlagRandomSigns
	// FlagNoScan builds the initial simplex by direct perturbation
	// instead of guided one-dimensional scans.
	FlagNoScan
	// FlagStrictLoop breaks on the first reused trial point instead of
	// tolerating two repeats.
	FlagStrictLoop
	// FlagScanFromSecond bases scans on the first scan-built vertex
	// once it exists, instead of the starting guess.
	FlagScanFromSecond
)

// Options control termination, budgets and behavior of Minimize.
type Options struct {
	// Target stops the search as soon as a value at or below it is seen.
	Target float64
	// Tolerance is the convergence gap between the worst and best
	// simplex values, interpreted per Relative.
	Tolerance float64
	// Relative selects the fractional merit 2|worst-best|/(|worst|+|best|)
	// instead of the absolute gap.
	Relative bool
	// MaxEvaluations bounds the total number of objective calls.
	MaxEvaluations int
	// MaxPasses bounds the number of restarts with shrunken steps.
	MaxPasses int
	// MaxDivisions bounds step halving/growth attempts while building
	// the initial simplex.
	MaxDivisions int
	// ScanDivisor shrinks the scan step between construction attempts.
	ScanDivisor float64
	// StepDecay scales the observed vertex spread into the next pass's
	// step sizes.
	StepDecay float64
	// Flags is the behavior bit-set.
	Flags Flag
	// Report, when non-nil, is called after every pass.
	Report Report
	// Seed feeds the sign generator used with FlagRandomSigns.
	Seed int64
}

// DefaultOptions returns the settings used when a caller has no opinion.
func DefaultOptions() Options {
	return Options{
		Target:         math.Inf(-1),
		Tolerance:      1e-8,
		MaxEvaluations: 5000,
		MaxPasses:      4,
		MaxDivisions:   10,
		ScanDivisor:    2,
		StepDecay:      0.5,
	}
}

// Problem describes the search space handed to Minimize.
type Problem struct {
	// Objective is the function being minimized.
	Objective Objective
	// Start is the initial guess. Its length fixes the dimensionality.
	Start []float64
	// Steps are optional initial step sizes. A nil slice or a zero
	// entry is auto-derived from the bounds or the guess magnitude.
	Steps []float64
	// Lower and Upper are optional per-dimension limits. A dimension
	// with Lower == Upper is unconstrained.
	Lower, Upper []float64
	// Disabled marks dimensions excluded from perturbation. They stay
	// in every vertex but do not count toward the simplex size.
	Disabled []bool
}

// Status classifies how a minimization ended.
type Status int

const (
	// StatusFailed is the zero value, set when the search could not run
	// or ended on a fatal condition; see the returned error.
	StatusFailed Status = iota
	// StatusConverged means the merit dropped below the tolerance.
	StatusConverged
	// StatusTargetMet means a value at or below Target was found.
	StatusTargetMet
	// StatusStuck means no move made progress; the best point found is
	// still returned.
	StatusStuck
	// StatusCancelled means the context was cancelled at a poll point.
	StatusCancelled
	// StatusBudgetExhausted means the evaluation budget ran out.
	StatusBudgetExhausted
)

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "failed"
	case StatusConverged:
		return "converged"
	case StatusTargetMet:
		return "target met"
	case StatusStuck:
		return "stuck"
	case StatusCancelled:
		return "cancelled"
	case StatusBudgetExhausted:
		return "budget exhausted"
	default:
		return "unknown"
	}
}

// Result is the outcome of a minimization. X and F are best-effort even
// when Minimize also returns an error.
type Result struct {
	// X is the best point found.
	X []float64
	// F is the objective value at X.
	F float64
	// Evaluations is the total number of objective calls consumed.
	Evaluations int
	// Passes is the number of outer passes that ran.
	Passes int
	// Status classifies the termination.
	Status Status
}

// Sentinel errors for the fatal conditions. Check with errors.Is; the
// accompanying Result still carries the best point seen and the
// evaluation count.
var (
	// ErrInvalidStart reports that the initial guess failed evaluation.
	ErrInvalidStart = errors.New("simplex: initial guess failed evaluation")
	// ErrInitialSimplex reports that no valid initial simplex could be
	// constructed within the division budget.
	ErrInitialSimplex = errors.New("simplex: unable to construct a valid initial simplex")
	// ErrDegenerateTolerance reports a zero denominator in the
	// fractional merit.
	ErrDegenerateTolerance = errors.New("simplex: zero denominator in fractional merit")
	// ErrPassBudget reports that MaxPasses ran out before convergence.
	ErrPassBudget = errors.New("simplex: pass budget exhausted before convergence")
)

// veryBig stands in for the value of points that are out of bounds or
// reported invalid by the objective, so the search routes around them.
const veryBig = math.MaxFloat64

func cloneVector(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	return out
}

func sameVector(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

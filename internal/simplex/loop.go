package simplex

import (
	"context"
	"log/slog"
)

// iterate runs reflect/expand/contract/shrink cycles on the current
// simplex until it converges, reaches the target, stalls, exhausts the
// evaluation budget, or the context is cancelled. The best vertex is
// always swapped into slot 0 before returning.
func (s *state) iterate(ctx context.Context, opts *Options) (Status, error) {
	maxReused := 2
	if opts.Flags&FlagStrictLoop != 0 {
		maxReused = 0
	}

	for {
		if ctx.Err() != nil {
			s.promoteBest()
			return StatusCancelled, nil
		}

		best, worst, second := bestWorst(s.vals)
		if s.vals[best] <= opts.Target {
			s.promoteBest()
			return StatusTargetMet, nil
		}
		gap, err := merit(s.vals[worst], s.vals[best], opts.Relative)
		if err != nil {
			s.promoteBest()
			return StatusStuck, err
		}
		if gap < opts.Tolerance {
			s.promoteBest()
			return StatusConverged, nil
		}
		if s.evals >= s.maxEvals {
			s.promoteBest()
			return StatusBudgetExhausted, nil
		}

		progress := 0

		refl, replaced := s.trial(worst, -1)
		if replaced {
			progress++
		}

		if refl < s.vals[best] {
			// Reflection beat the current best: try to keep going in
			// the same direction. The generator only replaces on
			// improvement, so the better of the two survives.
			if _, rep := s.trial(worst, 2); rep {
				progress++
			}
		} else if refl > s.vals[second] {
			// A tie with the second-worst stays in the middle band:
			// contraction only fires when reflection is strictly worse.
			con, rep := s.trial(worst, 0.5)
			if rep {
				progress++
			}
			if con >= refl {
				moved, ok := s.shrink(best)
				progress += moved
				if !ok {
					s.promoteBest()
					return StatusStuck, nil
				}
			}
		}

		if s.usedLast > maxReused {
			s.promoteBest()
			return StatusStuck, nil
		}
		if progress == 0 {
			s.promoteBest()
			return StatusStuck, nil
		}

		if opts.Flags&FlagDebug != 0 {
			slog.Debug("simplex iteration",
				"best", s.vals[best],
				"worst", s.vals[worst],
				"merit", gap,
				"evals", s.evals,
			)
		}
	}
}

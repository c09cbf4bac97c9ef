package simplex

// WithinBounds reports whether x satisfies the per-dimension limits.
// A dimension with lower[i] == upper[i] is unconstrained; nil bounds
// always pass.
func WithinBounds(x, lower, upper []float64) bool {
	if lower == nil || upper == nil {
		return true
	}
	for i := range x {
		if lower[i] == upper[i] {
			continue
		}
		if x[i] < lower[i] || x[i] > upper[i] {
			return false
		}
	}
	return true
}

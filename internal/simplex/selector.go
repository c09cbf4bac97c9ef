package simplex

// bestWorst returns the indices of the lowest, highest and
// second-highest values. Best and worst are seeded from indices 0 and 1
// so the two-point case is handled, then refined by a linear scan. Ties
// for best keep the lowest index; secondWorst is the largest value
// excluding the worst index.
func bestWorst(vals []float64) (best, worst, second int) {
	best, worst = 0, 1
	if vals[1] < vals[0] {
		best, worst = 1, 0
	}
	for i := 2; i < len(vals); i++ {
		if vals[i] < vals[best] {
			best = i
		}
		if vals[i] > vals[worst] {
			worst = i
		}
	}
	second = -1
	for i := range vals {
		if i == worst {
			continue
		}
		if second < 0 || vals[i] > vals[second] {
			second = i
		}
	}
	return best, worst, second
}

package simplex

// centroid returns the mean position of all vertices. It is computed
// from scratch once per pass; afterwards the trial generator maintains
// it incrementally as vertices are replaced.
func centroid(verts [][]float64, dim int) []float64 {
	c := make([]float64, dim)
	for _, v := range verts {
		for d := 0; d < dim; d++ {
			c[d] += v[d]
		}
	}
	n := float64(len(verts))
	for d := range c {
		c[d] /= n
	}
	return c
}

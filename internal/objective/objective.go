// Package objective provides benchmark objective functions for the
// minimizer CLI and tests.
package objective

import (
	"math"
	"sort"

	"github.com/cwbudde/simplexfit/internal/simplex"
)

// Sphere is the sum of squares, minimum 0 at the origin. Any dimension.
func Sphere(x []float64) (float64, bool) {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum, true
}

// Rosenbrock is the classic banana valley, minimum 0 at (1,...,1).
// Needs at least two dimensions.
func Rosenbrock(x []float64) (float64, bool) {
	var sum float64
	for i := 0; i < len(x)-1; i++ {
		a := x[i+1] - x[i]*x[i]
		b := 1 - x[i]
		sum += 100*a*a + b*b
	}
	return sum, true
}

// Himmelblau has four equal minima of 0, e.g. at (3, 2). Two dimensions.
func Himmelblau(x []float64) (float64, bool) {
	a := x[0]*x[0] + x[1] - 11
	b := x[0] + x[1]*x[1] - 7
	return a*a + b*b, true
}

// Eggholder is a heavily multimodal two-dimensional benchmark with its
// known minimum near (512, 404.23).
func Eggholder(x []float64) (float64, bool) {
	a := -(x[1] + 47) * math.Sin(math.Sqrt(math.Abs(x[1]+x[0]/2+47)))
	b := -x[0] * math.Sin(math.Sqrt(math.Abs(x[0]-(x[1]+47))))
	return a + b, true
}

// Quadratic returns a strictly convex bowl with its minimum at center.
func Quadratic(center []float64) simplex.Objective {
	return func(x []float64) (float64, bool) {
		var sum float64
		for i, v := range x {
			d := v - center[i]
			sum += d * d
		}
		return sum, true
	}
}

// Disk is a sphere objective that reports points outside the given
// radius as invalid, exercising the invalid-point recovery path.
func Disk(radius float64) simplex.Objective {
	return func(x []float64) (float64, bool) {
		var sum float64
		for _, v := range x {
			sum += v * v
		}
		if sum > radius*radius {
			return 0, false
		}
		return sum, true
	}
}

// The parameterized objectives get fixed two-dimensional registry
// entries so they stay reachable from the CLI: a bowl centered at
// (3, -2) and an origin-centered disk of radius 5.
var registry = map[string]simplex.Objective{
	"sphere":     Sphere,
	"rosenbrock": Rosenbrock,
	"himmelblau": Himmelblau,
	"eggholder":  Eggholder,
	"quadratic":  Quadratic([]float64{3, -2}),
	"disk":       Disk(5),
}

// Lookup resolves an objective by its registry name.
func Lookup(name string) (simplex.Objective, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names lists the registered objective names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

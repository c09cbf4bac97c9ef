package trace

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotConvergence renders best-value-versus-evaluations to a PNG file.
func PlotConvergence(entries []Entry, path string) error {
	if len(entries) == 0 {
		return fmt.Errorf("no trace entries to plot")
	}

	p := plot.New()
	p.Title.Text = "Convergence"
	p.X.Label.Text = "evaluations"
	p.Y.Label.Text = "best value"

	pts := make(plotter.XYs, len(entries))
	for i, e := range entries {
		pts[i].X = float64(e.Evaluations)
		pts[i].Y = e.Best
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build convergence line: %w", err)
	}
	p.Add(plotter.NewGrid(), line)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

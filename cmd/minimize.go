package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/simplexfit/internal/config"
	"github.com/cwbudde/simplexfit/internal/objective"
	"github.com/cwbudde/simplexfit/internal/opt"
	"github.com/cwbudde/simplexfit/internal/trace"
)

var (
	cfgPath string
	outDir  string
	doPlot  bool
)

var minimizeCmd = &cobra.Command{
	Use:   "minimize",
	Short: "Run a minimization described by a YAML file",
	Long: `Loads a run description, minimizes the named objective and writes a
per-pass JSONL trace (and optionally a convergence plot) to a fresh run
directory. Interrupting with Ctrl-C stops the search at the next pass or
iteration boundary and keeps the best point found so far.`,
	RunE: runMinimize,
}

func init() {
	minimizeCmd.Flags().StringVar(&cfgPath, "config", "", "Run description YAML (required)")
	minimizeCmd.Flags().StringVar(&outDir, "out", "data", "Output base directory")
	minimizeCmd.Flags().BoolVar(&doPlot, "plot", false, "Write a convergence plot PNG")

	minimizeCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(minimizeCmd)
}

func runMinimize(cmd *cobra.Command, args []string) error {
	run, err := config.LoadFile(cfgPath)
	if err != nil {
		return err
	}

	obj, ok := objective.Lookup(run.Objective)
	if !ok {
		return fmt.Errorf("unknown objective %q (have: %s)",
			run.Objective, strings.Join(objective.Names(), ", "))
	}

	writer, err := trace.NewWriter(outDir)
	if err != nil {
		return err
	}
	defer writer.Close()

	slog.Info("Starting minimization",
		"run_id", writer.RunID(),
		"objective", run.Objective,
		"algorithm", algorithmName(run),
		"dimensions", len(run.Start),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var entries []trace.Entry
	record := func(e trace.Entry) {
		e.Timestamp = time.Now()
		entries = append(entries, e)
		if err := writer.Append(e); err != nil {
			slog.Warn("Failed to append trace entry", "error", err)
		}
	}

	var optimizer opt.Optimizer
	if run.Algorithm == "mayfly" {
		iters, pop := run.Iterations, run.Population
		if iters <= 0 {
			iters = 100
		}
		if pop <= 0 {
			pop = 30
		}
		optimizer = opt.NewMayfly(iters, pop, run.Seed, run.Lower[0], run.Upper[0])
	} else {
		opts := run.EngineOptions()
		opts.Report = func(best float64, x []float64, pass, evals int) {
			record(trace.Entry{Pass: pass, Evaluations: evals, Best: best, Params: x})
		}
		optimizer = opt.NewSimplex(opts, run.Steps, run.Lower, run.Upper, run.Disabled)
	}

	start := time.Now()
	result, err := optimizer.Minimize(ctx, obj, run.Start)
	elapsed := time.Since(start)
	if err != nil {
		// The result still carries the best point seen; surface it
		// before failing so partial work is not lost silently.
		slog.Error("Minimization failed",
			"error", err,
			"best", result.F,
			"evals", result.Evaluations,
		)
		return err
	}

	if run.Algorithm == "mayfly" {
		record(trace.Entry{Pass: 1, Evaluations: result.Evaluations, Best: result.F, Params: result.X})
	}

	if doPlot {
		plotPath := filepath.Join(writer.Dir(), "convergence.png")
		if err := trace.PlotConvergence(entries, plotPath); err != nil {
			return err
		}
		slog.Info("Wrote convergence plot", "path", plotPath)
	}

	slog.Info("Minimization complete",
		"status", result.Status.String(),
		"best", result.F,
		"evals", result.Evaluations,
		"passes", result.Passes,
		"elapsed", elapsed,
	)

	fmt.Printf("%s: f = %.6g at %v (%d evaluations, %d passes)\n",
		result.Status, result.F, result.X, result.Evaluations, result.Passes)
	fmt.Printf("Trace written to %s\n", writer.Dir())

	return nil
}

func algorithmName(run *config.Run) string {
	if run.Algorithm == "" {
		return "simplex"
	}
	return run.Algorithm
}

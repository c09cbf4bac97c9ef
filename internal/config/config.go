// Package config loads and validates YAML run descriptions for the
// minimizer CLI.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/simplexfit/internal/simplex"
)

// Run describes one minimization: the objective, the search space and
// the engine settings. Omitted engine settings fall back to the engine
// defaults.
type Run struct {
	Objective string `yaml:"objective"`
	// Algorithm selects "simplex" (default) or "mayfly".
	Algorithm string    `yaml:"algorithm,omitempty"`
	Start     []float64 `yaml:"start"`
	Steps     []float64 `yaml:"steps,omitempty"`
	Lower     []float64 `yaml:"lower,omitempty"`
	Upper     []float64 `yaml:"upper,omitempty"`
	Disabled  []bool    `yaml:"disabled,omitempty"`

	// Target is optional; absent means "minimize until tolerance".
	Target         *float64 `yaml:"target,omitempty"`
	Tolerance      float64  `yaml:"tolerance,omitempty"`
	Relative       bool     `yaml:"relative,omitempty"`
	MaxEvaluations int      `yaml:"max_evaluations,omitempty"`
	MaxPasses      int      `yaml:"max_passes,omitempty"`
	MaxDivisions   int      `yaml:"max_divisions,omitempty"`
	ScanDivisor    float64  `yaml:"scan_divisor,omitempty"`
	StepDecay      float64  `yaml:"step_decay,omitempty"`
	Seed           int64    `yaml:"seed,omitempty"`
	Flags          []string `yaml:"flags,omitempty"`

	// Population-optimizer knobs, used when Algorithm is "mayfly".
	Iterations int `yaml:"iterations,omitempty"`
	Population int `yaml:"population,omitempty"`
}

var flagNames = map[string]simplex.Flag{
	"verbose":          simplex.FlagVerbose,
	"debug":            simplex.FlagDebug,
	"random-signs":     simplex.FlagRandomSigns,
	"no-scan":          simplex.FlagNoScan,
	"strict-loop":      simplex.FlagStrictLoop,
	"scan-from-second": simplex.FlagScanFromSecond,
}

// ParseYAML parses a Run from YAML bytes and validates it.
func ParseYAML(data []byte) (*Run, error) {
	var run Run
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse run yaml: %w", err)
	}
	if err := run.validate(); err != nil {
		return nil, fmt.Errorf("invalid run: %w", err)
	}
	return &run, nil
}

// LoadFile reads and parses a Run from a YAML file.
func LoadFile(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}
	return ParseYAML(data)
}

func (r *Run) validate() error {
	if r.Objective == "" {
		return fmt.Errorf("objective is required")
	}
	if len(r.Start) == 0 {
		return fmt.Errorf("start vector is required")
	}
	dim := len(r.Start)
	for name, n := range map[string]int{
		"steps": len(r.Steps), "lower": len(r.Lower),
		"upper": len(r.Upper), "disabled": len(r.Disabled),
	} {
		if n != 0 && n != dim {
			return fmt.Errorf("%s has %d entries, start has %d", name, n, dim)
		}
	}
	if (r.Lower == nil) != (r.Upper == nil) {
		return fmt.Errorf("lower and upper bounds must be given together")
	}
	for i := range r.Lower {
		if r.Lower[i] > r.Upper[i] {
			return fmt.Errorf("lower[%d] exceeds upper[%d]", i, i)
		}
	}
	switch r.Algorithm {
	case "", "simplex", "mayfly":
	default:
		return fmt.Errorf("unknown algorithm %q", r.Algorithm)
	}
	if r.Algorithm == "mayfly" && r.Lower == nil {
		return fmt.Errorf("mayfly needs bounds")
	}
	for _, name := range r.Flags {
		if _, ok := flagNames[name]; !ok {
			return fmt.Errorf("unknown flag %q", name)
		}
	}
	if r.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative")
	}
	for name, n := range map[string]int{
		"max_evaluations": r.MaxEvaluations,
		"max_passes":      r.MaxPasses,
		"max_divisions":   r.MaxDivisions,
	} {
		if n < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}
	return nil
}

// EngineOptions converts the run description into engine options,
// starting from the engine defaults.
func (r *Run) EngineOptions() simplex.Options {
	opts := simplex.DefaultOptions()
	if r.Target != nil {
		opts.Target = *r.Target
	} else {
		opts.Target = math.Inf(-1)
	}
	if r.Tolerance > 0 {
		opts.Tolerance = r.Tolerance
	}
	opts.Relative = r.Relative
	if r.MaxEvaluations > 0 {
		opts.MaxEvaluations = r.MaxEvaluations
	}
	if r.MaxPasses > 0 {
		opts.MaxPasses = r.MaxPasses
	}
	if r.MaxDivisions > 0 {
		opts.MaxDivisions = r.MaxDivisions
	}
	if r.ScanDivisor > 1 {
		opts.ScanDivisor = r.ScanDivisor
	}
	if r.StepDecay > 0 && r.StepDecay < 1 {
		opts.StepDecay = r.StepDecay
	}
	opts.Seed = r.Seed
	for _, name := range r.Flags {
		opts.Flags |= flagNames[name]
	}
	return opts
}

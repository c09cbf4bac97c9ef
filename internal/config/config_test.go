package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/simplexfit/internal/simplex"
)

const validRun = `
objective: rosenbrock
start: [-1.2, 1]
steps: [0.5, 0.5]
tolerance: 1e-6
max_evaluations: 2000
max_passes: 6
flags: [verbose, random-signs]
seed: 42
`

func TestParseYAMLValid(t *testing.T) {
	run, err := ParseYAML([]byte(validRun))
	require.NoError(t, err)

	assert.Equal(t, "rosenbrock", run.Objective)
	assert.Equal(t, []float64{-1.2, 1}, run.Start)
	assert.Equal(t, []float64{0.5, 0.5}, run.Steps)
	assert.Equal(t, int64(42), run.Seed)
}

func TestEngineOptionsMapping(t *testing.T) {
	run, err := ParseYAML([]byte(validRun))
	require.NoError(t, err)

	opts := run.EngineOptions()
	assert.Equal(t, 1e-6, opts.Tolerance)
	assert.Equal(t, 2000, opts.MaxEvaluations)
	assert.Equal(t, 6, opts.MaxPasses)
	assert.Equal(t, int64(42), opts.Seed)
	assert.NotZero(t, opts.Flags&simplex.FlagVerbose)
	assert.NotZero(t, opts.Flags&simplex.FlagRandomSigns)
	assert.Zero(t, opts.Flags&simplex.FlagNoScan)
	assert.True(t, math.IsInf(opts.Target, -1), "absent target should be -Inf")
}

func TestEngineOptionsDefaults(t *testing.T) {
	run, err := ParseYAML([]byte("objective: sphere\nstart: [1, 2]\n"))
	require.NoError(t, err)

	def := simplex.DefaultOptions()
	opts := run.EngineOptions()
	assert.Equal(t, def.Tolerance, opts.Tolerance)
	assert.Equal(t, def.MaxEvaluations, opts.MaxEvaluations)
	assert.Equal(t, def.MaxPasses, opts.MaxPasses)
}

func TestParseYAMLTarget(t *testing.T) {
	run, err := ParseYAML([]byte("objective: sphere\nstart: [1]\ntarget: 0.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, run.EngineOptions().Target)
}

func TestParseYAMLRejects(t *testing.T) {
	cases := map[string]string{
		"missing objective":  "start: [1, 2]\n",
		"missing start":      "objective: sphere\n",
		"length mismatch":    "objective: sphere\nstart: [1, 2]\nsteps: [1]\n",
		"lonely lower":       "objective: sphere\nstart: [1]\nlower: [0]\n",
		"inverted bounds":    "objective: sphere\nstart: [1]\nlower: [2]\nupper: [1]\n",
		"unknown flag":       "objective: sphere\nstart: [1]\nflags: [turbo]\n",
		"unknown algorithm":  "objective: sphere\nstart: [1]\nalgorithm: annealing\n",
		"mayfly sans bounds": "objective: sphere\nstart: [1]\nalgorithm: mayfly\n",
		"negative tolerance": "objective: sphere\nstart: [1]\ntolerance: -1\n",
		"not yaml":           "objective: [\n",
	}
	for name, text := range cases {
		_, err := ParseYAML([]byte(text))
		assert.Error(t, err, name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validRun), 0644))

	run, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rosenbrock", run.Objective)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

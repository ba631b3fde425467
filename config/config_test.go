package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meenmo/mathfinance/solver"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100, cfg.Solver.MaxIterations)
	assert.Equal(t, 1e-6, cfg.Solver.Tolerance)
	assert.Equal(t, 3, cfg.Solver.DivergenceWindow)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, int32(10), cfg.Output.Precision)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mathfin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  max_iterations: 50
  tolerance: 1e-9
log:
  level: debug
  format: json
output:
  precision: 6
`), 0o600))

	t.Setenv("MATHFIN_SOLVER_MAX_ITERATIONS", "25")
	t.Setenv("MATHFIN_LOG_OUTPUT", "stdout")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Solver.MaxIterations, "environment wins over file")
	assert.Equal(t, 1e-9, cfg.Solver.Tolerance)
	assert.Equal(t, 3, cfg.Solver.DivergenceWindow, "defaults fill missing keys")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stdout", cfg.Log.Output)
	assert.Equal(t, int32(6), cfg.Output.Precision)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	t.Setenv("MATHFIN_SOLVER_TOLERANCE", "-1")
	t.Setenv("MATHFIN_LOG_LEVEL", "chatty")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solver.tolerance")
	assert.Contains(t, err.Error(), "log.level")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Solver.MaxIterations = 0
	cfg.Log.Format = "xml"
	cfg.Output.Precision = 20

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solver.max_iterations")
	assert.Contains(t, err.Error(), "log.format")
	assert.Contains(t, err.Error(), "output.precision")
}

func TestSolverConfig_Solver(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop()
	got := Default().Solver.Solver(logger)

	want := solver.DefaultConfig()
	want.Logger = logger
	assert.Equal(t, want, got)
	assert.NoError(t, got.Validate())
}

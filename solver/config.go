package solver

import (
	"go.uber.org/zap"

	"github.com/meenmo/mathfinance/errs"
)

// Config holds the Newton-Raphson iteration limits.
type Config struct {
	// MaxIterations caps the number of Newton steps.
	MaxIterations int

	// Tolerance is the relative step size |(x[i+1]-x[i])/x[i+1]| at which the
	// iteration is considered converged.
	Tolerance float64

	// DivergenceWindow is the number of trailing relative errors that must be
	// strictly increasing for the iteration to be abandoned as divergent.
	// Values below 2 disable divergence detection.
	DivergenceWindow int

	// Logger receives a debug entry per iteration. Nil disables logging.
	Logger *zap.Logger
}

// Defaults used by the spreadsheet-style rate solvers.
const (
	DefaultMaxIterations    = 100
	DefaultTolerance        = 1e-6
	DefaultDivergenceWindow = 3
)

// DefaultConfig returns the configuration used by Rate and InternalRateOfReturn.
func DefaultConfig() Config {
	return Config{
		MaxIterations:    DefaultMaxIterations,
		Tolerance:        DefaultTolerance,
		DivergenceWindow: DefaultDivergenceWindow,
	}
}

// Validate rejects configurations that cannot terminate sensibly.
func (c Config) Validate() error {
	if c.MaxIterations <= 0 {
		return errs.E("solver.Config", errs.InvalidArgument, "max iterations must be positive, got %d", c.MaxIterations)
	}
	if !(c.Tolerance > 0) {
		return errs.E("solver.Config", errs.InvalidArgument, "tolerance must be positive, got %g", c.Tolerance)
	}
	return nil
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

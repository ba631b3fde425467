// Package solver finds roots of real equations with Newton-Raphson iteration.
//
// Every call owns its iteration state, so equations and solves can run
// concurrently as long as the Equation values themselves are not mutated.
package solver

import (
	"math"

	"go.uber.org/zap"

	"github.com/meenmo/mathfinance/errs"
)

// Equation is a real function together with its first derivative.
type Equation interface {
	Value(x float64) float64
	Derivative(x float64) float64
}

// Func adapts a pair of plain functions to Equation.
type Func struct {
	F  func(float64) float64
	DF func(float64) float64
}

func (f Func) Value(x float64) float64      { return f.F(x) }
func (f Func) Derivative(x float64) float64 { return f.DF(x) }

// Result is a converged root.
type Result struct {
	Root       float64
	Iterations int
}

// Newton iterates x[i+1] = x[i] - f(x[i])/f'(x[i]) starting from x0.
//
// Once the relative step |(x[i+1]-x[i])/x[i+1]| is within tolerance the
// refined iterate x[i+1] is reported as the root, not x[i]. Only an exact
// zero crossing (x[i+1] == 0) reports x[i].
//
// Failures are reported as *errs.Error with kind InvalidArgument (the
// equation is NaN or infinite at an iterate), DivisionByZero (zero
// derivative), Diverged (see IsDivergent) or MaxIterationsExceeded.
func Newton(eq Equation, x0 float64, cfg Config) (Result, error) {
	const op = "solver.Newton"

	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	log := cfg.logger()

	x := x0
	history := make([]float64, 0, cfg.MaxIterations)

	for i := 1; i <= cfg.MaxIterations; i++ {
		fx := eq.Value(x)
		dfx := eq.Derivative(x)

		if !finite(fx) || !finite(dfx) {
			log.Debug("newton: undefined", zap.Int("iteration", i), zap.Float64("x", x))
			return Result{}, errs.E(op, errs.InvalidArgument, "equation is not finite at x=%g (iteration %d)", x, i)
		}
		if dfx == 0 {
			log.Debug("newton: zero derivative", zap.Int("iteration", i), zap.Float64("x", x))
			return Result{}, errs.E(op, errs.DivisionByZero, "zero derivative at x=%g (iteration %d)", x, i)
		}

		next := x - fx/dfx

		// An exact zero crossing leaves no relative error to measure.
		if next == 0 {
			return Result{Root: x, Iterations: i}, nil
		}

		eps := math.Abs((next - x) / next)
		history = append(history, eps)

		log.Debug("newton: step",
			zap.Int("iteration", i),
			zap.Float64("x", x),
			zap.Float64("fx", fx),
			zap.Float64("dfx", dfx),
			zap.Float64("eps", eps),
		)

		if IsDivergent(history, cfg.DivergenceWindow) {
			log.Debug("newton: divergent", zap.Int("iteration", i), zap.Float64s("errors", tail(history, cfg.DivergenceWindow)))
			return Result{}, errs.E(op, errs.Diverged, "relative error grew for %d consecutive iterations (iteration %d)", cfg.DivergenceWindow, i)
		}

		if eps <= cfg.Tolerance {
			return Result{Root: next, Iterations: i}, nil
		}

		x = next
	}

	log.Debug("newton: iteration cap reached", zap.Int("max_iterations", cfg.MaxIterations), zap.Float64("x", x))
	return Result{}, errs.E(op, errs.MaxIterationsExceeded, "no convergence within %d iterations", cfg.MaxIterations)
}

// IsDivergent reports whether the last window relative errors are strictly
// increasing. A window below 2 never reports divergence.
func IsDivergent(history []float64, window int) bool {
	if window < 2 || len(history) < window {
		return false
	}
	last := history[len(history)-window:]
	for k := 1; k < len(last); k++ {
		if !(last[k] > last[k-1]) {
			return false
		}
	}
	return true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func tail(s []float64, n int) []float64 {
	if n > len(s) {
		n = len(s)
	}
	return s[len(s)-n:]
}

// Package tvm implements time-value-of-money and cash-flow functions with the
// same interface as the spreadsheet financial functions (RATE, IRR, PV, ...).
package tvm

import (
	"math"

	"github.com/meenmo/mathfinance/errs"
	"github.com/meenmo/mathfinance/solver"
)

// DefaultGuess is the starting rate used by spreadsheets for RATE and IRR.
const DefaultGuess = 0.1

// Rate returns the periodic interest rate of an annuity (RATE).
func Rate(nper, pmt, pv, fv float64, typ PaymentType, guess float64) (float64, error) {
	return RateWith(solver.DefaultConfig(), nper, pmt, pv, fv, typ, guess)
}

// RateWith is Rate with explicit solver settings.
func RateWith(cfg solver.Config, nper, pmt, pv, fv float64, typ PaymentType, guess float64) (float64, error) {
	const op = "tvm.Rate"

	if err := typ.validate(op); err != nil {
		return 0, err
	}
	if nper < 0 {
		return 0, errs.E(op, errs.InvalidArgument, "number of periods must not be negative, got %g", nper)
	}
	if !finite(nper, pmt, pv, fv, guess) {
		return 0, errs.E(op, errs.InvalidArgument, "arguments must be finite numbers")
	}
	// The annuity term is 0/0 at a zero rate.
	if guess == 0 {
		return 0, errs.E(op, errs.InvalidArgument, "guess must not be zero")
	}

	eq := TVMEquation{NPer: nper, Pmt: pmt, PV: pv, FV: fv, Type: typ}
	res, err := solver.Newton(eq, guess, cfg)
	if err != nil {
		return 0, err
	}
	return res.Root, nil
}

// InternalRateOfReturn returns the rate at which the net present value of
// values is zero (IRR).
func InternalRateOfReturn(values []float64, guess float64) (float64, error) {
	return InternalRateOfReturnWith(solver.DefaultConfig(), values, guess)
}

// InternalRateOfReturnWith is InternalRateOfReturn with explicit solver settings.
func InternalRateOfReturnWith(cfg solver.Config, values []float64, guess float64) (float64, error) {
	const op = "tvm.InternalRateOfReturn"

	if err := checkCashFlows(op, values); err != nil {
		return 0, err
	}
	if !finite(guess) {
		return 0, errs.E(op, errs.InvalidArgument, "guess must be a finite number")
	}

	res, err := solver.Newton(NewNPVEquation(values), guess, cfg)
	if err != nil {
		return 0, err
	}
	return res.Root, nil
}

// checkCashFlows requires finite values with at least one sign change.
func checkCashFlows(op string, values []float64) error {
	if !finite(values...) {
		return errs.E(op, errs.InvalidArgument, "cash flows must be finite numbers")
	}
	lo, hi := minMax(values)
	if len(values) == 0 || lo*hi >= 0 {
		return errs.E(op, errs.InvalidCashFlowShape, "cash flow must contain at least one positive value and one negative value")
	}
	return nil
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

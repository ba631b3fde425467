package tvm

import (
	"math"

	"github.com/meenmo/mathfinance/errs"
)

// NetPresentValue discounts values at rate, the first value one full period
// out (NPV).
func NetPresentValue(rate float64, values []float64) (float64, error) {
	const op = "tvm.NetPresentValue"

	if !finite(values...) || !finite(rate) {
		return 0, errs.E(op, errs.InvalidArgument, "rate and cash flows must be finite numbers")
	}
	if rate <= -1 {
		return 0, errs.E(op, errs.InvalidArgument, "rate must be greater than -1, got %g", rate)
	}
	npv := NPVEquation{CashFlows: values}.Value(rate)
	if !finite(npv) {
		return 0, errs.E(op, errs.InvalidArgument, "net present value overflows at rate %g", rate)
	}
	return npv, nil
}

// ModifiedInternalRateOfReturn finances outflows at financeRate and reinvests
// inflows at reinvestRate (MIRR).
func ModifiedInternalRateOfReturn(values []float64, financeRate, reinvestRate float64) (float64, error) {
	const op = "tvm.ModifiedInternalRateOfReturn"

	if err := checkCashFlows(op, values); err != nil {
		return 0, err
	}
	if !finite(financeRate, reinvestRate) {
		return 0, errs.E(op, errs.InvalidArgument, "rates must be finite numbers")
	}
	if financeRate <= -1 || reinvestRate <= -1 {
		return 0, errs.E(op, errs.InvalidArgument, "rates must be greater than -1, got %g and %g", financeRate, reinvestRate)
	}

	positive := make([]float64, len(values))
	negative := make([]float64, len(values))
	for i, v := range values {
		if v >= 0 {
			positive[i] = v
		} else {
			negative[i] = v
		}
	}

	n := float64(len(values))
	inflows := NPVEquation{CashFlows: positive}.Value(reinvestRate) * math.Pow(1+reinvestRate, n)
	outflows := NPVEquation{CashFlows: negative}.Value(financeRate) * (1 + financeRate)

	mirr := math.Pow(-inflows/outflows, 1/(n-1)) - 1
	if !finite(mirr) {
		return 0, errs.E(op, errs.InvalidArgument, "modified internal rate of return is not a finite number")
	}
	return mirr, nil
}

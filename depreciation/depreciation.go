// Package depreciation computes asset depreciation per period the way the
// spreadsheet functions SLN, DB and SYD do.
package depreciation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/meenmo/mathfinance/errs"
)

// ratePlaces is the precision of the fixed-declining balance rate.
const ratePlaces = 3

// StraightLine is the depreciation for one period (SLN).
func StraightLine(cost, salvage float64, life int) (float64, error) {
	if err := checkAsset("depreciation.StraightLine", cost, life); err != nil {
		return 0, err
	}
	return (cost - salvage) / float64(life), nil
}

// FixedDeclining is the depreciation for period using the fixed-declining
// balance method (DB). month is the number of months in the first year; a
// short first year moves the remainder into period life+1.
func FixedDeclining(cost, salvage float64, life, period, month int) (float64, error) {
	const op = "depreciation.FixedDeclining"

	if err := checkAsset(op, cost, life); err != nil {
		return 0, err
	}
	if month < 1 || month > 12 {
		return 0, errs.E(op, errs.InvalidArgument, "month must be between 1 and 12, got %d", month)
	}
	if period < 1 || period > life+1 {
		return 0, errs.E(op, errs.InvalidArgument, "period must be between 1 and %d, got %d", life+1, period)
	}
	if period == life+1 && month == 12 {
		return 0, errs.E(op, errs.InvalidArgument, "period %d only exists when the first year is shorter than 12 months", period)
	}

	rate := decimal.NewFromFloat(1 - math.Pow(salvage/cost, 1/float64(life))).Round(ratePlaces).InexactFloat64()

	var accumulated, current float64
	for i := 1; i <= period; i++ {
		switch {
		case i == 1:
			current = cost * rate * float64(month) / 12
		case i == life+1:
			current = (cost - accumulated) * rate * float64(12-month) / 12
		default:
			current = (cost - accumulated) * rate
		}
		accumulated += current
	}
	return current, nil
}

// SumOfYearsDigits is the sum-of-years' digits depreciation for period per (SYD).
func SumOfYearsDigits(cost, salvage float64, life, per int) (float64, error) {
	const op = "depreciation.SumOfYearsDigits"

	if err := checkAsset(op, cost, life); err != nil {
		return 0, err
	}
	if per < 1 || per > life {
		return 0, errs.E(op, errs.InvalidArgument, "period must be between 1 and %d, got %d", life, per)
	}
	n := float64(life)
	return (cost - salvage) * float64(life-per+1) * 2 / n / (n + 1), nil
}

func checkAsset(op string, cost float64, life int) error {
	if !(cost > 0) || math.IsInf(cost, 0) {
		return errs.E(op, errs.InvalidArgument, "cost must be a positive number, got %g", cost)
	}
	if life <= 0 {
		return errs.E(op, errs.InvalidArgument, "life must be positive, got %d", life)
	}
	return nil
}

package bond

import (
	"math"
	"time"

	"github.com/meenmo/mathfinance/errs"
	"github.com/meenmo/mathfinance/solver"
	"github.com/meenmo/mathfinance/utils"
)

// DefaultYieldGuess is the starting yield (2.5%) when YieldInput.Guess is zero.
const DefaultYieldGuess = 0.025

// YieldInput holds the parameters needed to compute the yield to maturity
// of a bond from its clean price.
type YieldInput struct {
	// Settlement is the value date of the trade.
	Settlement time.Time
	// CleanPrice is the quoted price per 100 face value (e.g. 98.50).
	CleanPrice float64
	// CouponRate is the annual coupon in percent (e.g. 2.5 for 2.5%).
	CouponRate float64
	// Frequency is coupons per year (1 = annual, 2 = semi-annual).
	Frequency int
	// Convention counts accrued interest. Zero means ISMA99N.
	Convention DayCountConvention
	// PriorCoupon is the last coupon date on or before settlement. When
	// zero it is derived as the first cash flow minus one coupon period.
	PriorCoupon time.Time
	// Cashflows are the remaining cash flows *after* settlement, in per-100
	// terms, in date order. The last one is taken as maturity.
	Cashflows []Cashflow
	// Guess is the starting yield as a decimal.
	Guess float64
}

// YieldResult is the output of ComputeYield.
type YieldResult struct {
	// Yield is the annualised yield in percent (e.g. 2.83).
	Yield float64
	// DirtyPrice is the clean price plus accrued interest (per-100).
	DirtyPrice float64
	// AccruedInterest is the accrued coupon at settlement (per-100).
	AccruedInterest float64
	// Iterations is the number of Newton-Raphson steps taken.
	Iterations int
}

// ComputeYield solves for the yield y such that the dirty price, discounted
// per coupon period at y/f with a fractional first period, equals the clean
// price plus accrued interest.
func ComputeYield(in YieldInput, cfg solver.Config) (YieldResult, error) {
	const op = "bond.ComputeYield"

	if in.Settlement.IsZero() {
		return YieldResult{}, errs.E(op, errs.InvalidArgument, "settlement date is required")
	}
	if len(in.Cashflows) == 0 {
		return YieldResult{}, errs.E(op, errs.InvalidArgument, "cash flows are required")
	}
	if in.Frequency <= 0 {
		return YieldResult{}, errs.E(op, errs.InvalidArgument, "coupon frequency must be positive, got %d", in.Frequency)
	}
	if !(in.CleanPrice > 0) || math.IsInf(in.CleanPrice, 0) {
		return YieldResult{}, errs.E(op, errs.InvalidArgument, "clean price must be positive, got %g", in.CleanPrice)
	}

	settlement := utils.Civil(in.Settlement)
	first := utils.Civil(in.Cashflows[0].Date)
	if !settlement.Before(first) {
		return YieldResult{}, errs.E(op, errs.InvalidDateOrdering, "first cash flow %s must be after settlement %s",
			first.Format(utils.DateLayout), settlement.Format(utils.DateLayout))
	}

	prior := utils.Civil(in.PriorCoupon)
	if in.PriorCoupon.IsZero() {
		prior = utils.AddMonth(first, -12/in.Frequency)
	}
	convention := in.Convention
	if convention == 0 {
		convention = ISMA99N
	}

	factor, err := AccrualRequest{
		Convention:  convention,
		PriorCoupon: prior,
		Settlement:  settlement,
		NextCoupon:  first,
		Frequency:   float64(in.Frequency),
		Maturity:    in.Cashflows[len(in.Cashflows)-1].Date,
	}.Factor()
	if err != nil {
		return YieldResult{}, err
	}
	accrued := in.CouponRate * factor
	dirty := in.CleanPrice + accrued

	eq := newPriceEquation(dirty, settlement, prior, in.Frequency, in.Cashflows)
	guess := in.Guess
	if guess == 0 {
		guess = DefaultYieldGuess
	}

	res, err := solver.Newton(eq, guess, cfg)
	if err != nil {
		return YieldResult{}, err
	}

	return YieldResult{
		Yield:           res.Root * 100.0, // decimal → percent
		DirtyPrice:      dirty,
		AccruedInterest: accrued,
		Iterations:      res.Iterations,
	}, nil
}

// priceEquation is dirtyPrice(y) - target as a solver.Equation.
//
//	t_1   = days(settlement, cf[0]) / days(prevCoupon, cf[0])
//	t_k   = t_1 + (k − 1)
//	price = Σ CF_k / (1+y/f)^t_k
//	dP/dy = Σ −(t_k/f) · CF_k / (1+y/f)^(t_k+1)
type priceEquation struct {
	target  float64
	t1      float64
	freq    float64
	amounts []float64
}

func newPriceEquation(target float64, settlement, prevCoupon time.Time, freq int, cfs []Cashflow) priceEquation {
	amounts := make([]float64, len(cfs))
	for i, cf := range cfs {
		amounts[i] = cf.Amount()
	}
	t1 := float64(utils.DaysBetween(settlement, cfs[0].Date)) / float64(utils.DaysBetween(prevCoupon, cfs[0].Date))
	return priceEquation{target: target, t1: t1, freq: float64(freq), amounts: amounts}
}

func (e priceEquation) Value(y float64) float64 {
	var price float64
	for i, amt := range e.amounts {
		price += amt / math.Pow(1+y/e.freq, e.t1+float64(i))
	}
	return price - e.target
}

func (e priceEquation) Derivative(y float64) float64 {
	var deriv float64
	for i, amt := range e.amounts {
		t := e.t1 + float64(i)
		deriv += -t / e.freq * amt / math.Pow(1+y/e.freq, t+1)
	}
	return deriv
}

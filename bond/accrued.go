package bond

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/mathfinance/errs"
	"github.com/meenmo/mathfinance/utils"
)

// AmountPlaces is the number of decimal places accrued amounts are rounded to.
const AmountPlaces = 10

// AccrualRequest describes one accrued-interest calculation.
type AccrualRequest struct {
	Convention DayCountConvention
	// PriorCoupon is the last coupon date on or before settlement (d1).
	PriorCoupon time.Time
	// Settlement is the value date (d2).
	Settlement time.Time
	// NextCoupon is the coupon date following settlement (d3). Only the
	// ISMA-Year, Kenya and ISMA-99 conventions read it.
	NextCoupon time.Time
	// Frequency is the number of coupons per year.
	Frequency float64
	// Maturity decides the walking direction of irregular ISMA-99 periods.
	Maturity time.Time
}

// Factor returns the accrued interest factor, the fraction of one year's
// coupon accrued from PriorCoupon to Settlement.
func (r AccrualRequest) Factor() (float64, error) {
	const op = "bond.AccruedInterestFactor"

	if !r.Convention.valid() {
		return 0, errs.E(op, errs.InvalidDayCountMethod, "unknown day count convention %d", int(r.Convention))
	}

	d1, d2, d3 := utils.Civil(r.PriorCoupon), utils.Civil(r.Settlement), utils.Civil(r.NextCoupon)
	if d1.After(d2) {
		return 0, errs.E(op, errs.InvalidDateOrdering, "prior coupon %s is after settlement %s",
			d1.Format(utils.DateLayout), d2.Format(utils.DateLayout))
	}

	if r.Convention.usesCouponPeriod() {
		if !(r.Frequency > 0) || math.IsInf(r.Frequency, 0) {
			return 0, errs.E(op, errs.InvalidArgument, "coupon frequency must be positive, got %g", r.Frequency)
		}
		if !d1.Before(d3) {
			return 0, errs.E(op, errs.InvalidDateOrdering, "next coupon %s must be after prior coupon %s",
				d3.Format(utils.DateLayout), d1.Format(utils.DateLayout))
		}
	}

	days := float64(interestDays(r.Convention, d1, d2))

	switch r.Convention {
	case German, SpecGerman, French, US:
		return days / 360, nil
	case English:
		return days / 365, nil
	case CBKKenya:
		return days / 364, nil
	case ISMAYear, Kenya:
		return days / yearLength(d1, d3, r.Frequency), nil
	default:
		p := ismaPeriod{
			ultimo:    r.Convention == ISMA99U,
			d1:        d1,
			d2:        d2,
			d3:        d3,
			maturity:  utils.Civil(r.Maturity),
			frequency: r.Frequency,
		}
		return p.factor(days), nil
	}
}

// AccruedInterestFactor is the functional form of AccrualRequest.Factor.
func AccruedInterestFactor(c DayCountConvention, d1, d2, d3 time.Time, frequency float64, maturity time.Time) (float64, error) {
	return AccrualRequest{
		Convention:  c,
		PriorCoupon: d1,
		Settlement:  d2,
		NextCoupon:  d3,
		Frequency:   frequency,
		Maturity:    maturity,
	}.Factor()
}

// AccruedInterest converts a factor into a money amount:
// face × couponRate × factor, rounded to AmountPlaces.
func AccruedInterest(face, couponRate decimal.Decimal, factor float64) decimal.Decimal {
	return face.Mul(couponRate).Mul(decimal.NewFromFloat(factor)).Round(AmountPlaces)
}

// yearLength is the ISMA-Year denominator. For annual coupons the coupon
// period itself is the year when it has 365 or 366 days; otherwise the year
// is 366 days long only if a 29 February falls in (d1, d3].
func yearLength(d1, d3 time.Time, frequency float64) float64 {
	if frequency != 1 {
		if utils.IsLeapYear(d3.Year()) {
			return 366
		}
		return 365
	}

	if n := utils.DaysBetween(d1, d3); n == 365 || n == 366 {
		return float64(n)
	}
	for y := d1.Year(); y <= d3.Year(); y++ {
		feb := utils.LastDayOfMonth(y, time.February)
		if feb.Day() == 29 && feb.After(d1) && !feb.After(d3) {
			return 366
		}
	}
	return 365
}

package bond

import (
	"math"
	"time"

	"github.com/meenmo/mathfinance/utils"
)

// ismaPeriod holds the dates of one ISMA-99 accrual. It lives for a single
// Factor call.
type ismaPeriod struct {
	ultimo    bool // 99U: coupons fall on the last day of the month
	d1        time.Time
	d2        time.Time
	d3        time.Time
	maturity  time.Time
	frequency float64
}

// couponMonths returns the regular coupon length in months and the frequency
// it implies. Frequencies that do not divide the year fall back to annual
// notional periods.
func (p ismaPeriod) couponMonths() (int, float64) {
	months := 12 / p.frequency
	if months == math.Trunc(months) {
		return int(months), p.frequency
	}
	return 12, 1
}

// regular reports whether [d1, d3] is exactly one coupon period long.
func (p ismaPeriod) regular(months int) bool {
	y1, m1, day1 := p.d1.Date()
	y3, m3, day3 := p.d3.Date()

	if (y3-y1)*12+int(m3-m1) != months {
		return false
	}
	if p.ultimo {
		return utils.IsLastDayOfMonth(p.d1) && utils.IsLastDayOfMonth(p.d3)
	}
	switch {
	case day1 == day3:
		return true
	case !utils.IsValidDate(y1, int(m1), day3) && utils.IsLastDayOfMonth(p.d1):
		return true
	case !utils.IsValidDate(y3, int(m3), day1) && utils.IsLastDayOfMonth(p.d3):
		return true
	}
	return false
}

func (p ismaPeriod) factor(interestDays float64) float64 {
	months, freq := p.couponMonths()

	if p.regular(months) {
		return 1 / freq * (interestDays / float64(utils.DaysBetween(p.d1, p.d3)))
	}
	return p.walk(months) / freq
}

// walk lays notional coupon periods from an anchor towards the other end of
// [d1, d3] and sums, for each notional period, the share of it that overlaps
// the accrual span [d1, d2]. The anchor is d1 walking forward when d3 is the
// maturity date, d3 walking backward otherwise.
func (p ismaPeriod) walk(months int) float64 {
	anchor, end, direction := p.d3, p.d1, -1
	if p.d3.Equal(p.maturity) {
		anchor, end, direction = p.d1, p.d3, 1
	}
	ay, am, aday := anchor.Date()

	var factor float64
	curr := anchor
	for k := 0; direction*utils.DaysBetween(end, curr) < 0; {
		k += direction
		y, m := utils.AddMonths(ay, int(am), k*months)

		next := utils.LastDayOfMonth(y, time.Month(m))
		if !p.ultimo && utils.IsValidDate(y, m, aday) {
			next = utils.Date(y, time.Month(m), aday)
		}

		from := utils.MaxDate(p.d1, utils.MinDate(curr, next))
		to := utils.MinDate(p.d2, utils.MaxDate(curr, next))
		overlap := utils.DaysBetween(from, to)
		length := direction * utils.DaysBetween(curr, next)

		if overlap > 0 {
			factor += float64(overlap) / float64(length)
		}
		curr = next
	}
	return factor
}

package bond

import (
	"math"
	"time"

	"github.com/meenmo/mathfinance/errs"
	"github.com/meenmo/mathfinance/utils"
)

// maxBillDays is the longest settlement-to-maturity span of a Treasury bill.
const maxBillDays = 364

// billDays returns the actual days from settlement to maturity.
func billDays(op string, settlement, maturity time.Time, limit int) (int, error) {
	dsm := utils.DaysBetween(settlement, maturity)
	if dsm <= 0 {
		return 0, errs.E(op, errs.InvalidDateOrdering, "settlement %s must be before maturity %s",
			utils.Civil(settlement).Format(utils.DateLayout), utils.Civil(maturity).Format(utils.DateLayout))
	}
	if dsm > limit {
		return 0, errs.E(op, errs.InvalidDateOrdering, "maturity can't be more than one year after settlement (%d days)", dsm)
	}
	return dsm, nil
}

// TBillPrice is the price per 100 face value of a Treasury bill (TBILLPRICE).
func TBillPrice(settlement, maturity time.Time, discount float64) (float64, error) {
	dsm, err := billDays("bond.TBillPrice", settlement, maturity, maxBillDays)
	if err != nil {
		return 0, err
	}
	return 100 * (1 - discount*float64(dsm)/360), nil
}

// TBillYield is the yield of a Treasury bill bought at price (TBILLYIELD).
func TBillYield(settlement, maturity time.Time, price float64) (float64, error) {
	const op = "bond.TBillYield"
	dsm, err := billDays(op, settlement, maturity, maxBillDays)
	if err != nil {
		return 0, err
	}
	if price <= 0 {
		return 0, errs.E(op, errs.InvalidArgument, "price must be positive, got %g", price)
	}
	return (100 - price) / price * 360 / float64(dsm), nil
}

// TBillEquivalentYield is the bond-equivalent yield of a Treasury bill
// (TBILLEQ). Up to half a year it is a plain ACT/365 rate; beyond that the
// semi-annual compounding of a coupon bond is taken into account.
func TBillEquivalentYield(settlement, maturity time.Time, discount float64) (float64, error) {
	const op = "bond.TBillEquivalentYield"
	dsm, err := billDays(op, settlement, maturity, 366)
	if err != nil {
		return 0, err
	}
	d := float64(dsm)

	switch {
	case dsm <= 182:
		return 365 * discount / (360 - discount*d), nil
	case dsm == 366 && spansLeapDay(settlement, maturity):
		return 2 * (math.Sqrt(1-discount*366/(discount*366-360)) - 1), nil
	case dsm > 365:
		return 0, errs.E(op, errs.InvalidDateOrdering, "maturity can't be more than one year after settlement (%d days)", dsm)
	}
	return (-d + math.Sqrt(d*d-(2*d-365)*discount*d*365/(discount*d-360))) / (d - 365.0/2), nil
}

// spansLeapDay reports whether a 29 February lies between settlement and a
// maturity one year later.
func spansLeapDay(settlement, maturity time.Time) bool {
	if settlement.Month() <= time.February {
		return utils.IsLeapYear(settlement.Year())
	}
	return utils.IsLeapYear(maturity.Year())
}

// DiscountRate is the discount rate of a security bought at price and
// redeemed at redemption, both per 100 face value (DISC).
func DiscountRate(settlement, maturity time.Time, price, redemption float64, basis utils.Basis) (float64, error) {
	const op = "bond.DiscountRate"
	if price <= 0 || redemption <= 0 {
		return 0, errs.E(op, errs.InvalidArgument, "price and redemption must be positive")
	}
	dsm, perYear, err := discountDays(op, settlement, maturity, basis)
	if err != nil {
		return 0, err
	}
	return (redemption - price) * perYear / redemption / dsm, nil
}

// PriceDiscount is the price per 100 face value of a discounted security
// (PRICEDISC).
func PriceDiscount(settlement, maturity time.Time, discount, redemption float64, basis utils.Basis) (float64, error) {
	const op = "bond.PriceDiscount"
	if discount <= 0 || redemption <= 0 {
		return 0, errs.E(op, errs.InvalidArgument, "discount and redemption must be positive")
	}
	dsm, perYear, err := discountDays(op, settlement, maturity, basis)
	if err != nil {
		return 0, err
	}
	return redemption - discount*redemption*dsm/perYear, nil
}

func discountDays(op string, settlement, maturity time.Time, basis utils.Basis) (dsm, perYear float64, err error) {
	if !utils.Civil(settlement).Before(utils.Civil(maturity)) {
		return 0, 0, errs.E(op, errs.InvalidDateOrdering, "settlement %s must be before maturity %s",
			utils.Civil(settlement).Format(utils.DateLayout), utils.Civil(maturity).Format(utils.DateLayout))
	}
	days, err := utils.DaysDifference(settlement, maturity, basis)
	if err != nil {
		return 0, 0, err
	}
	year, err := utils.DaysPerYear(settlement.Year(), basis)
	if err != nil {
		return 0, 0, err
	}
	return float64(days), float64(year), nil
}

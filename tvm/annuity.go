package tvm

import (
	"fmt"
	"math"

	"github.com/meenmo/mathfinance/errs"
)

// PaymentType says when annuity payments fall within each period.
type PaymentType int

const (
	PayEnd   PaymentType = 0 // end of each period
	PayBegin PaymentType = 1 // beginning of each period
)

func (t PaymentType) String() string {
	switch t {
	case PayEnd:
		return "end"
	case PayBegin:
		return "begin"
	default:
		return fmt.Sprintf("PaymentType(%d)", int(t))
	}
}

func (t PaymentType) validate(op string) error {
	if t != PayEnd && t != PayBegin {
		return errs.E(op, errs.InvalidArgument, "payment type must be end (0) or begin (1), got %d", int(t))
	}
	return nil
}

// EffectiveRate converts a nominal annual rate compounded npery times a year
// into the effective annual rate (EFFECT).
func EffectiveRate(nominal float64, npery int) (float64, error) {
	if npery <= 0 {
		return 0, errs.E("tvm.EffectiveRate", errs.InvalidArgument, "compounding periods per year must be positive, got %d", npery)
	}
	n := float64(npery)
	return math.Pow(1+nominal/n, n) - 1, nil
}

// NominalRate is the inverse of EffectiveRate (NOMINAL).
func NominalRate(effective float64, npery int) (float64, error) {
	if npery <= 0 {
		return 0, errs.E("tvm.NominalRate", errs.InvalidArgument, "compounding periods per year must be positive, got %d", npery)
	}
	n := float64(npery)
	return n * (math.Pow(effective+1, 1/n) - 1), nil
}

// PresentValue of an annuity (PV).
func PresentValue(rate, nper, pmt, fv float64, typ PaymentType) (float64, error) {
	const op = "tvm.PresentValue"
	if err := checkAnnuity(op, nper, typ); err != nil {
		return 0, err
	}
	if rate == 0 {
		return -fv - pmt*nper, nil
	}
	g := math.Pow(1+rate, nper)
	return (-pmt*(1+rate*float64(typ))*((g-1)/rate) - fv) / g, nil
}

// FutureValue of an annuity (FV).
func FutureValue(rate, nper, pmt, pv float64, typ PaymentType) (float64, error) {
	const op = "tvm.FutureValue"
	if err := checkAnnuity(op, nper, typ); err != nil {
		return 0, err
	}
	if rate == 0 {
		return -pv - pmt*nper, nil
	}
	g := math.Pow(1+rate, nper)
	return -pv*g - pmt*(1+rate*float64(typ))*(g-1)/rate, nil
}

// Payment is the constant periodic payment of an annuity (PMT).
func Payment(rate, nper, pv, fv float64, typ PaymentType) (float64, error) {
	const op = "tvm.Payment"
	if err := checkAnnuity(op, nper, typ); err != nil {
		return 0, err
	}
	if rate == 0 {
		if nper == 0 {
			return 0, errs.E(op, errs.InvalidArgument, "rate and number of periods can't both be zero")
		}
		return (-pv - fv) / nper, nil
	}
	g := math.Pow(1+rate, nper)
	return (-fv - pv*g) / (1 + rate*float64(typ)) / ((g - 1) / rate), nil
}

// Periods is the number of periods of an annuity (NPER).
func Periods(rate, pmt, pv, fv float64, typ PaymentType) (float64, error) {
	const op = "tvm.Periods"
	if err := typ.validate(op); err != nil {
		return 0, err
	}
	if rate == 0 {
		if pmt == 0 {
			return 0, errs.E(op, errs.InvalidArgument, "rate and payment can't both be zero")
		}
		return (-pv - fv) / pmt, nil
	}
	if pmt == 0 && pv == 0 {
		return 0, errs.E(op, errs.InvalidArgument, "payment and present value can't both be zero when the rate is not zero")
	}
	k := pmt * (1 + rate*float64(typ)) / rate
	return math.Log((k-fv)/(pv+k)) / math.Log(1+rate), nil
}

// InterestPayment is the interest part of payment number per (IPMT).
func InterestPayment(rate float64, per int, nper, pv, fv float64, typ PaymentType) (float64, error) {
	interest, _, err := InterestAndPrincipal(rate, per, nper, pv, fv, typ)
	return interest, err
}

// PrincipalPayment is the principal part of payment number per (PPMT).
func PrincipalPayment(rate float64, per int, nper, pv, fv float64, typ PaymentType) (float64, error) {
	_, principal, err := InterestAndPrincipal(rate, per, nper, pv, fv, typ)
	return principal, err
}

// InterestAndPrincipal splits payment number per into its interest and
// principal parts by rolling the outstanding capital forward. The first
// payment of an annuity-due carries no interest.
func InterestAndPrincipal(rate float64, per int, nper, pv, fv float64, typ PaymentType) (interest, principal float64, err error) {
	const op = "tvm.InterestAndPrincipal"
	if err := checkAnnuity(op, nper, typ); err != nil {
		return 0, 0, err
	}
	if per < 1 || float64(per) > nper {
		return 0, 0, errs.E(op, errs.InvalidArgument, "period must be between 1 and %g, got %d", nper, per)
	}

	pmt, err := Payment(rate, nper, pv, fv, typ)
	if err != nil {
		return 0, 0, err
	}

	capital := pv
	for i := 1; i <= per; i++ {
		if typ == PayBegin && i == 1 {
			interest = 0
		} else {
			interest = -capital * rate
		}
		principal = pmt - interest
		capital += principal
	}
	return interest, principal, nil
}

func checkAnnuity(op string, nper float64, typ PaymentType) error {
	if nper < 0 {
		return errs.E(op, errs.InvalidArgument, "number of periods must not be negative, got %g", nper)
	}
	return typ.validate(op)
}

package bond_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/mathfinance/bond"
	"github.com/meenmo/mathfinance/errs"
	"github.com/meenmo/mathfinance/solver"
)

func annualBond(t *testing.T, coupon float64, dates ...string) []bond.Cashflow {
	t.Helper()
	cfs := make([]bond.Cashflow, len(dates))
	for i, d := range dates {
		cfs[i] = bond.Cashflow{Date: mustDate(t, d), Coupon: coupon}
	}
	cfs[len(cfs)-1].Principal = 100
	return cfs
}

func TestComputeYield_ParBond(t *testing.T) {
	t.Parallel()

	res, err := bond.ComputeYield(bond.YieldInput{
		Settlement: mustDate(t, "2024-01-15"),
		CleanPrice: 100,
		CouponRate: 5,
		Frequency:  1,
		Cashflows:  annualBond(t, 5, "2025-01-15", "2026-01-15", "2027-01-15"),
	}, solver.DefaultConfig())
	require.NoError(t, err)

	assert.InDelta(t, 5.0, res.Yield, 1e-6)
	assert.Zero(t, res.AccruedInterest)
	assert.Equal(t, 100.0, res.DirtyPrice)
}

func TestComputeYield_SemiAnnualParBond(t *testing.T) {
	t.Parallel()

	res, err := bond.ComputeYield(bond.YieldInput{
		Settlement: mustDate(t, "2024-01-15"),
		CleanPrice: 100,
		CouponRate: 5,
		Frequency:  2,
		Cashflows:  annualBond(t, 2.5, "2024-07-15", "2025-01-15", "2025-07-15"),
	}, solver.DefaultConfig())
	require.NoError(t, err)

	assert.InDelta(t, 5.0, res.Yield, 1e-5)
}

func TestComputeYield_MidPeriodSettlement(t *testing.T) {
	t.Parallel()

	res, err := bond.ComputeYield(bond.YieldInput{
		Settlement:  mustDate(t, "2024-04-15"),
		CleanPrice:  98.5,
		CouponRate:  5,
		Frequency:   1,
		Convention:  bond.German,
		PriorCoupon: mustDate(t, "2024-01-15"),
		Cashflows:   annualBond(t, 5, "2025-01-15", "2026-01-15", "2027-01-15"),
	}, solver.DefaultConfig())
	require.NoError(t, err)

	assert.InDelta(t, 1.25, res.AccruedInterest, 1e-12)
	assert.InDelta(t, 99.75, res.DirtyPrice, 1e-12)
	assert.InDelta(t, 5.5903400532, res.Yield, 1e-6)
	assert.LessOrEqual(t, res.Iterations, 6)
}

func TestComputeYield_Validation(t *testing.T) {
	t.Parallel()

	cfs := annualBond(t, 5, "2025-01-15", "2026-01-15")
	valid := bond.YieldInput{
		Settlement: mustDate(t, "2024-04-15"),
		CleanPrice: 99,
		CouponRate: 5,
		Frequency:  1,
		Cashflows:  cfs,
	}

	tests := []struct {
		name   string
		mutate func(*bond.YieldInput)
		kind   errs.Kind
	}{
		{"missing settlement", func(in *bond.YieldInput) { in.Settlement = mustDate(t, "0001-01-01") }, errs.InvalidArgument},
		{"no cash flows", func(in *bond.YieldInput) { in.Cashflows = nil }, errs.InvalidArgument},
		{"zero frequency", func(in *bond.YieldInput) { in.Frequency = 0 }, errs.InvalidArgument},
		{"non-positive price", func(in *bond.YieldInput) { in.CleanPrice = 0 }, errs.InvalidArgument},
		{"settlement after first flow", func(in *bond.YieldInput) { in.Settlement = mustDate(t, "2025-02-01") }, errs.InvalidDateOrdering},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := valid
			tt.mutate(&in)
			_, err := bond.ComputeYield(in, solver.DefaultConfig())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), err.Error())
		})
	}
}

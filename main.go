package main

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meenmo/mathfinance/bond"
	"github.com/meenmo/mathfinance/tvm"
	"github.com/meenmo/mathfinance/utils"
)

func main() {
	// 48 monthly payments of 200 on a loan of 8000.
	rate, err := tvm.Rate(48, -200, 8000, 0, tvm.PayEnd, 0.01)
	if err != nil {
		fmt.Println("rate:", err)
		return
	}
	fmt.Printf("Monthly rate: %.10f (annual %.4f%%)\n", rate, rate*1200)

	flows := []float64{-1000, 300, 420, 380, 480}
	irr, err := tvm.InternalRateOfReturn(flows, tvm.DefaultGuess)
	if err != nil {
		fmt.Println("irr:", err)
		return
	}
	fmt.Printf("IRR: %.10f\n", irr)

	// Short first coupon of a semi-annual 5% bond, settled mid period.
	req := bond.AccrualRequest{
		Convention:  bond.ISMA99N,
		PriorCoupon: utils.Date(2024, 3, 1),
		Settlement:  utils.Date(2024, 5, 1),
		NextCoupon:  utils.Date(2024, 7, 15),
		Frequency:   2,
		Maturity:    utils.Date(2030, 7, 15),
	}
	factor, err := req.Factor()
	if err != nil {
		fmt.Println("accrued:", err)
		return
	}
	amount := bond.AccruedInterest(decimal.NewFromInt(1000000), decimal.RequireFromString("0.05"), factor)

	fmt.Printf("Accrued factor: %.10f\n", factor)
	fmt.Printf("Accrued interest: %s\n", amount.StringFixed(2))
}

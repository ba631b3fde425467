package tvm

import "math"

// TVMEquation is the time-value-of-money balance
//
//	pv(1+r)^n + pmt(1+r·type)((1+r)^n - 1)/r + fv = 0
//
// as a function of the periodic rate r. Its zero is the rate of an annuity.
type TVMEquation struct {
	NPer float64
	Pmt  float64
	PV   float64
	FV   float64
	Type PaymentType
}

func (e TVMEquation) Value(r float64) float64 {
	t := float64(e.Type)
	g := math.Pow(1+r, e.NPer)
	return e.PV*g + e.Pmt*(1+r*t)*(g-1)/r + e.FV
}

func (e TVMEquation) Derivative(r float64) float64 {
	t := float64(e.Type)
	g := math.Pow(1+r, e.NPer)
	g1 := math.Pow(1+r, e.NPer-1)
	return e.NPer*e.PV*g1 +
		e.Pmt*(t*(g-1)/r+(1+r*t)*(e.NPer*r*g1-g+1)/(r*r))
}

// NPVEquation is the net present value of CashFlows, the first of which is
// discounted one full period, as a function of the discount rate.
type NPVEquation struct {
	CashFlows []float64
}

// NewNPVEquation copies values so later changes by the caller do not leak
// into a running solve.
func NewNPVEquation(values []float64) NPVEquation {
	return NPVEquation{CashFlows: append([]float64(nil), values...)}
}

func (e NPVEquation) Value(r float64) float64 {
	var npv float64
	for i, cf := range e.CashFlows {
		npv += cf / math.Pow(1+r, float64(i+1))
	}
	return npv
}

// Derivative keeps the (1+r)^(i-1)/(1+r)^(2i) form so results agree with
// spreadsheet implementations to the last bit.
func (e NPVEquation) Derivative(r float64) float64 {
	var d float64
	for i, cf := range e.CashFlows {
		n := float64(i + 1)
		d += cf * (-n) * math.Pow(1+r, n-1) / math.Pow(1+r, 2*n)
	}
	return d
}

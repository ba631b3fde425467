package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/meenmo/mathfinance/tvm"
)

// npvCmd holds the flags for the 'npv' subcommand.
type npvCmd struct {
	rate   float64
	values string
}

func (*npvCmd) Name() string     { return "npv" }
func (*npvCmd) Synopsis() string { return "net present value of a cash-flow series (NPV)" }
func (*npvCmd) Usage() string {
	return `mathfin npv -rate <rate> -values <v1,v2,...>

  The first value is discounted one full period.
`
}

func (c *npvCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.rate, "rate", 0, "Discount rate per period")
	f.StringVar(&c.values, "values", "", "Comma separated cash flows, one per period")
}

func (c *npvCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	return env.run(c.Name(), func() (any, error) {
		values, err := parseValues(c.values)
		if err != nil {
			return nil, err
		}
		v, err := tvm.NetPresentValue(c.rate, values)
		if err != nil {
			return nil, err
		}
		if v, err = env.round(v); err != nil {
			return nil, err
		}
		return valueOutput{Value: v}, nil
	})
}

// tvmCmd holds the flags for the 'tvm' subcommand.
type tvmCmd struct {
	solve                   string
	rate, nper, pmt, pv, fv float64
	typ                     int
}

func (*tvmCmd) Name() string     { return "tvm" }
func (*tvmCmd) Synopsis() string { return "closed-form annuity values (PV, FV, PMT, NPER)" }
func (*tvmCmd) Usage() string {
	return `mathfin tvm -solve pv|fv|pmt|nper [-rate <r>] [-nper <n>] [-pmt <amount>] [-pv <amount>] [-fv <amount>] [-type 0|1]

  Solves the annuity equation for one unknown; the flag of the unknown is ignored.
`
}

func (c *tvmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.solve, "solve", "pv", "Unknown to solve for (pv, fv, pmt, nper)")
	f.Float64Var(&c.rate, "rate", 0, "Interest rate per period")
	f.Float64Var(&c.nper, "nper", 0, "Number of payment periods")
	f.Float64Var(&c.pmt, "pmt", 0, "Payment made each period")
	f.Float64Var(&c.pv, "pv", 0, "Present value")
	f.Float64Var(&c.fv, "fv", 0, "Future value")
	f.IntVar(&c.typ, "type", 0, "0 when payments are due at the end of the period, 1 at the beginning")
}

func (c *tvmCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	return env.run(c.Name(), func() (any, error) {
		typ := tvm.PaymentType(c.typ)
		var (
			v   float64
			err error
		)
		switch c.solve {
		case "pv":
			v, err = tvm.PresentValue(c.rate, c.nper, c.pmt, c.fv, typ)
		case "fv":
			v, err = tvm.FutureValue(c.rate, c.nper, c.pmt, c.pv, typ)
		case "pmt":
			v, err = tvm.Payment(c.rate, c.nper, c.pv, c.fv, typ)
		case "nper":
			v, err = tvm.Periods(c.rate, c.pmt, c.pv, c.fv, typ)
		default:
			return nil, fmt.Errorf("unknown -solve %q (want pv, fv, pmt or nper)", c.solve)
		}
		if err != nil {
			return nil, err
		}
		if v, err = env.round(v); err != nil {
			return nil, err
		}
		return valueOutput{Kind: c.solve, Value: v}, nil
	})
}

package cli

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/meenmo/mathfinance/tvm"
)

// rateCmd holds the flags for the 'rate' subcommand.
type rateCmd struct {
	nper, pmt, pv, fv float64
	typ               int
	guess             float64
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "periodic interest rate of an annuity (RATE)" }
func (*rateCmd) Usage() string {
	return `mathfin rate -nper <n> -pmt <amount> -pv <amount> [-fv <amount>] [-type 0|1] [-guess <rate>]

  Solves the time-value-of-money equation for the periodic rate.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.nper, "nper", 0, "Number of payment periods")
	f.Float64Var(&c.pmt, "pmt", 0, "Payment made each period")
	f.Float64Var(&c.pv, "pv", 0, "Present value")
	f.Float64Var(&c.fv, "fv", 0, "Future value")
	f.IntVar(&c.typ, "type", 0, "0 when payments are due at the end of the period, 1 at the beginning")
	f.Float64Var(&c.guess, "guess", tvm.DefaultGuess, "Starting rate")
}

type rateOutput struct {
	Rate float64 `json:"rate"`
}

func (c *rateCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	return env.run(c.Name(), func() (any, error) {
		r, err := tvm.RateWith(env.solver(), c.nper, c.pmt, c.pv, c.fv, tvm.PaymentType(c.typ), c.guess)
		if err != nil {
			return nil, err
		}
		if r, err = env.round(r); err != nil {
			return nil, err
		}
		return rateOutput{Rate: r}, nil
	})
}

// irrCmd holds the flags for the 'irr' subcommand.
type irrCmd struct {
	values string
	guess  float64
}

func (*irrCmd) Name() string     { return "irr" }
func (*irrCmd) Synopsis() string { return "internal rate of return of a cash-flow series (IRR)" }
func (*irrCmd) Usage() string {
	return `mathfin irr -values <v1,v2,...> [-guess <rate>]

  Finds the rate at which the net present value of the cash flows is zero.
`
}

func (c *irrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.values, "values", "", "Comma separated cash flows, one per period")
	f.Float64Var(&c.guess, "guess", tvm.DefaultGuess, "Starting rate")
}

func (c *irrCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	return env.run(c.Name(), func() (any, error) {
		values, err := parseValues(c.values)
		if err != nil {
			return nil, err
		}
		r, err := tvm.InternalRateOfReturnWith(env.solver(), values, c.guess)
		if err != nil {
			return nil, err
		}
		if r, err = env.round(r); err != nil {
			return nil, err
		}
		return rateOutput{Rate: r}, nil
	})
}

// mirrCmd holds the flags for the 'mirr' subcommand.
type mirrCmd struct {
	values       string
	financeRate  float64
	reinvestRate float64
}

func (*mirrCmd) Name() string     { return "mirr" }
func (*mirrCmd) Synopsis() string { return "modified internal rate of return (MIRR)" }
func (*mirrCmd) Usage() string {
	return `mathfin mirr -values <v1,v2,...> -finance-rate <rate> -reinvest-rate <rate>
`
}

func (c *mirrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.values, "values", "", "Comma separated cash flows, one per period")
	f.Float64Var(&c.financeRate, "finance-rate", 0, "Interest rate paid on negative cash flows")
	f.Float64Var(&c.reinvestRate, "reinvest-rate", 0, "Interest rate earned on reinvested positive cash flows")
}

func (c *mirrCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	return env.run(c.Name(), func() (any, error) {
		values, err := parseValues(c.values)
		if err != nil {
			return nil, err
		}
		r, err := tvm.ModifiedInternalRateOfReturn(values, c.financeRate, c.reinvestRate)
		if err != nil {
			return nil, err
		}
		if r, err = env.round(r); err != nil {
			return nil, err
		}
		return rateOutput{Rate: r}, nil
	})
}

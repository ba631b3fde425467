package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/meenmo/mathfinance/depreciation"
)

// depreciationCmd holds the flags for the 'depreciation' subcommand.
type depreciationCmd struct {
	method        string
	cost, salvage float64
	life, period  int
	month         int
}

func (*depreciationCmd) Name() string     { return "depreciation" }
func (*depreciationCmd) Synopsis() string { return "asset depreciation for one period (SLN, DB, SYD)" }
func (*depreciationCmd) Usage() string {
	return `mathfin depreciation -method sln|db|syd -cost <amount> -salvage <amount> -life <periods> [-period <n>] [-month <m>]
`
}

func (c *depreciationCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "sln", "Method (sln straight-line, db fixed-declining, syd sum-of-years' digits)")
	f.Float64Var(&c.cost, "cost", 0, "Initial cost of the asset")
	f.Float64Var(&c.salvage, "salvage", 0, "Value at the end of the depreciation")
	f.IntVar(&c.life, "life", 0, "Number of depreciation periods")
	f.IntVar(&c.period, "period", 1, "Period to report (db, syd)")
	f.IntVar(&c.month, "month", 12, "Months in the first year (db)")
}

func (c *depreciationCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	return env.run(c.Name(), func() (any, error) {
		var (
			v   float64
			err error
		)
		switch c.method {
		case "sln":
			v, err = depreciation.StraightLine(c.cost, c.salvage, c.life)
		case "db":
			v, err = depreciation.FixedDeclining(c.cost, c.salvage, c.life, c.period, c.month)
		case "syd":
			v, err = depreciation.SumOfYearsDigits(c.cost, c.salvage, c.life, c.period)
		default:
			return nil, fmt.Errorf("unknown -method %q (want sln, db or syd)", c.method)
		}
		if err != nil {
			return nil, err
		}
		if v, err = env.round(v); err != nil {
			return nil, err
		}
		return valueOutput{Kind: c.method, Value: v}, nil
	})
}

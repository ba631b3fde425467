package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/meenmo/mathfinance/bond"
	"github.com/meenmo/mathfinance/utils"
)

// tbillCmd holds the flags for the 'tbill' subcommand.
type tbillCmd struct {
	mode       string
	settlement string
	maturity   string
	discount   float64
	price      float64
}

func (*tbillCmd) Name() string     { return "tbill" }
func (*tbillCmd) Synopsis() string { return "Treasury bill price, yield and bond-equivalent yield" }
func (*tbillCmd) Usage() string {
	return `mathfin tbill -mode price|yield|eq -settlement <date> -maturity <date> [-discount <rate>] [-price <price>]

  price  price per 100 face value from the discount rate (TBILLPRICE)
  yield  yield from the price per 100 face value (TBILLYIELD)
  eq     bond-equivalent yield from the discount rate (TBILLEQ)
`
}

func (c *tbillCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mode, "mode", "price", "Calculation (price, yield, eq)")
	f.StringVar(&c.settlement, "settlement", "", "Settlement date (YYYY-MM-DD)")
	f.StringVar(&c.maturity, "maturity", "", "Maturity date (YYYY-MM-DD)")
	f.Float64Var(&c.discount, "discount", 0, "Discount rate as a decimal")
	f.Float64Var(&c.price, "price", 0, "Price per 100 face value")
}

func (c *tbillCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	return env.run(c.Name(), func() (any, error) {
		settlement, err := utils.ParseDate(c.settlement)
		if err != nil {
			return nil, fmt.Errorf("settlement: %w", err)
		}
		maturity, err := utils.ParseDate(c.maturity)
		if err != nil {
			return nil, fmt.Errorf("maturity: %w", err)
		}

		var v float64
		switch c.mode {
		case "price":
			v, err = bond.TBillPrice(settlement, maturity, c.discount)
		case "yield":
			v, err = bond.TBillYield(settlement, maturity, c.price)
		case "eq":
			v, err = bond.TBillEquivalentYield(settlement, maturity, c.discount)
		default:
			return nil, fmt.Errorf("unknown -mode %q (want price, yield or eq)", c.mode)
		}
		if err != nil {
			return nil, err
		}
		if v, err = env.round(v); err != nil {
			return nil, err
		}
		return valueOutput{Kind: c.mode, Value: v}, nil
	})
}

// Package cli implements the mathfin subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/meenmo/mathfinance/config"
	"github.com/meenmo/mathfinance/solver"
)

// Register adds every calculation command to c.
func Register(c *subcommands.Commander) {
	c.Register(&rateCmd{}, "rates")
	c.Register(&irrCmd{}, "rates")
	c.Register(&mirrCmd{}, "rates")
	c.Register(&npvCmd{}, "cash flows")
	c.Register(&tvmCmd{}, "cash flows")

	c.Register(&accruedCmd{}, "bonds")
	c.Register(&tbillCmd{}, "bonds")

	c.Register(&depreciationCmd{}, "assets")
}

// Env is passed to every command as the first Execute argument.
type Env struct {
	Config config.Config
	Logger *zap.Logger
	Out    io.Writer
	In     io.Reader
}

// NewEnv returns an Env writing results to stdout.
func NewEnv(cfg config.Config, logger *zap.Logger) *Env {
	return &Env{Config: cfg, Logger: logger, Out: os.Stdout, In: os.Stdin}
}

func envFrom(args []interface{}) *Env {
	if len(args) > 0 {
		if env, ok := args[0].(*Env); ok {
			return env
		}
	}
	return NewEnv(config.Default(), zap.NewNop())
}

func (e *Env) solver() solver.Config {
	return e.Config.Solver.Solver(e.Logger.Named("solver"))
}

// round trims x to the configured output precision. Infinities and NaN have
// no JSON or decimal form and are reported as errors.
func (e *Env) round(x float64) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("result is not a finite number: %v", x)
	}
	return decimal.NewFromFloat(x).Round(e.Config.Output.Precision).InexactFloat64(), nil
}

type valueOutput struct {
	Kind  string  `json:"kind,omitempty"`
	Value float64 `json:"value"`
}

type errorOutput struct {
	Error string `json:"error"`
}

// run executes one calculation, prints its result as JSON and logs the
// outcome.
func (e *Env) run(command string, calc func() (any, error)) subcommands.ExitStatus {
	log := e.Logger.With(zap.String("command", command))
	log.Info("command run")

	result, err := calc()
	if err != nil {
		return e.fail(log, err)
	}
	e.print(result)
	return subcommands.ExitSuccess
}

func (e *Env) fail(log *zap.Logger, err error) subcommands.ExitStatus {
	log.Error("command failed", zap.Error(err))
	e.print(errorOutput{Error: err.Error()})
	return subcommands.ExitFailure
}

func (e *Env) print(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(errorOutput{Error: err.Error()})
	}
	fmt.Fprintln(e.Out, string(b))
}

// parseValues reads a comma separated list of numbers. Flags are used
// instead of positional arguments so negative cash flows are not taken for
// flags.
func parseValues(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cash flow %q: %w", f, err)
		}
		values = append(values, v)
	}
	return values, nil
}

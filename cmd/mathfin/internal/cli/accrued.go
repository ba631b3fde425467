package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/meenmo/mathfinance/bond"
	"github.com/meenmo/mathfinance/utils"
)

// accrualInput is one accrued-interest request, from flags or JSON.
type accrualInput struct {
	TaskID      string  `json:"task_id,omitempty"`
	Convention  string  `json:"convention" validate:"required"`
	PriorCoupon string  `json:"prior_coupon" validate:"required,datetime=2006-01-02"`
	Settlement  string  `json:"settlement" validate:"required,datetime=2006-01-02"`
	NextCoupon  string  `json:"next_coupon,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Maturity    string  `json:"maturity,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Frequency   float64 `json:"frequency" validate:"gte=0"`
	Face        string  `json:"face,omitempty" validate:"omitempty,numeric"`
	CouponRate  string  `json:"coupon_rate,omitempty" validate:"omitempty,numeric"`
}

type accrualOutput struct {
	TaskID       string  `json:"task_id,omitempty"`
	Convention   string  `json:"convention,omitempty"`
	InterestDays int     `json:"interest_days"`
	Factor       float64 `json:"factor"`
	Amount       string  `json:"amount,omitempty"`
	Error        string  `json:"error,omitempty"`
}

// accruedCmd holds the flags for the 'accrued' subcommand.
type accruedCmd struct {
	input string
	flags accrualInput
}

func (*accruedCmd) Name() string     { return "accrued" }
func (*accruedCmd) Synopsis() string { return "bond accrued interest factor and amount" }
func (*accruedCmd) Usage() string {
	return `mathfin accrued -convention <name> -prior <date> -settlement <date> [-next <date>] [-frequency <f>] [-maturity <date>] [-face <amount> -coupon <rate>]
mathfin accrued -input <path|->

  Computes the accrued interest factor under one of the conventions
  german, spec-german, english, french, us, isma-year, isma-99n, isma-99u,
  kenya or cbk-kenya. With -input, reads one JSON object or an array of
  objects using the snake_case flag names as keys.
`
}

func (c *accruedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "input", "", "JSON input path, - for stdin")
	f.StringVar(&c.flags.Convention, "convention", "", "Day count convention")
	f.StringVar(&c.flags.PriorCoupon, "prior", "", "Prior coupon date (YYYY-MM-DD)")
	f.StringVar(&c.flags.Settlement, "settlement", "", "Settlement date (YYYY-MM-DD)")
	f.StringVar(&c.flags.NextCoupon, "next", "", "Next coupon date (YYYY-MM-DD), ISMA conventions only")
	f.StringVar(&c.flags.Maturity, "maturity", "", "Maturity date (YYYY-MM-DD), ISMA-99 only")
	f.Float64Var(&c.flags.Frequency, "frequency", 1, "Coupons per year")
	f.StringVar(&c.flags.Face, "face", "", "Face value, to also print the accrued amount")
	f.StringVar(&c.flags.CouponRate, "coupon", "", "Annual coupon rate as a decimal (0.05 for 5%)")
}

func (c *accruedCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if c.input == "" {
		return env.run(c.Name(), func() (any, error) {
			return env.processAccrual(newValidator(), c.flags)
		})
	}

	log := env.Logger.With(zap.String("command", c.Name()), zap.String("input", c.input))
	log.Info("command run")

	raw, err := readInput(c.input, env.In)
	if err != nil {
		return env.fail(log, fmt.Errorf("read input: %w", err))
	}
	inputs, isArray, err := parseInputs(raw)
	if err != nil {
		return env.fail(log, fmt.Errorf("parse JSON: %w", err))
	}

	v := newValidator()
	hadError := false
	outputs := make([]accrualOutput, 0, len(inputs))
	for _, in := range inputs {
		out, err := env.processAccrual(v, in)
		if err != nil {
			hadError = true
			log.Error("accrual failed", zap.String("task_id", in.TaskID), zap.Error(err))
			outputs = append(outputs, accrualOutput{TaskID: in.TaskID, Error: err.Error()})
			continue
		}
		outputs = append(outputs, *out)
	}

	if isArray {
		env.print(outputs)
	} else {
		env.print(outputs[0])
	}

	if hadError {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// processAccrual validates one request and computes its factor, rounded to
// the output precision, and the amount when face and coupon rate are given.
func (e *Env) processAccrual(v *validator.Validate, in accrualInput) (*accrualOutput, error) {
	if err := v.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if (in.Face == "") != (in.CouponRate == "") {
		return nil, errors.New("face and coupon_rate must be given together")
	}

	convention, err := bond.ParseDayCountConvention(in.Convention)
	if err != nil {
		return nil, err
	}
	prior, err := utils.ParseDate(in.PriorCoupon)
	if err != nil {
		return nil, fmt.Errorf("prior_coupon: %w", err)
	}
	settlement, err := utils.ParseDate(in.Settlement)
	if err != nil {
		return nil, fmt.Errorf("settlement: %w", err)
	}
	next := settlement
	if in.NextCoupon != "" {
		if next, err = utils.ParseDate(in.NextCoupon); err != nil {
			return nil, fmt.Errorf("next_coupon: %w", err)
		}
	}
	var maturity time.Time
	if in.Maturity != "" {
		if maturity, err = utils.ParseDate(in.Maturity); err != nil {
			return nil, fmt.Errorf("maturity: %w", err)
		}
	}

	req := bond.AccrualRequest{
		Convention:  convention,
		PriorCoupon: prior,
		Settlement:  settlement,
		NextCoupon:  next,
		Frequency:   in.Frequency,
		Maturity:    maturity,
	}
	factor, err := req.Factor()
	if err != nil {
		return nil, err
	}
	days, err := bond.InterestDays(convention, prior, settlement)
	if err != nil {
		return nil, err
	}

	rounded, err := e.round(factor)
	if err != nil {
		return nil, err
	}

	out := &accrualOutput{
		TaskID:       in.TaskID,
		Convention:   convention.String(),
		InterestDays: days,
		Factor:       rounded,
	}
	if in.Face != "" {
		face, err := decimal.NewFromString(in.Face)
		if err != nil {
			return nil, fmt.Errorf("face: %w", err)
		}
		rate, err := decimal.NewFromString(in.CouponRate)
		if err != nil {
			return nil, fmt.Errorf("coupon_rate: %w", err)
		}
		out.Amount = bond.AccruedInterest(face, rate, factor).String()
	}
	return out, nil
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, e.Field()+": "+validationMessage(e))
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a date in format " + e.Param()
	case "numeric":
		return "must be numeric"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	default:
		return "invalid value"
	}
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path != "-" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func parseInputs(raw []byte) ([]accrualInput, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, fmt.Errorf("empty input")
	}
	if trimmed[0] == '[' {
		var inputs []accrualInput
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			return nil, true, err
		}
		if len(inputs) == 0 {
			return nil, true, fmt.Errorf("empty input array")
		}
		return inputs, true, nil
	}
	var input accrualInput
	if err := json.Unmarshal(trimmed, &input); err != nil {
		return nil, false, err
	}
	return []accrualInput{input}, false, nil
}

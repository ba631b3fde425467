package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/meenmo/mathfinance/config"
)

type result struct {
	status subcommands.ExitStatus
	stdout string
	logs   *observer.ObservedLogs
}

func (r result) decode(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(r.stdout), v), r.stdout)
}

func execute(t *testing.T, cmd subcommands.Command, stdin string, args ...string) result {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))

	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	env := &Env{
		Config: config.Default(),
		Logger: zap.New(core),
		Out:    &out,
		In:     strings.NewReader(stdin),
	}
	status := cmd.Execute(context.Background(), fs, env)
	return result{status: status, stdout: strings.TrimSpace(out.String()), logs: logs}
}

func TestRateCmd(t *testing.T) {
	t.Parallel()

	res := execute(t, &rateCmd{}, "", "-nper", "48", "-pmt", "-200", "-pv", "8000", "-guess", "0.01")
	require.Equal(t, subcommands.ExitSuccess, res.status)

	var out rateOutput
	res.decode(t, &out)
	assert.InDelta(t, 0.0077014725, out.Rate, 1e-10)
	assert.Equal(t, 1, res.logs.FilterMessage("command run").Len())
	assert.Positive(t, res.logs.FilterMessage("newton: step").Len())
}

func TestRateCmd_Failure(t *testing.T) {
	t.Parallel()

	res := execute(t, &rateCmd{}, "", "-nper", "10", "-pmt", "-100", "-pv", "500", "-type", "2")
	assert.Equal(t, subcommands.ExitFailure, res.status)

	var out errorOutput
	res.decode(t, &out)
	assert.Contains(t, out.Error, "payment type")
	assert.Equal(t, 1, res.logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestCashFlowCmds(t *testing.T) {
	t.Parallel()

	var rate rateOutput
	res := execute(t, &irrCmd{}, "", "-values", "-1000, 300, 420, 380, 480")
	require.Equal(t, subcommands.ExitSuccess, res.status)
	res.decode(t, &rate)
	assert.InDelta(t, 0.1965743597, rate.Rate, 1e-9)

	res = execute(t, &mirrCmd{}, "", "-values", "-120000,39000,30000,21000,37000,46000",
		"-finance-rate", "0.1", "-reinvest-rate", "0.12")
	require.Equal(t, subcommands.ExitSuccess, res.status)
	res.decode(t, &rate)
	assert.InDelta(t, 0.1260941304, rate.Rate, 1e-9)

	var value valueOutput
	res = execute(t, &npvCmd{}, "", "-rate", "0.1", "-values", "-10000,3000,4200,6800")
	require.Equal(t, subcommands.ExitSuccess, res.status)
	res.decode(t, &value)
	assert.InDelta(t, 1188.4434123352, value.Value, 1e-9)

	res = execute(t, &irrCmd{}, "", "-values", "-1000,abc")
	assert.Equal(t, subcommands.ExitFailure, res.status)
}

func TestCashFlowCmds_RatesAtOrBelowMinusOne(t *testing.T) {
	t.Parallel()

	res := execute(t, &npvCmd{}, "", "-rate", "-1", "-values", "100,200")
	assert.Equal(t, subcommands.ExitFailure, res.status)
	var out errorOutput
	res.decode(t, &out)
	assert.Contains(t, out.Error, "greater than -1")

	res = execute(t, &mirrCmd{}, "", "-values", "-100,50,80", "-finance-rate", "-1", "-reinvest-rate", "0.1")
	assert.Equal(t, subcommands.ExitFailure, res.status)
	res.decode(t, &out)
	assert.Contains(t, out.Error, "greater than -1")
	assert.Equal(t, 1, res.logs.FilterMessage("command failed").Len())
}

func TestEnvRound(t *testing.T) {
	t.Parallel()

	env := NewEnv(config.Default(), zap.NewNop())

	got, err := env.round(0.123456789012345)
	require.NoError(t, err)
	assert.Equal(t, 0.123456789, got)

	for _, x := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := env.round(x)
		assert.Error(t, err, "%v", x)
	}
}

func TestTVMCmd(t *testing.T) {
	t.Parallel()

	var value valueOutput
	res := execute(t, &tvmCmd{}, "", "-solve", "pmt", "-rate", "0.0066666666667", "-nper", "10", "-pv", "10000")
	require.Equal(t, subcommands.ExitSuccess, res.status)
	res.decode(t, &value)
	assert.Equal(t, "pmt", value.Kind)
	assert.InDelta(t, -1037.03209, value.Value, 1e-4)

	res = execute(t, &tvmCmd{}, "", "-solve", "rate")
	assert.Equal(t, subcommands.ExitFailure, res.status)
}

func TestTBillAndDepreciationCmds(t *testing.T) {
	t.Parallel()

	var value valueOutput
	res := execute(t, &tbillCmd{}, "", "-mode", "price", "-settlement", "2008-03-31", "-maturity", "2008-06-01", "-discount", "0.09")
	require.Equal(t, subcommands.ExitSuccess, res.status)
	res.decode(t, &value)
	assert.InDelta(t, 98.45, value.Value, 1e-9)

	res = execute(t, &tbillCmd{}, "", "-mode", "price", "-settlement", "2008-06-01", "-maturity", "2008-03-31", "-discount", "0.09")
	assert.Equal(t, subcommands.ExitFailure, res.status)

	res = execute(t, &depreciationCmd{}, "", "-method", "db", "-cost", "1000000", "-salvage", "100000",
		"-life", "6", "-period", "2", "-month", "7")
	require.Equal(t, subcommands.ExitSuccess, res.status)
	res.decode(t, &value)
	assert.InDelta(t, 259639.4166666667, value.Value, 1e-6)
}

func TestAccruedCmd_Flags(t *testing.T) {
	t.Parallel()

	res := execute(t, &accruedCmd{}, "",
		"-convention", "isma-99n", "-prior", "2024-01-15", "-settlement", "2024-04-15",
		"-next", "2024-07-15", "-frequency", "2", "-face", "100000", "-coupon", "0.05")
	require.Equal(t, subcommands.ExitSuccess, res.status)

	var out accrualOutput
	res.decode(t, &out)
	assert.Equal(t, "isma-99n", out.Convention)
	assert.Equal(t, 91, out.InterestDays)
	assert.InDelta(t, 0.25, out.Factor, 1e-12)
	assert.Equal(t, "1250", out.Amount)
}

func TestAccruedCmd_FlagsAndInputRoundAlike(t *testing.T) {
	t.Parallel()

	res := execute(t, &accruedCmd{}, "", "-convention", "english", "-prior", "2024-01-01", "-settlement", "2024-03-01")
	require.Equal(t, subcommands.ExitSuccess, res.status)
	var fromFlags accrualOutput
	res.decode(t, &fromFlags)

	res = execute(t, &accruedCmd{}, `{"convention":"english","prior_coupon":"2024-01-01","settlement":"2024-03-01"}`, "-input", "-")
	require.Equal(t, subcommands.ExitSuccess, res.status)
	var fromInput accrualOutput
	res.decode(t, &fromInput)

	assert.Equal(t, 0.1643835616, fromFlags.Factor)
	assert.Equal(t, fromFlags, fromInput)
}

func TestAccruedCmd_BatchInput(t *testing.T) {
	t.Parallel()

	input := `[
	  {"task_id": "a", "convention": "german", "prior_coupon": "2024-01-31", "settlement": "2024-02-28"},
	  {"task_id": "b", "convention": "us", "prior_coupon": "2024-01-31", "settlement": "not-a-date"},
	  {"task_id": "c", "convention": "bogus", "prior_coupon": "2024-01-01", "settlement": "2024-02-01"}
	]`
	path := filepath.Join(t.TempDir(), "accrued.json")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o600))

	res := execute(t, &accruedCmd{}, "", "-input", path)
	assert.Equal(t, subcommands.ExitFailure, res.status)

	var out []accrualOutput
	res.decode(t, &out)
	require.Len(t, out, 3)

	assert.Equal(t, "a", out[0].TaskID)
	assert.Empty(t, out[0].Error)
	assert.Equal(t, 28, out[0].InterestDays)
	assert.InDelta(t, 0.0777777778, out[0].Factor, 1e-10)

	assert.Equal(t, "b", out[1].TaskID)
	assert.Contains(t, out[1].Error, "settlement: must be a date")

	assert.Contains(t, out[2].Error, "unknown day count convention")
	assert.Equal(t, 2, res.logs.FilterMessage("accrual failed").Len())
}

func TestAccruedCmd_StdinObject(t *testing.T) {
	t.Parallel()

	res := execute(t, &accruedCmd{}, `{"convention":"english","prior_coupon":"2024-01-01","settlement":"2024-03-01"}`, "-input", "-")
	require.Equal(t, subcommands.ExitSuccess, res.status)

	var out accrualOutput
	res.decode(t, &out)
	assert.Equal(t, 60, out.InterestDays)
	assert.InDelta(t, 0.1643835616, out.Factor, 1e-10)

	res = execute(t, &accruedCmd{}, "  ", "-input", "-")
	assert.Equal(t, subcommands.ExitFailure, res.status)
	assert.Contains(t, res.stdout, "empty input")
}

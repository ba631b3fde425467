package bond_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/mathfinance/bond"
	"github.com/meenmo/mathfinance/errs"
	"github.com/meenmo/mathfinance/utils"
)

func TestParseDayCountConvention(t *testing.T) {
	t.Parallel()

	for c := bond.German; c <= bond.CBKKenya; c++ {
		got, err := bond.ParseDayCountConvention(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := bond.ParseDayCountConvention("  ISMA-99U ")
	require.NoError(t, err)
	assert.Equal(t, bond.ISMA99U, got)

	_, err = bond.ParseDayCountConvention("actual/actual")
	assert.True(t, errors.Is(err, errs.InvalidDayCountMethod))

	assert.Equal(t, "DayCountConvention(11)", bond.DayCountConvention(11).String())
}

func TestInterestDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		convention bond.DayCountConvention
		d1, d2     string
		want       int
	}{
		{"german 31st snaps to 30", bond.German, "2024-01-31", "2024-02-28", 28},
		{"german feb ultimo", bond.German, "2023-02-28", "2023-03-31", 30},
		{"german leap feb ultimo", bond.German, "2024-02-29", "2024-03-31", 30},
		{"spec german ignores feb ultimo", bond.SpecGerman, "2023-02-28", "2023-03-31", 32},
		{"us feb ultimo start", bond.US, "2023-02-28", "2023-03-31", 30},
		{"us both ultimo february", bond.US, "2023-02-28", "2024-02-29", 360},
		{"us 31st to 31st", bond.US, "2024-01-31", "2024-03-31", 60},
		{"us keeps 31st end after mid-month start", bond.US, "2024-01-15", "2024-03-31", 76},
		{"english actual", bond.English, "2024-01-01", "2024-03-01", 60},
		{"french actual", bond.French, "2023-01-01", "2023-03-01", 59},
		{"cbk kenya actual", bond.CBKKenya, "2024-01-31", "2024-02-28", 28},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := bond.InterestDays(tt.convention, mustDate(t, tt.d1), mustDate(t, tt.d2))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := bond.InterestDays(bond.DayCountConvention(0), mustDate(t, "2024-01-01"), mustDate(t, "2024-02-01"))
	assert.True(t, errors.Is(err, errs.InvalidDayCountMethod))
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

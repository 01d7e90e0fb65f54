package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyIsUnknown(t *testing.T) {
	d, err := Parse("")
	require.NoError(t, err)
	assert.True(t, d.IsUnknown())
	assert.Equal(t, "", d.String())
}

func TestParse_ValidDate(t *testing.T) {
	d, err := Parse("19-06-2023")
	require.NoError(t, err)
	assert.Equal(t, 2023, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 19, d.Day())
	assert.Equal(t, "19-06-2023", d.String())
}

func TestParse_RejectsOtherLayouts(t *testing.T) {
	for _, input := range []string{"2023-06-19", "19.06.2023", "Jun 2023", "31-02-2023", " 01-01-2020", "2021"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedDate)
		})
	}
}

func TestMustParse_PanicsOnMalformed(t *testing.T) {
	assert.Panics(t, func() { MustParse("not a date") })
	assert.NotPanics(t, func() { MustParse("") })
}

func TestToday_UsesCalendarDateOfClock(t *testing.T) {
	now := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, MustParse("05-03-2024"), Today(now))
}

func TestNewDate_Normalizes(t *testing.T) {
	assert.Equal(t, MustParse("02-03-2023"), NewDate(2023, time.February, 30))
}

func TestDate_Compare(t *testing.T) {
	a := MustParse("31-12-2020")
	b := MustParse("01-01-2021")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(MustParse("31-12-2020")))
	assert.True(t, Unknown.Before(a))
}

func TestAddMonths_ClampsToMonthEnd(t *testing.T) {
	tests := []struct {
		start  string
		months int
		want   string
	}{
		{"31-01-2023", 1, "28-02-2023"},
		{"31-01-2024", 1, "29-02-2024"},
		{"30-11-2023", 3, "29-02-2024"},
		{"15-06-2020", 18, "15-12-2021"},
		{"01-01-2020", 0, "01-01-2020"},
	}

	for _, tt := range tests {
		got := MustParse(tt.start).addMonths(tt.months)
		assert.Equal(t, tt.want, got.String(), "%s + %d months", tt.start, tt.months)
	}
}

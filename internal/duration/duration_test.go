package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromMonths(t *testing.T) {
	assert.Equal(t, Duration{Years: 2, Months: 3}, FromMonths(27))
	assert.Equal(t, Duration{Years: 1}, FromMonths(12))
	assert.Equal(t, Duration{}, FromMonths(0))
	assert.Equal(t, Duration{}, FromMonths(-4))
}

func TestDuration_String(t *testing.T) {
	tests := []struct {
		in   Duration
		want string
	}{
		{Duration{}, ""},
		{Duration{Years: 1}, "1 year"},
		{Duration{Years: 3}, "3 years"},
		{Duration{Months: 1}, "1 month"},
		{Duration{Months: 9}, "9 months"},
		{Duration{Years: 4, Months: 9}, "4 years 9 months"},
		{Duration{Years: 1, Months: 1}, "1 year 1 month"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.String())
	}
}

func TestDuration_TotalMonths(t *testing.T) {
	assert.Equal(t, 59, Duration{Years: 4, Months: 11}.TotalMonths())
	assert.True(t, Duration{}.IsZero())
	assert.False(t, Duration{Months: 1}.IsZero())
}

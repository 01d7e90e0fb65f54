package duration

import (
	"fmt"
	"strings"
)

// Duration is an elapsed period in whole years and months (0..11).
type Duration struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// FromMonths splits a month count into years and months. Negative counts yield zero.
func FromMonths(total int) Duration {
	if total <= 0 {
		return Duration{}
	}
	return Duration{Years: total / 12, Months: total % 12}
}

func (d Duration) IsZero() bool { return d.Years == 0 && d.Months == 0 }

func (d Duration) TotalMonths() int { return d.Years*12 + d.Months }

// String renders the duration as "2 years 3 months", omitting zero parts.
// The zero duration renders as the empty string.
func (d Duration) String() string {
	parts := make([]string, 0, 2)
	if d.Years > 0 {
		parts = append(parts, plural(d.Years, "year"))
	}
	if d.Months > 0 {
		parts = append(parts, plural(d.Months, "month"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Package duration implements the calendar arithmetic behind profile durations:
// parsing of day-month-year dates, per-entry elapsed time and merged totals
// over overlapping periods.
package duration

import (
	"cmp"
	"errors"
	"fmt"
	"time"
)

// Layout is the only accepted textual date form (day-month-year).
const Layout = "02-01-2006"

// ErrMalformedDate is returned for non-empty date strings that do not match Layout.
var ErrMalformedDate = errors.New("malformed date")

// Date is a calendar date without time of day. The zero value is Unknown.
type Date struct {
	year  int
	month time.Month
	day   int
}

// Unknown marks an absent date: an unanchored start or an ongoing end.
var Unknown = Date{}

// NewDate returns the normalized calendar date, so NewDate(2023, 2, 30) is 02-03-2023.
func NewDate(year int, month time.Month, day int) Date {
	return fromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Today returns the calendar date of now in its own location.
func Today(now time.Time) Date {
	return NewDate(now.Date())
}

// Parse converts s into a Date. The empty string yields Unknown.
func Parse(s string) (Date, error) {
	if s == "" {
		return Unknown, nil
	}

	t, err := time.Parse(Layout, s)
	if err != nil {
		return Unknown, fmt.Errorf("%w %q: expected DD-MM-YYYY", ErrMalformedDate, s)
	}

	return fromTime(t), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) IsUnknown() bool { return d == Unknown }

func (d Date) Year() int { return d.year }

func (d Date) Month() time.Month { return d.month }

func (d Date) Day() int { return d.day }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmp.Compare(d.year, o.year)
	case d.month != o.month:
		return cmp.Compare(d.month, o.month)
	default:
		return cmp.Compare(d.day, o.day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// String renders the date in Layout, or "" for Unknown.
func (d Date) String() string {
	if d.IsUnknown() {
		return ""
	}
	return d.Time().Format(Layout)
}

// addMonths shifts the date by n months, clamping the day to the end of the target month.
func (d Date) addMonths(n int) Date {
	total := d.year*12 + int(d.month) - 1 + n
	year, month := total/12, time.Month(total%12+1)

	day := d.day
	if last := daysIn(year, month); day > last {
		day = last
	}

	return Date{year: year, month: month, day: day}
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(from, to Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

package duration

import (
	"fmt"
	"slices"
)

// Range is the period of one work or education entry.
type Range struct {
	Start Date
	End   Date
}

// ParseRange parses a start/end pair. Empty strings become Unknown.
func ParseRange(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, fmt.Errorf("start: %w", err)
	}

	e, err := Parse(end)
	if err != nil {
		return Range{}, fmt.Errorf("end: %w", err)
	}

	return Range{Start: s, End: e}, nil
}

// Merge drops ranges without a start, resolves ongoing ends to today and
// collapses overlapping or touching ranges. The result is sorted by start.
func Merge(ranges []Range, today Date) []Range {
	resolved := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.Start.IsUnknown() {
			continue
		}
		if r.End.IsUnknown() {
			r.End = today
		}
		resolved = append(resolved, r)
	}

	if len(resolved) == 0 {
		return nil
	}

	slices.SortFunc(resolved, func(a, b Range) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return a.End.Compare(b.End)
	})

	merged := make([]Range, 0, len(resolved))
	current := resolved[0]
	for _, next := range resolved[1:] {
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}

// MonthsBetween returns the whole calendar months from start to end and the
// days left over. Month steps clamp to the last day of shorter months, so
// 31-01 to 28-02 is exactly one month. A reversed pair yields zero.
func MonthsBetween(start, end Date) (months, residualDays int) {
	if end.Before(start) {
		return 0, 0
	}

	months = (end.year-start.year)*12 + int(end.month) - int(start.month)
	anchor := start.addMonths(months)
	if anchor.After(end) {
		months--
		anchor = start.addMonths(months)
	}

	return months, daysBetween(anchor, end)
}

// Aggregate returns the total time covered by ranges without counting
// overlaps twice and without counting gaps. Each merged span is rounded up
// to the next month when any day remains beyond its whole months.
func Aggregate(ranges []Range, today Date) Duration {
	total := 0
	for _, span := range Merge(ranges, today) {
		months, days := MonthsBetween(span.Start, span.End)
		if days > 0 {
			months++
		}
		total += months
	}

	return FromMonths(total)
}

// AggregateStrings parses (start, end) pairs and applies Aggregate.
func AggregateStrings(pairs [][2]string, today Date) (Duration, error) {
	ranges := make([]Range, 0, len(pairs))
	for i, pair := range pairs {
		r, err := ParseRange(pair[0], pair[1])
		if err != nil {
			return Duration{}, fmt.Errorf("range %d: %w", i, err)
		}
		ranges = append(ranges, r)
	}

	return Aggregate(ranges, today), nil
}

package duration

// Between returns the elapsed time of a single entry.
//
// An unknown start contributes nothing. An unknown end runs through today.
// The final month is counted whole when end's day-of-month is on or after
// start's, so identical dates yield one month. Callers guarantee start <= end;
// a reversed pair yields zero rather than a negative duration.
func Between(start, end, today Date) Duration {
	if start.IsUnknown() {
		return Duration{}
	}
	if end.IsUnknown() {
		end = today
	}

	years := end.year - start.year
	months := int(end.month) - int(start.month)

	if end.day >= start.day {
		months++
	}

	if months >= 12 {
		years++
		months -= 12
	}
	if months < 0 {
		years--
		months += 12
	}

	if years < 0 {
		return Duration{}
	}

	return Duration{Years: years, Months: months}
}

// BetweenStrings parses both dates and applies Between.
func BetweenStrings(start, end string, today Date) (Duration, error) {
	r, err := ParseRange(start, end)
	if err != nil {
		return Duration{}, err
	}
	return Between(r.Start, r.End, today), nil
}

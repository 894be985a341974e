package util

import "time"

// DateOnly truncates t to its calendar date at UTC midnight. Business dates
// in the ledger never carry a time component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date at UTC midnight.
func Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// MonthStart returns the first day of t's month at UTC midnight.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

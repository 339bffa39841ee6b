// Package dateutil normalizes instants to calendar days. All bucketing is
// done in UTC so that two instants on the same UTC date always land in the
// same bucket regardless of time of day.
package dateutil

import "time"

// DateLayout is the wire format for calendar-day strings.
const DateLayout = "2006-01-02"

// Day truncates an instant to its calendar day with the time of day zeroed.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the signed whole-day count b - a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// IsConsecutive reports whether curr falls on the calendar day after prev.
func IsConsecutive(prev, curr time.Time) bool {
	return DaysBetween(prev, curr) == 1
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// FormatDay renders the calendar day of t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return Day(t).Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD string into a UTC calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

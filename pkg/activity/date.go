// Package activity turns a commit history into a one-year activity calendar:
// commits are bucketed by local calendar date, bucket counts are classified
// into intensity levels relative to the busiest day, and the window is laid
// out as a week-aligned grid with month labels.
package activity

import (
	"time"
)

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in loc. A nil loc means the host's
// local zone.
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}

	year, month, day := t.In(loc).Date()

	return Date{Year: year, Month: month, Day: day}
}

// midnight anchors the date in UTC so day arithmetic never crosses a DST shift.
func (d Date) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(d.midnight().AddDate(0, 0, n), time.UTC)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.midnight().Weekday()
}

// DaysSince returns the number of days from other to d.
func (d Date) DaysSince(other Date) int {
	const hoursPerDay = 24

	return int(d.midnight().Sub(other.midnight()).Hours() / hoursPerDay)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	return d.midnight().Compare(other.midnight())
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return d.midnight().Format(time.DateOnly)
}

// MarshalText implements [encoding.TextMarshaler] so dates serialize as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t, time.UTC), nil
}

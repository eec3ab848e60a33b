package activity

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Calendar geometry.
const (
	// LookbackWeeks is the fixed trailing window length.
	LookbackWeeks = 52
	// DaysPerWeek is the number of grid rows.
	DaysPerWeek = 7
)

// ErrInvalidWeekday is returned when a weekday name cannot be parsed.
var ErrInvalidWeekday = errors.New("invalid weekday")

// Window is the trailing span of dates covered by the calendar.
//
// Start is Today minus LookbackWeeks weeks, moved back to the closest
// FirstWeekday, so Start <= Today and Start always falls on FirstWeekday.
type Window struct {
	Today        Date
	Start        Date
	Weeks        int
	FirstWeekday time.Weekday
}

// NewWindow computes the window ending at today whose weeks begin on firstWeekday.
func NewWindow(today Date, firstWeekday time.Weekday) Window {
	start := today.AddDays(-LookbackWeeks * DaysPerWeek)
	start = start.AddDays(-weekdayOffset(start.Weekday(), firstWeekday))

	return Window{
		Today:        today,
		Start:        start,
		Weeks:        LookbackWeeks,
		FirstWeekday: firstWeekday,
	}
}

// weekdayOffset returns how many days day lies after first, in [0, 6].
func weekdayOffset(day, first time.Weekday) int {
	return (int(day) - int(first) + DaysPerWeek) % DaysPerWeek
}

// Columns returns the number of week columns needed to reach Today: the
// lookback weeks plus the current, possibly partial, week.
func (w Window) Columns() int {
	return w.Today.DaysSince(w.Start)/DaysPerWeek + 1
}

// Contains reports whether d lies within [Start, Today].
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.Today)
}

// DateAt returns the date shown at the given week column and weekday row.
func (w Window) DateAt(week, day int) Date {
	return w.Start.AddDays(week*DaysPerWeek + day)
}

// WeekdayAt returns the weekday shown on the given row.
func (w Window) WeekdayAt(row int) time.Weekday {
	return time.Weekday((int(w.FirstWeekday) + row) % DaysPerWeek)
}

// ParseWeekday parses a full or three-letter English weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	needle := strings.ToLower(strings.TrimSpace(name))

	for day := time.Sunday; day <= time.Saturday; day++ {
		full := strings.ToLower(day.String())
		if needle == full || needle == full[:3] {
			return day, nil
		}
	}

	return time.Sunday, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
}

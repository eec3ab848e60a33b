package activity

import (
	"context"
	"time"
)

// Options configures Build.
type Options struct {
	// Now is the reference instant. Zero means time.Now().
	Now time.Time
	// Location is the zone used to turn commit instants into dates. Nil means
	// the host's local zone.
	Location *time.Location
	// FirstWeekday is the weekday each grid column starts on.
	FirstWeekday time.Weekday
}

// Calendar is the fully computed activity calendar.
type Calendar struct {
	Window  Window
	Buckets Buckets
	Grid    *Grid
	Summary Summary
	Stats   BucketStats
}

// Build consumes src once and computes the calendar for the window ending today.
func Build(ctx context.Context, src Source, opts Options) *Calendar {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	win := NewWindow(DateOf(now, loc), opts.FirstWeekday)
	buckets, stats := Bucketize(ctx, src, win, loc)

	return &Calendar{
		Window:  win,
		Buckets: buckets,
		Grid:    BuildGrid(buckets, win),
		Summary: Summarize(buckets),
		Stats:   stats,
	}
}

// SummaryLine returns "<total> commits in the last year across <days> days".
func (c *Calendar) SummaryLine() string {
	return c.Summary.String()
}

package activity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
)

func mustDate(t *testing.T, s string) activity.Date {
	t.Helper()

	d, err := activity.ParseDate(s)
	require.NoError(t, err)

	return d
}

func TestNewWindow_StartsOnFirstWeekday(t *testing.T) {
	t.Parallel()

	base := mustDate(t, "2026-10-01")

	for offset := range 21 {
		today := base.AddDays(offset)

		for first := time.Sunday; first <= time.Saturday; first++ {
			win := activity.NewWindow(today, first)

			assert.Equal(t, first, win.Start.Weekday(), "today=%s first=%s", today, first)
			assert.False(t, win.Start.After(win.Today))

			span := today.DaysSince(win.Start)
			lookback := activity.LookbackWeeks * activity.DaysPerWeek
			assert.GreaterOrEqual(t, span-lookback, 0)
			assert.Less(t, span-lookback, activity.DaysPerWeek)
			assert.Equal(t, activity.LookbackWeeks+1, win.Columns())
		}
	}
}

func TestNewWindow_KnownDate(t *testing.T) {
	t.Parallel()

	win := activity.NewWindow(mustDate(t, "2026-10-19"), time.Sunday)

	assert.Equal(t, mustDate(t, "2025-10-19"), win.Start)
	assert.Equal(t, activity.LookbackWeeks, win.Weeks)
	assert.Equal(t, mustDate(t, "2026-10-19"), win.DateAt(52, 1))
	assert.Equal(t, time.Monday, win.WeekdayAt(1))
}

func TestWindow_Contains(t *testing.T) {
	t.Parallel()

	win := activity.NewWindow(mustDate(t, "2026-10-19"), time.Sunday)

	assert.True(t, win.Contains(win.Start))
	assert.True(t, win.Contains(win.Today))
	assert.False(t, win.Contains(win.Start.AddDays(-1)))
	assert.False(t, win.Contains(win.Today.AddDays(1)))
}

func TestDate_AddDaysAcrossDST(t *testing.T) {
	t.Parallel()

	d := mustDate(t, "2026-03-28")

	assert.Equal(t, mustDate(t, "2026-03-30"), d.AddDays(2))
	assert.Equal(t, 2, d.AddDays(2).DaysSince(d))
	assert.Equal(t, mustDate(t, "2025-12-31"), mustDate(t, "2026-01-01").AddDays(-1))
}

func TestDate_MarshalText(t *testing.T) {
	t.Parallel()

	text, err := mustDate(t, "2026-02-03").MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2026-02-03", string(text))
	assert.True(t, activity.Date{}.IsZero())
}

func TestParseWeekday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Weekday
	}{
		{"sunday", time.Sunday},
		{"Mon", time.Monday},
		{" SATURDAY ", time.Saturday},
		{"wed", time.Wednesday},
	}

	for _, tt := range tests {
		got, err := activity.ParseWeekday(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := activity.ParseWeekday("someday")
	require.ErrorIs(t, err, activity.ErrInvalidWeekday)

	_, err = activity.ParseWeekday("")
	require.ErrorIs(t, err, activity.ErrInvalidWeekday)
}

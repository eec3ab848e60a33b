package activity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
)

func testOptions(t *testing.T) activity.Options {
	t.Helper()

	return activity.Options{
		Now:          at(t, "2026-10-19T12:00:00Z"),
		Location:     time.UTC,
		FirstWeekday: time.Sunday,
	}
}

func nonEmptyCells(cal *activity.Calendar) []activity.Cell {
	var cells []activity.Cell

	for _, cell := range cal.Grid.Cells() {
		if cell.Count > 0 {
			cells = append(cells, cell)
		}
	}

	return cells
}

func TestBuild_SingleCommitToday(t *testing.T) {
	t.Parallel()

	src := activity.NewSliceSource(commitAt(t, "2026-10-19T09:30:00Z"))
	cal := activity.Build(context.Background(), src, testOptions(t))

	cells := nonEmptyCells(cal)
	require.Len(t, cells, 1)
	assert.Equal(t, mustDate(t, "2026-10-19"), cells[0].Date)
	assert.Equal(t, activity.LevelMax, cells[0].Level)
	assert.Equal(t, "1 commits in the last year across 1 days", cal.SummaryLine())
}

func TestBuild_NoCommits(t *testing.T) {
	t.Parallel()

	cal := activity.Build(context.Background(), activity.EmptySource(), testOptions(t))

	for row := range activity.DaysPerWeek {
		for _, cell := range cal.Grid.Rows[row] {
			if cell.Future {
				continue
			}

			assert.Equal(t, activity.LevelNone, cell.Level)
			assert.Zero(t, cell.Count)
		}
	}

	assert.Equal(t, "0 commits in the last year across 0 days", cal.SummaryLine())
	assert.Equal(t, 1, cal.Grid.MaxCount)
}

func TestBuild_RelativeIntensity(t *testing.T) {
	t.Parallel()

	src := activity.NewSliceSource(
		commitAt(t, "2026-09-01T09:00:00Z"),
		commitAt(t, "2026-09-01T17:00:00Z"),
		commitAt(t, "2026-09-03T11:00:00Z"),
	)
	cal := activity.Build(context.Background(), src, testOptions(t))

	assert.Equal(t, 2, cal.Grid.MaxCount)

	levels := map[activity.Date]activity.Level{}
	for _, cell := range nonEmptyCells(cal) {
		levels[cell.Date] = cell.Level
	}

	assert.Equal(t, activity.LevelMax, levels[mustDate(t, "2026-09-01")])
	assert.Equal(t, activity.LevelMedium, levels[mustDate(t, "2026-09-03")])
	assert.Equal(t, activity.Summary{TotalCommits: 3, ActiveDays: 2}, cal.Summary)
}

func TestBuild_FutureCommitsDoNotLeak(t *testing.T) {
	t.Parallel()

	src := activity.NewSliceSource(
		commitAt(t, "2026-10-20T09:00:00Z"),
		commitAt(t, "2027-01-01T09:00:00Z"),
	)
	cal := activity.Build(context.Background(), src, testOptions(t))

	assert.Empty(t, cal.Buckets)
	assert.Empty(t, nonEmptyCells(cal))
	assert.Equal(t, 2, cal.Stats.OutOfWindow)
}

func TestBuild_DefaultsNowAndLocation(t *testing.T) {
	t.Parallel()

	cal := activity.Build(context.Background(), activity.NewSliceSource(activity.CommitRecord{When: time.Now()}), activity.Options{})

	assert.Equal(t, activity.DateOf(time.Now(), time.Local), cal.Window.Today)
	assert.Equal(t, 1, cal.Summary.TotalCommits)
}

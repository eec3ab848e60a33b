package repoinfo

import (
	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
)

// CalendarView is the serializable form of an activity calendar.
type CalendarView struct {
	Start        activity.Date    `json:"start"         yaml:"start"`
	End          activity.Date    `json:"end"           yaml:"end"`
	FirstWeekday string           `json:"first_weekday" yaml:"first_weekday"`
	MaxCount     int              `json:"max_count"     yaml:"max_count"`
	Summary      activity.Summary `json:"summary"       yaml:"summary"`
	Days         []DayView        `json:"days"          yaml:"days"`
}

// DayView is one non-future day of the calendar.
type DayView struct {
	Date  activity.Date  `json:"date"  yaml:"date"`
	Count int            `json:"count" yaml:"count"`
	Level activity.Level `json:"level" yaml:"level"`
}

// NewCalendarView flattens cal into chronological days.
func NewCalendarView(cal *activity.Calendar) *CalendarView {
	if cal == nil {
		return nil
	}

	cells := cal.Grid.Cells()
	days := make([]DayView, 0, len(cells))

	for _, cell := range cells {
		days = append(days, DayView{Date: cell.Date, Count: cell.Count, Level: cell.Level})
	}

	return &CalendarView{
		Start:        cal.Window.Start,
		End:          cal.Window.Today,
		FirstWeekday: cal.Window.FirstWeekday.String(),
		MaxCount:     cal.Grid.MaxCount,
		Summary:      cal.Summary,
		Days:         days,
	}
}

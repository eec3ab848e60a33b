package activity

// Cell is one day of the calendar grid.
type Cell struct {
	Date   Date  `json:"date"   yaml:"date"`
	Count  int   `json:"count"  yaml:"count"`
	Level  Level `json:"level"  yaml:"level"`
	Future bool  `json:"future" yaml:"future"`
}

// Grid is the calendar laid out as week columns and weekday rows.
//
// Rows[row][week] holds the cell for Window.DateAt(week, row). Columns run
// from the oldest week to the current one; rows follow the weekday order
// starting at Window.FirstWeekday.
type Grid struct {
	Window      Window
	Rows        [DaysPerWeek][]Cell
	MonthLabels []string
	DayLabels   [DaysPerWeek]string
	MaxCount    int
}

// BuildGrid lays out the buckets over the window. Cells after Window.Today
// are marked Future and carry no count.
func BuildGrid(b Buckets, win Window) *Grid {
	cols := win.Columns()
	maxCount := MaxCount(b)

	grid := &Grid{
		Window:      win,
		MonthLabels: MonthLabels(win),
		DayLabels:   DayLabels(win),
		MaxCount:    maxCount,
	}

	for row := range DaysPerWeek {
		cells := make([]Cell, cols)

		for week := range cols {
			date := win.DateAt(week, row)
			if date.After(win.Today) {
				cells[week] = Cell{Date: date, Future: true}

				continue
			}

			count := b.Count(date)
			cells[week] = Cell{Date: date, Count: count, Level: Classify(count, maxCount)}
		}

		grid.Rows[row] = cells
	}

	return grid
}

// Columns returns the number of week columns in the grid.
func (g *Grid) Columns() int {
	return len(g.Rows[0])
}

// Cells returns the non-future cells in chronological order.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, g.Columns()*DaysPerWeek)

	for week := range g.Columns() {
		for row := range DaysPerWeek {
			if cell := g.Rows[row][week]; !cell.Future {
				cells = append(cells, cell)
			}
		}
	}

	return cells
}

// MonthLabels returns one entry per week column: the abbreviated month of the
// column's first day where it differs from the previous column, blank otherwise.
func MonthLabels(win Window) []string {
	cols := win.Columns()
	labels := make([]string, cols)

	var previous Date

	for week := range cols {
		first := win.DateAt(week, 0)
		if week == 0 || first.Month != previous.Month {
			labels[week] = MonthAbbr(first.Month)
		}

		previous = first
	}

	return labels
}

// DayLabels names every other row, starting with the second, to keep the
// left margin narrow.
func DayLabels(win Window) [DaysPerWeek]string {
	var labels [DaysPerWeek]string

	for row := range DaysPerWeek {
		if row%2 == 1 {
			labels[row] = win.WeekdayAt(row).String()[:3]
		}
	}

	return labels
}

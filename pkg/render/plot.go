package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
	"github.com/Sumatoshi-tech/gitpulse/pkg/repoinfo"
)

const (
	chartWidth     = "1100px"
	heatMapHeight  = "260px"
	barChartHeight = "420px"
	defaultBarHex  = "#5470c6"
)

// Plot writes a standalone HTML page with the activity heat map and the
// language breakdown.
func Plot(w io.Writer, report *repoinfo.Report) error {
	page := components.NewPage()
	page.PageTitle = "gitpulse: " + report.Name

	if report.Calendar != nil {
		page.AddCharts(activityHeatMap(report.Name, report.Calendar))
	}

	page.AddCharts(languageBar(report))

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("render plot: %w", err)
	}

	return nil
}

// heatMapData emits one [week, row, count] point per non-future day.
func heatMapData(grid *activity.Grid) []opts.HeatMapData {
	data := make([]opts.HeatMapData, 0, grid.Columns()*activity.DaysPerWeek)

	for row := range activity.DaysPerWeek {
		for week, cell := range grid.Rows[row] {
			if cell.Future {
				continue
			}

			data = append(data, opts.HeatMapData{
				Name:  cell.Date.String(),
				Value: []any{week, row, cell.Count},
			})
		}
	}

	return data
}

func activityHeatMap(name string, cal *activity.Calendar) *charts.HeatMap {
	grid := cal.Grid

	weeks := make([]string, grid.Columns())
	for week := range weeks {
		weeks[week] = grid.Window.DateAt(week, 0).String()
	}

	days := make([]string, activity.DaysPerWeek)
	for row := range days {
		days[row] = grid.Window.WeekdayAt(row).String()[:3]
	}

	colors := make([]string, len(activity.Levels))
	for i, level := range activity.Levels {
		colors[i] = LevelColors[level]
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: name, Subtitle: cal.SummaryLine()}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: heatMapHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "category", Data: weeks,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "category", Data: days,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true), Min: 0, Max: float32(grid.MaxCount),
			InRange: &opts.VisualMapInRange{Color: colors},
			Orient:  "horizontal", Left: "center", Bottom: "0",
		}),
	)
	hm.AddSeries("Commits", heatMapData(grid))

	return hm
}

func languageBar(report *repoinfo.Report) *charts.Bar {
	names := make([]string, len(report.Languages))
	data := make([]opts.BarData, len(report.Languages))

	for i, l := range report.Languages {
		names[i] = l.Name

		barColor := l.Color
		if barColor == "" {
			barColor = defaultBarHex
		}

		data[i] = opts.BarData{
			Value:     l.Lines,
			ItemStyle: &opts.ItemStyle{Color: barColor},
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Lines of code"}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: barChartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Lines"}),
	)
	bar.SetXAxis(names).AddSeries("Lines", data)

	return bar
}

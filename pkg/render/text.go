package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/gitpulse/pkg/activity"
	"github.com/Sumatoshi-tech/gitpulse/pkg/disksize"
	"github.com/Sumatoshi-tech/gitpulse/pkg/langstats"
	"github.com/Sumatoshi-tech/gitpulse/pkg/repoinfo"
)

const (
	ruleWidth    = 40
	marginBlank  = "     "
	percentScale = 100
)

// Text writes the header, the activity calendar, its legend, and summary.
func Text(w io.Writer, report *repoinfo.Report, opts Options) error {
	var sb strings.Builder

	p := painter{enabled: opts.Color}

	writeHeader(&sb, report, p)

	if opts.Verbose && report.LangStats != nil && len(report.LangStats.Languages) > 0 {
		sb.WriteString("\n")
		sb.WriteString(languageTable(report.LangStats))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")

	if report.Calendar != nil {
		writeCalendar(&sb, report.Calendar, p)
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

func writeHeader(sb *strings.Builder, report *repoinfo.Report, p painter) {
	label := func(s string) string { return p.attrs(s, color.FgWhite, color.Bold) }

	sb.WriteString(p.attrs("  "+report.Name, color.FgCyan, color.Bold) + "\n")
	sb.WriteString(p.attrs(strings.Repeat("─", ruleWidth), color.Faint) + "\n")
	fmt.Fprintf(sb, "  %s  %s\n", label("Branch:"), p.attrs(report.Branch, color.FgYellow))
	fmt.Fprintf(sb, "  %s  %s\n", label("Commits:"), p.attrs(strconv.Itoa(report.Commits), color.FgGreen))
	fmt.Fprintf(sb, "  %s  %s\n", label("Size:"), disksize.Format(report.Size))

	if len(report.Authors) > 0 {
		authors := make([]string, len(report.Authors))
		for i, a := range report.Authors {
			authors[i] = fmt.Sprintf("%s (%d)", a.Name, a.Commits)
		}

		fmt.Fprintf(sb, "  %s  %s\n", label("Authors:"), strings.Join(authors, ", "))
	}

	if len(report.Languages) > 0 {
		langs := make([]string, len(report.Languages))
		for i, l := range report.Languages {
			name := l.Name
			if l.Color != "" {
				name = p.hex(l.Color, name)
			} else {
				name = p.attrs(name, color.FgWhite)
			}

			langs[i] = fmt.Sprintf("%s (%s)", name, CompactNumber(l.Lines))
		}

		fmt.Fprintf(sb, "  %s  %s\n", label("LOC:"), strings.Join(langs, ", "))
	}
}

func writeCalendar(sb *strings.Builder, cal *activity.Calendar, p painter) {
	grid := cal.Grid

	sb.WriteString(marginBlank)

	for _, month := range grid.MonthLabels {
		if month == "" {
			sb.WriteString("  ")
		} else {
			sb.WriteString(month)
		}
	}

	sb.WriteString("\n")

	for row := range activity.DaysPerWeek {
		if day := grid.DayLabels[row]; day != "" {
			sb.WriteString(" " + p.attrs(day, color.Faint) + " ")
		} else {
			sb.WriteString(marginBlank)
		}

		for _, cell := range grid.Rows[row] {
			if cell.Future {
				sb.WriteString("  ")

				continue
			}

			sb.WriteString(p.glyph(cell.Level) + " ")
		}

		sb.WriteString("\n")
	}

	sb.WriteString("\n" + marginBlank + "Less ")

	for _, level := range activity.Levels {
		sb.WriteString(p.glyph(level) + " ")
	}

	sb.WriteString("More\n\n")

	fmt.Fprintf(sb, "%s%s commits in the last year across %s days\n",
		marginBlank,
		p.attrs(strconv.Itoa(cal.Summary.TotalCommits), color.FgGreen, color.Bold),
		p.attrs(strconv.Itoa(cal.Summary.ActiveDays), color.FgCyan),
	)
}

// CompactNumber abbreviates counts of a thousand and more, such as "1.2K".
func CompactNumber(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}

	value, prefix := humanize.ComputeSI(float64(n))

	return fmt.Sprintf("%.1f%s", value, strings.ToUpper(prefix))
}

func languageTable(stats *langstats.Stats) string {
	total := stats.TotalLines()

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	tbl.AppendHeader(table.Row{"Language", "Files", "Lines", "Share"})

	for _, l := range stats.Languages {
		share := 0.0
		if total > 0 {
			share = float64(l.Lines) * percentScale / float64(total)
		}

		tbl.AppendRow(table.Row{l.Name, humanize.Comma(int64(l.Files)), humanize.Comma(int64(l.Lines)), fmt.Sprintf("%.1f%%", share)})
	}

	tbl.AppendFooter(table.Row{"Total", "", humanize.Comma(int64(total)), ""})

	return tbl.Render()
}

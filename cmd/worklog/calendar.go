package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/benjamonnguyen/worklog-go"
	"github.com/benjamonnguyen/worklog-go/tracker"
)

const calendarWeeks = 12

var levelStyles = [...]lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#45475a")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#40634a")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#5e9a66")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#82c98a")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")),
}

func renderCalendar(cells []tracker.CalendarCell) string {
	return renderCalendarAt(cells, time.Now())
}

// renderCalendarAt draws a weekday by week grid covering the weeks up to end.
func renderCalendarAt(cells []tracker.CalendarCell, end time.Time) string {
	levels := make(map[time.Time]int, len(cells))
	for _, c := range cells {
		levels[worklog.Date(c.Date)] = c.Level
	}

	end = worklog.Date(end)
	// first column starts on a Sunday
	start := end.AddDate(0, 0, -int(end.Weekday())-7*(calendarWeeks-1))

	weekdays := [7]string{"Sun", "   ", "Tue", "   ", "Thu", "   ", "Sat"}
	var rows [7]strings.Builder
	for i := range rows {
		rows[i].WriteString(mutedStyle.Render(weekdays[i]) + " ")
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		level := min(max(levels[d], 0), len(levelStyles)-1)
		rows[d.Weekday()].WriteString(levelStyles[level].Render("■") + " ")
	}

	lines := make([]string, 0, len(rows)+1)
	for i := range rows {
		lines = append(lines, strings.TrimRight(rows[i].String(), " "))
	}
	legend := mutedStyle.Render("Less ")
	for _, s := range levelStyles {
		legend += s.Render("■") + " "
	}
	lines = append(lines, legend+mutedStyle.Render("More"))
	return strings.Join(lines, "\n")
}

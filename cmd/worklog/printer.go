package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	accent = lipgloss.Color("#74c7ec")
	muted  = lipgloss.Color("#a6adc8")
	hot    = lipgloss.Color("#fab387")

	titleStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	labelStyle  = lipgloss.NewStyle().Foreground(muted).Width(22)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer {
	return printer{w: w}
}

func (p printer) Title(s string) {
	_, _ = fmt.Fprintln(p.w, titleStyle.Render(s))
}

func (p printer) Muted(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Fields prints aligned label/value pairs.
func (p printer) Fields(pairs ...string) {
	var sb strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(pairs[i]), valueStyle.Render(pairs[i+1])))
		sb.WriteString("\n")
	}
	_, _ = fmt.Fprint(p.w, sb.String())
}

func (p printer) Table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(muted)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	_, _ = fmt.Fprintln(p.w, t.String())
}

// Bar renders v as a proportional bar against maxV.
func Bar(v, maxV float64, width int) string {
	if maxV <= 0 || v <= 0 {
		return ""
	}
	n := min(int(v/maxV*float64(width)+0.5), width)
	return lipgloss.NewStyle().Foreground(hot).Render(strings.Repeat("█", max(n, 1)))
}

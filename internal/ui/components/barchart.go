package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/analytics"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// BarChart renders horizontal bars with a label column on the left and
// the count on the right of each bar.
type BarChart struct {
	Bars       []analytics.Bar
	LabelWidth int
}

// NewBarChart creates a chart. Labels longer than labelWidth are cut with
// an ellipsis.
func NewBarChart(bars []analytics.Bar, labelWidth int) BarChart {
	return BarChart{Bars: bars, LabelWidth: labelWidth}
}

// View renders the chart.
func (c BarChart) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.Text).Width(c.LabelWidth)
	barStyle := lipgloss.NewStyle().Foreground(theme.Error)
	countStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for _, bar := range c.Bars {
		b.WriteString(labelStyle.Render(Truncate(bar.Label, c.LabelWidth)))
		b.WriteString(" ")
		b.WriteString(barStyle.Render(strings.Repeat("█", bar.Width)))
		b.WriteString(countStyle.Render(fmt.Sprintf(" %d", bar.Count)))
		b.WriteString("\n")
	}
	return b.String()
}

// Truncate shortens s to at most width cells, ending in an ellipsis when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

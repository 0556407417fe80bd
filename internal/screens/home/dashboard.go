package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Block-letter title, same art as welcome/banner.go.
const titleFull = ` ┌─┐ ┬ ┬ ┬ ┌─┐ ┌┬┐ ┌─┐ ┌─┐ ┬┌─
 │─┼┐│ │ │ ┌─┘  ││ ├┤  │   ├┴┐
 └─┘└└─┘ ┴ └─┘ ─┴┘ └─┘ └─┘ ┴ ┴`

const titleCompact = "Q · U · I · Z · D · E · C · K"

// stats is the dashboard summary shown above the menu.
type stats struct {
	score     int
	attempted int
	favorites int
	missed    int
	progress  int
	deckSize  int
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(s stats, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	favStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	missStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			scoreStyle.Render(fmt.Sprintf("✓%d/%d", s.score, s.attempted)),
			favStyle.Render(fmt.Sprintf("★%d", s.favorites)),
			countText("✗", s.missed, missStyle, dimStyle),
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s  %s",
			scoreStyle.Render(fmt.Sprintf("✓ %d/%d", s.score, s.attempted)),
			favStyle.Render(fmt.Sprintf("★ %d SAVED", s.favorites)),
			countText("✗ ", s.missed, missStyle, dimStyle),
			dimStyle.Render(fmt.Sprintf("%d%% OF %d", s.progress, s.deckSize)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func countText(icon string, n int, active, dim lipgloss.Style) string {
	if n == 0 {
		return dim.Render(icon + "0 MISSED")
	}
	return active.Render(fmt.Sprintf("%s%d MISSED", icon, n))
}

// renderMenuBox centers the menu block within the content width.
func renderMenuBox(menu string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.TrimRight(menu, "\n"))
}

// renderConfirm renders the inline reset prompt.
func renderConfirm(cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Foreground(theme.Error).
		Bold(true).
		Width(cw - 2).
		Align(lipgloss.Center).
		Render("Erase all progress, favorites and history? (y/n)")
}

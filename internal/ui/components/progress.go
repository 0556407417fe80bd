package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// DeckProgress is a one-line bar for the current pass through the deck.
// The part of the deck already behind the cursor is filled; within it the
// share of correct answers is drawn in the success colour.
type DeckProgress struct {
	Index   int
	Total   int
	Correct int
	Width   int
}

// percentWidth is the room kept for "  100%".
const percentWidth = 6

// Percent is how far through the deck the cursor is, rounded.
func (p DeckProgress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return (200*p.Index + p.Total) / (2 * p.Total)
}

func (p DeckProgress) View() string {
	cells := max(p.Width-percentWidth, 4)

	var seen, good int
	if p.Total > 0 {
		seen = min(cells*p.Index/p.Total, cells)
		good = min(cells*p.Correct/p.Total, seen)
	}

	return lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Repeat("█", good)) +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", seen-good)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-seen)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d%%", p.Percent()))
}

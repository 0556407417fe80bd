package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for boxed sections so
// they line up.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 72)
}

// Frame wraps content in a double border, centered vertically and
// horizontally within the given dimensions.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Render(content)
}

// StatusLine renders a dim centered line, used for notices under a card.
func StatusLine(text string, width int, isError bool) string {
	fg := theme.TextDim
	if isError {
		fg = theme.Error
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render(text)
}

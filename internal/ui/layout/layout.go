package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Smallest terminal the frame is drawn in.
const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// bar draws the rounded strip used above and below the content.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader draws the app name on the left, title in the middle and
// status (usually the session score) on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  QuizDeck")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// ScoreStatus formats the header status for a session.
func ScoreStatus(mode string, score, attempted int) string {
	if mode == "" {
		return fmt.Sprintf("%d/%d", score, attempted)
	}
	return fmt.Sprintf("%s  %d/%d", mode, score, attempted)
}

// RenderFooter lists the key hints. When they do not fit on one line the
// descriptions are dropped and only the keys remain.
func RenderFooter(hints []KeyHint, width int) string {
	line := joinHints(hints, true)
	if lipgloss.Width(line) > max(width-4, 0) {
		line = joinHints(hints, false)
	}
	return bar(line, width)
}

func joinHints(hints []KeyHint, withDesc bool) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		p := key.Render(h.Key)
		if withDesc {
			p += " " + desc.Render(h.Description)
		}
		parts = append(parts, p)
	}
	sep := "   "
	if !withDesc {
		sep = " · "
	}
	return "  " + strings.Join(parts, sep)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).Render(content)
	return header + "\n" + body + "\n" + footer
}

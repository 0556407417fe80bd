package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	dealEvery    = 300 * time.Millisecond
	bannerAt     = 1200 * time.Millisecond
	hintAt       = 2000 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "One card at a time."

// cards are dealt one after another, each offset from the last.
var cards = []string{
	"┌───────┐\n│ ?     │\n│       │\n│     ? │\n└───────┘",
	"┌───────┐\n│ a  b  │\n│       │\n│  c  d │\n└───────┘",
	"┌───────┐\n│   ✓   │\n│       │\n│   ★   │\n└───────┘",
}

type tickMsg time.Time

// WelcomeScreen deals a few cards, shows the banner and waits for a key.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	left    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New returns a splash that replaces itself with next() on the first key.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.left || w.done() {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		if w.left {
			return w, nil
		}
		w.left = true
		home := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
	}
	return w, nil
}

// done reports whether every frame has been shown.
func (w *WelcomeScreen) done() bool { return w.elapsed >= hintAt }

// dealt is how many cards are on the table.
func (w *WelcomeScreen) dealt() int {
	return min(int(w.elapsed/dealEvery)+1, len(cards))
}

func (w *WelcomeScreen) View(width, height int) string {
	colors := []lipgloss.Style{
		lipgloss.NewStyle().Foreground(theme.Primary),
		lipgloss.NewStyle().Foreground(theme.Secondary),
		lipgloss.NewStyle().Foreground(theme.Accent),
	}
	hand := make([]string, 0, len(cards))
	for i := range w.dealt() {
		// Each card sits one row lower than the one before it.
		c := strings.Repeat("\n", i) + cards[i]
		hand = append(hand, colors[i%len(colors)].Render(c), " ")
	}
	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, hand...)}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
		)
	}
	if w.done() {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

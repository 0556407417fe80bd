package list

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/questions"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Kind selects which id set the list shows.
type Kind int

const (
	Favorites Kind = iota
	Missed
)

func (k Kind) String() string {
	if k == Missed {
		return "Missed"
	}
	return "Favorites"
}

func (k Kind) emptyText() string {
	if k == Missed {
		return "No missed questions yet. Nice work!"
	}
	return "No favorites yet. Press f on a card to save it."
}

// ListScreen shows the favorites or the missed set as a filterable list.
type ListScreen struct {
	engine *session.Engine
	kind   Kind

	items []questions.Question
	stale int // ids in the set that the loaded deck does not have

	filter   components.FilterInput
	selected int
	expanded map[string]bool
	errMsg   string
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)
var _ screen.EscCapturer = (*ListScreen)(nil)

// New creates a ListScreen for kind.
func New(engine *session.Engine, kind Kind) *ListScreen {
	return &ListScreen{
		engine:   engine,
		kind:     kind,
		filter:   components.NewFilterInput("search questions", 64),
		expanded: make(map[string]bool),
	}
}

func (s *ListScreen) Init() tea.Cmd {
	s.refresh()
	return nil
}

func (s *ListScreen) Title() string {
	return s.kind.String()
}

// CapturesEsc keeps Esc for leaving the filter while one is active.
func (s *ListScreen) CapturesEsc() bool {
	return s.filter.Focused() || s.filter.Value() != ""
}

func (s *ListScreen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "f", Description: "Favorite"},
		{Key: "/", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

// refresh reloads the id set from the engine.
func (s *ListScreen) refresh() {
	var ids []string
	if s.kind == Missed {
		ids = s.engine.Missed()
	} else {
		ids = s.engine.Favorites()
	}

	qs := s.engine.Questions()
	s.items = s.items[:0]
	s.stale = 0
	for _, id := range ids {
		q, err := qs.ByID(id)
		if err != nil {
			s.stale++
			continue
		}
		s.items = append(s.items, q)
	}
	s.clamp()
}

// visible returns the items that match the filter.
func (s *ListScreen) visible() []questions.Question {
	var out []questions.Question
	for _, q := range s.items {
		if s.filter.Matches(q.ID, q.Question, q.AnswerText()) {
			out = append(out, q)
		}
	}
	return out
}

func (s *ListScreen) clamp() {
	n := len(s.visible())
	if s.selected >= n {
		s.selected = n - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumeMsg:
		s.refresh()
		return s, nil
	case tea.KeyPressMsg:
		if s.filter.Focused() {
			return s.handleFilterKey(msg)
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ListScreen) handleFilterKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.filter.Clear()
		s.filter.Blur()
	case "enter":
		s.filter.Blur()
	default:
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.selected = 0
		return s, cmd
	}
	s.clamp()
	return s, nil
}

func (s *ListScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	vis := s.visible()

	switch msg.String() {
	case "/":
		return s, s.filter.Focus()
	case "esc":
		// Only reached while a query is applied; the router pops otherwise.
		s.filter.Clear()
		s.clamp()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(vis)-1 {
			s.selected++
		}
	case "enter", "space", " ":
		if len(vis) > 0 {
			id := vis[s.selected].ID
			s.expanded[id] = !s.expanded[id]
		}
	case "f":
		if len(vis) == 0 {
			return s, nil
		}
		if _, err := s.engine.ToggleFavorite(context.Background(), vis[s.selected].ID); err != nil {
			s.errMsg = "Favorites not saved: " + err.Error()
		} else {
			s.errMsg = ""
		}
		if s.kind == Favorites {
			s.refresh()
		}
	}
	return s, nil
}

func (s *ListScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.filter.View()))
	b.WriteString("\n\n")

	vis := s.visible()
	switch {
	case len(s.items) == 0:
		b.WriteString(dimCentered(width, s.kind.emptyText()))
		b.WriteString("\n")
	case len(vis) == 0:
		b.WriteString(dimCentered(width, fmt.Sprintf("No matches for %q", s.filter.Value())))
		b.WriteString("\n")
	default:
		b.WriteString(s.renderRows(vis, width, cw, max(height-8, 3)))
	}

	if s.stale > 0 {
		b.WriteString("\n")
		b.WriteString(dimCentered(width, fmt.Sprintf("%d saved question(s) are not in the loaded deck", s.stale)))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(components.StatusLine(s.errMsg, width, true))
	}
	return b.String()
}

// renderRows draws a window of rows that keeps the selection on screen.
func (s *ListScreen) renderRows(vis []questions.Question, width, cw, maxRows int) string {
	start := 0
	if s.selected >= maxRows {
		start = s.selected - maxRows + 1
	}
	end := min(start+maxRows, len(vis))

	var b strings.Builder
	for i := start; i < end; i++ {
		q := vis[i]

		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		mark := "  "
		if s.engine.IsFavorite(q.ID) {
			mark = "★ "
		}
		line := prefix + mark + components.Truncate(q.Question, cw-6)

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(cw)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[q.ID] {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetail(q, cw)))
			b.WriteString("\n")
		}
	}
	if end < len(vis) {
		b.WriteString(dimCentered(width, fmt.Sprintf("… %d more", len(vis)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderDetail(q questions.Question, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Correct.Render(fmt.Sprintf("%s) %s", q.Answer, q.AnswerText())))
	if q.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 6).Render(q.Explanation))
	}
	return lipgloss.NewStyle().PaddingLeft(4).Width(cw).Render(b.String())
}

func dimCentered(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
		Render(text)
}

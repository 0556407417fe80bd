package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/questions"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// MultiChoice is a selector over a question's keyed choices. Pressing a
// choice key picks it directly; arrows and Enter pick the highlighted one.
// Once a choice is picked the component stops taking input.
type MultiChoice struct {
	Choices   questions.Choices
	AnswerKey string
	Selected  int
	Submitted bool
	Chosen    string

	// Revealed marks the answer without a submission, for study mode.
	Revealed bool
}

// NewMultiChoice creates a selector for q.
func NewMultiChoice(q questions.Question) MultiChoice {
	return MultiChoice{
		Choices:   q.Choices,
		AnswerKey: q.Answer,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection. It reports the chosen
// key through Chosen once Submitted flips to true.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted || m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Choices)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected < len(m.Choices) {
			m.submit(m.Choices[m.Selected].Key)
		}
	default:
		for i, c := range m.Choices {
			if c.Key == key {
				m.Selected = i
				m.submit(key)
				break
			}
		}
	}

	return m, nil
}

func (m *MultiChoice) submit(key string) {
	m.Submitted = true
	m.Chosen = key
}

// HasKey reports whether key labels one of the choices.
func (m MultiChoice) HasKey(key string) bool {
	_, ok := m.Choices.Text(key)
	return ok
}

// View renders the choices.
func (m MultiChoice) View() string {
	var b strings.Builder
	done := m.Submitted || m.Revealed

	for i, c := range m.Choices {
		prefix := "  "
		if i == m.Selected && !done {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, c.Key, c.Text)

		var style lipgloss.Style
		switch {
		case done && c.Key == m.AnswerKey:
			style = theme.Correct
		case m.Submitted && c.Key == m.Chosen:
			style = theme.Incorrect
		case done:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the user chose the correct answer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Chosen == m.AnswerKey
}

package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// FilterInput wraps bubbles/textinput as a case-insensitive list filter.
// It only takes keystrokes while focused.
type FilterInput struct {
	Model textinput.Model
}

// NewFilterInput creates an unfocused filter input.
func NewFilterInput(placeholder string, maxWidth int) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "/ "
	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}
	return FilterInput{Model: ti}
}

// Focus starts taking keystrokes.
func (f *FilterInput) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur stops taking keystrokes and keeps the current query.
func (f *FilterInput) Blur() {
	f.Model.Blur()
}

// Focused reports whether the input is taking keystrokes.
func (f FilterInput) Focused() bool {
	return f.Model.Focused()
}

// Clear empties the query.
func (f *FilterInput) Clear() {
	f.Model.SetValue("")
}

// Update handles messages.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the filter input.
func (f FilterInput) View() string {
	if !f.Focused() && f.Value() == "" {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("/ to filter")
	}
	return f.Model.View()
}

// Value returns the current query.
func (f FilterInput) Value() string {
	return f.Model.Value()
}

// Matches reports whether any of fields contains the query, ignoring case.
// An empty query matches everything.
func (f FilterInput) Matches(fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(f.Value()))
	if q == "" {
		return true
	}
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

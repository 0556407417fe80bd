package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// MenuItem is one row of a Menu.
type MenuItem struct {
	Label string

	// Detail is drawn dimmed after the label, e.g. a count.
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a numbered vertical menu. Arrows (or j/k) move the cursor and
// wrap at either end, Enter runs the selected item, and a digit runs that
// item directly. Disabled items are skipped.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.step(-1)
	case "down", "j", "tab":
		m.step(1)
	case "home", "g":
		m.Selected = -1
		m.step(1)
	case "end", "G":
		m.Selected = len(m.Items)
		m.step(-1)
	case "enter":
		return m, m.run(m.Selected)
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(m.Items) || m.Items[n-1].Disabled {
			return m, nil
		}
		m.Selected = n - 1
		return m, m.run(m.Selected)
	}
	return m, nil
}

// step moves the cursor to the next enabled item in direction dir,
// wrapping around. It leaves the cursor alone if nothing is enabled.
func (m *Menu) step(dir int) {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		j := ((m.Selected+dir*i)%n + n) % n
		if !m.Items[j].Disabled {
			m.Selected = j
			return
		}
	}
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	if it := m.Items[i]; it.Action != nil && !it.Disabled {
		return it.Action()
	}
	return nil
}

func (m Menu) View() string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for i, it := range m.Items {
		label := strconv.Itoa(i+1) + ". " + it.Label
		switch {
		case it.Disabled:
			b.WriteString(dim.Render("    " + label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + label))
		default:
			b.WriteString(theme.Unselected.Render("    " + label))
		}
		if it.Detail != "" {
			b.WriteString("  " + dim.Render(it.Detail))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

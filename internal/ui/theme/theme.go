package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Names of the built-in palettes, matching the persisted preference.
const (
	Dark  = "dark"
	Light = "light"
)

// Palette is one colour scheme.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

var palettes = map[string]Palette{
	Dark: {
		Primary:   lipgloss.Color("#60A5FA"), // Sky
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#FBBF24"), // Amber
		Success:   lipgloss.Color("#22C55E"), // Green
		Error:     lipgloss.Color("#F43F5E"), // Rose
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		BgDark:    lipgloss.Color("#0F172A"),
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
	},
	Light: {
		Primary:   lipgloss.Color("#1D4ED8"),
		Secondary: lipgloss.Color("#0F766E"),
		Accent:    lipgloss.Color("#B45309"),
		Success:   lipgloss.Color("#15803D"),
		Error:     lipgloss.Color("#BE123C"),
		Text:      lipgloss.Color("#0F172A"),
		TextDim:   lipgloss.Color("#475569"),
		BgDark:    lipgloss.Color("#F8FAFC"),
		BgCard:    lipgloss.Color("#E2E8F0"),
		Border:    lipgloss.Color("#CBD5E1"),
	},
}

// Active colours. Apply swaps them.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
)

// Styles derived from the active colours.
var (
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Body       lipgloss.Style
	Hint       lipgloss.Style
	Card       lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

var current string

func init() {
	Apply(Dark)
}

// Apply switches to the named palette. Unknown names select the dark one.
// It reports the palette actually applied.
func Apply(name string) string {
	p, ok := palettes[name]
	if !ok {
		name = Dark
		p = palettes[Dark]
	}
	current = name

	Primary, Secondary, Accent = p.Primary, p.Secondary, p.Accent
	Success, Error = p.Success, p.Error
	Text, TextDim = p.Text, p.TextDim
	BgDark, BgCard, Border = p.BgDark, p.BgCard, p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	return name
}

// Current returns the name of the active palette.
func Current() string {
	return current
}

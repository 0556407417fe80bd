package stats

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/analytics"
	"github.com/abhisek/quizdeck/internal/questions"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type reportLoadedMsg struct {
	Report analytics.Report
	Err    error
}

// StatsScreen shows lifetime accuracy and the most missed questions.
type StatsScreen struct {
	agg       *analytics.Aggregator
	questions *questions.Store

	report analytics.Report
	loaded bool
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen. Question text is looked up in qs for the
// chart labels.
func New(agg *analytics.Aggregator, qs *questions.Store) *StatsScreen {
	return &StatsScreen{agg: agg, questions: qs}
}

func (s *StatsScreen) Init() tea.Cmd {
	return s.load
}

func (s *StatsScreen) load() tea.Msg {
	r, err := s.agg.Report(context.Background(), analytics.DefaultTopMissed)
	return reportLoadedMsg{Report: r, Err: err}
}

func (s *StatsScreen) Title() string {
	return "Analytics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.report = msg.Report
	case router.ResumeMsg:
		return s, s.load
	case tea.KeyPressMsg:
		if msg.String() == "r" {
			return s, s.load
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nCould not read history: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}

	sum := s.report.Summary
	if sum.TotalAttempts == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Take a quiz!")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(accuracyColor(sum.AccuracyPercent)).
		Bold(true).
		Render(fmt.Sprintf("%d%% accuracy · %d wrong", sum.AccuracyPercent, sum.Incorrect())))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(sum.String()))
	b.WriteString("\n\n")

	if len(s.report.TopMissed) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Success).
			Render("Nothing missed so far."))
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render("Most missed"))
	b.WriteString("\n\n")

	labelWidth := cw / 2
	bars := s.label(analytics.BarChart(s.report.TopMissed, cw-labelWidth-6, analytics.DefaultBarScale))
	chart := components.NewBarChart(bars, labelWidth).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.TrimRight(chart, "\n")))
	b.WriteString("\n")

	return b.String()
}

// label swaps question ids for question text where the deck has them.
func (s *StatsScreen) label(bars []analytics.Bar) []analytics.Bar {
	if s.questions == nil {
		return bars
	}
	for i := range bars {
		if q, err := s.questions.ByID(bars[i].Label); err == nil {
			bars[i].Label = q.Question
		}
	}
	return bars
}

// accuracyColor grades an accuracy percentage: green from 80, amber from
// 50, red below.
func accuracyColor(pct int) color.Color {
	switch {
	case pct >= 80:
		return theme.Success
	case pct >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}

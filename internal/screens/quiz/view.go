package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	st := s.engine.State()

	var b strings.Builder
	b.WriteString(s.renderInfoLine(st, cw))
	b.WriteString("\n\n")

	var card string
	if s.missing {
		card = renderMissing()
	} else {
		card = s.renderCard(cw - 6)
	}
	b.WriteString(components.Card(card, cw))
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString(components.StatusLine(s.notice, cw, false))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(components.StatusLine(s.errMsg, cw, true))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}

func (s *QuizScreen) renderInfoLine(st session.State, cw int) string {
	pos := fmt.Sprintf("Card %d/%d", min(st.Index+1, len(st.Shuffled)), len(st.Shuffled))
	if !s.missing && s.engine.IsFavorite(s.question.ID) {
		pos += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Render("★")
	}
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(pos)
	bar := components.DeckProgress{
		Index:   st.Index,
		Total:   len(st.Shuffled),
		Correct: st.Score,
		Width:   max(cw-lipgloss.Width(left)-2, 10),
	}.View()
	return left + "  " + bar
}

func (s *QuizScreen) renderCard(width int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Bold(true).
		Render(s.question.Question))
	b.WriteString("\n\n")

	switch s.mode() {
	case session.ModeFlash:
		b.WriteString(s.renderFlash(width))
	case session.ModeStudy:
		b.WriteString(s.choices.View())
		b.WriteString(renderExplanation(s.question.Explanation, width))
	default:
		b.WriteString(s.choices.View())
		if s.answered {
			b.WriteString("\n")
			b.WriteString(s.renderFeedback(width))
		} else {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("Press a choice key, or use arrows + Enter"))
		}
	}

	return b.String()
}

func (s *QuizScreen) renderFlash(width int) string {
	if !s.flipped {
		return theme.Hint.Render("Press space to reveal the answer")
	}
	var b strings.Builder
	b.WriteString(theme.Correct.Render(fmt.Sprintf("%s)  %s", s.question.Answer, s.question.AnswerText())))
	b.WriteString("\n")
	b.WriteString(renderExplanation(s.question.Explanation, width))
	return b.String()
}

func (s *QuizScreen) renderFeedback(width int) string {
	var b strings.Builder
	if s.outcome.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("Correct answer: %s) %s", s.question.Answer, s.question.AnswerText())))
	}
	b.WriteString("\n")
	b.WriteString(renderExplanation(s.outcome.Explanation, width))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press n for the next card"))
	return b.String()
}

func renderExplanation(text string, width int) string {
	if text == "" {
		return ""
	}
	return "\n" + lipgloss.NewStyle().
		Width(width).
		Foreground(theme.Text).
		Render(text) + "\n"
}

func renderMissing() string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("No card to show: the deck is empty.\nImport questions with quizdeck import <file>.")
}

package quiz

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/questions"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// QuizScreen walks the shuffled deck in the engine's current mode.
type QuizScreen struct {
	engine *session.Engine

	question questions.Question
	missing  bool // no card under the cursor, the deck is empty
	choices  components.MultiChoice

	// answered is set after the first submission for the card and blocks
	// further submissions until the card changes.
	answered bool
	outcome  session.Outcome
	flipped  bool

	notice string
	errMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates a QuizScreen over a started engine.
func New(engine *session.Engine) *QuizScreen {
	return &QuizScreen{engine: engine}
}

func (s *QuizScreen) Init() tea.Cmd {
	s.loadCard()
	return nil
}

func (s *QuizScreen) Title() string {
	return s.mode().DisplayName()
}

func (s *QuizScreen) Status() string {
	st := s.engine.State()
	return fmt.Sprintf("Score %d/%d", st.Score, st.Attempted)
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "n/p", Description: "Next/Prev"},
		{Key: "f", Description: "Favorite"},
	}
	switch s.mode() {
	case session.ModeQuiz:
		if !s.answered {
			hints = append([]layout.KeyHint{{Key: "a-d", Description: "Answer"}}, hints...)
		}
	case session.ModeFlash:
		hints = append([]layout.KeyHint{{Key: "Space", Description: "Flip"}}, hints...)
	}
	return append(hints,
		layout.KeyHint{Key: "r", Description: "Reshuffle"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}

func (s *QuizScreen) mode() session.Mode {
	return s.engine.State().Mode
}

// loadCard resets per-card state for the card under the cursor.
func (s *QuizScreen) loadCard() {
	s.answered = false
	s.outcome = session.Outcome{}
	s.flipped = false

	q, err := s.engine.CurrentQuestion()
	s.missing = err != nil
	s.question = q
	s.choices = components.NewMultiChoice(q)
	s.choices.Revealed = s.mode() == session.ModeStudy
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case router.ResumeMsg:
		s.loadCard()
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	s.notice = ""

	if s.mode() == session.ModeQuiz && !s.answered && !s.missing {
		switch {
		case s.choices.HasKey(key), key == "up", key == "down", key == "enter":
			s.choices, _ = s.choices.Update(msg)
			if s.choices.Submitted {
				s.submit(s.choices.Chosen)
			}
			return s, nil
		}
	}

	switch key {
	case "n", "right", "enter":
		if s.mode().RequiresAnswer() && !s.answered && !s.missing {
			s.notice = "Pick an answer first."
			return s, nil
		}
		s.report(s.engine.Advance(context.Background(), true))
		s.loadCard()
	case "p", "left":
		s.report(s.engine.Retreat(context.Background()))
		s.loadCard()
	case "f":
		if s.missing {
			return s, nil
		}
		fav, err := s.engine.ToggleFavorite(context.Background(), s.question.ID)
		s.report(err)
		if fav {
			s.notice = "Added to favorites."
		} else {
			s.notice = "Removed from favorites."
		}
	case "space", " ":
		if s.mode() == session.ModeFlash {
			s.flipped = !s.flipped
		}
	case "r":
		s.report(s.engine.ResetSession(context.Background()))
		s.loadCard()
		s.notice = "Deck reshuffled."
	}
	return s, nil
}

func (s *QuizScreen) submit(key string) {
	out, err := s.engine.SubmitAnswer(context.Background(), key)
	s.answered = true
	s.outcome = out
	s.report(err)
}

// report records a failed save. The session keeps going; only the saved
// copy is behind.
func (s *QuizScreen) report(err error) {
	if err != nil {
		s.errMsg = "Progress not saved: " + err.Error()
		return
	}
	s.errMsg = ""
}

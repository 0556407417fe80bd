package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/quizdeck/internal/store"
)

// ErrInvalidMode is returned by ParseMode for unknown mode names.
var ErrInvalidMode = errors.New("invalid mode")

// Mode selects how the presentation layer walks the deck.
type Mode string

const (
	ModeQuiz  Mode = "quiz"  // answer each card before moving on
	ModeStudy Mode = "study" // answer and explanation shown up front
	ModeFlash Mode = "flash" // question on the front, answer on the back
)

// AllModes returns the modes in menu order.
func AllModes() []Mode {
	return []Mode{ModeQuiz, ModeStudy, ModeFlash}
}

// ParseMode converts a persisted or user-supplied name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeQuiz, ModeStudy, ModeFlash:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// RequiresAnswer reports whether the presentation layer should wait for an
// answer before letting the learner advance. Study and flash modes advance
// freely.
func (m Mode) RequiresAnswer() bool {
	return m == ModeQuiz
}

// DisplayName returns a human-readable name for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeQuiz:
		return "Quiz"
	case ModeStudy:
		return "Study"
	case ModeFlash:
		return "Flashcards"
	default:
		return string(m)
	}
}

// State is the traversal state of the current session.
type State struct {
	// Shuffled is a permutation of every question id.
	Shuffled []string

	// Index points into Shuffled. It is 0 when Shuffled is empty.
	Index int

	// Score counts correct answers in this session.
	Score int

	// Attempted counts every submitted answer in this session.
	Attempted int

	Mode Mode

	// SessionID identifies the shuffle this state walks. A new one is
	// minted whenever the order is regenerated.
	SessionID string
}

// Incorrect returns the number of wrong answers in this session.
func (s State) Incorrect() int {
	return s.Attempted - s.Score
}

// CurrentID returns the id under the cursor, or "" when the order is empty.
func (s State) CurrentID() string {
	if s.Index < 0 || s.Index >= len(s.Shuffled) {
		return ""
	}
	return s.Shuffled[s.Index]
}

func (s State) clone() State {
	s.Shuffled = slices.Clone(s.Shuffled)
	return s
}

func (s State) record() store.SessionRecord {
	return store.SessionRecord{
		Shuffled:  slices.Clone(s.Shuffled),
		Index:     s.Index,
		Score:     s.Score,
		Attempted: s.Attempted,
		Mode:      string(s.Mode),
		SessionID: s.SessionID,
	}
}

func stateFromRecord(rec store.SessionRecord) State {
	mode, err := ParseMode(rec.Mode)
	if err != nil {
		mode = ModeQuiz
	}
	return State{
		Shuffled:  slices.Clone(rec.Shuffled),
		Index:     rec.Index,
		Score:     rec.Score,
		Attempted: rec.Attempted,
		Mode:      mode,
		SessionID: rec.SessionID,
	}
}

// idSet is a set of question ids that remembers insertion order, so the
// persisted array reads the same way every time.
type idSet struct {
	order []string
	has   map[string]bool
}

func newIDSet(ids []string) *idSet {
	s := &idSet{has: make(map[string]bool, len(ids))}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *idSet) add(id string) bool {
	if s.has[id] {
		return false
	}
	s.has[id] = true
	s.order = append(s.order, id)
	return true
}

func (s *idSet) remove(id string) bool {
	if !s.has[id] {
		return false
	}
	delete(s.has, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return true
}

func (s *idSet) contains(id string) bool {
	return s.has[id]
}

func (s *idSet) list() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// isPermutation reports whether order holds every id exactly once.
func isPermutation(order, ids []string) bool {
	if len(order) != len(ids) {
		return false
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, id := range order {
		if !want[id] {
			return false
		}
		delete(want, id)
	}
	return true
}

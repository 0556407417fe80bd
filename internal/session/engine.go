package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/questions"
	"github.com/abhisek/quizdeck/internal/store"
)

// ErrNotConfirmed is returned by ResetAllProgress when the caller has not
// confirmed the reset.
var ErrNotConfirmed = errors.New("reset not confirmed")

// Outcome describes a submitted answer.
type Outcome struct {
	QuestionID  string
	Chosen      string
	AnswerKey   string
	Correct     bool
	Explanation string

	// Score and Attempted are the session counters after the answer.
	Score     int
	Attempted int
}

// Engine owns the session state, favorites and missed set, and turns
// learner actions into state transitions. Every mutation is written to the
// ProgressRepo before the method returns. An Engine is not safe for
// concurrent use.
type Engine struct {
	questions *questions.Store
	repo      store.ProgressRepo
	rng       *rand.Rand
	now       func() time.Time
	newID     func() string
	logger    *slog.Logger

	state     State
	favorites *idSet
	missed    *idSet
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds the shuffle so the order is reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = NewRand(seed) }
}

// WithClock sets the clock used to timestamp history entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger used for best-effort failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine over a question store and a persistence
// gateway. Call StartOrResume before anything else.
func NewEngine(qs *questions.Store, repo store.ProgressRepo, opts ...Option) *Engine {
	e := &Engine{
		questions: qs,
		repo:      repo,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
		logger:    slog.New(slog.DiscardHandler),
		favorites: newIDSet(nil),
		missed:    newIDSet(nil),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartOrResume restores the saved session if its order is a permutation of
// the loaded deck's ids, or starts a fresh one. A session saved against
// another deck keeps its mode but gets a new order. The resulting state is
// saved. Favorites and the missed set are loaded as well.
func (e *Engine) StartOrResume(ctx context.Context) error {
	favs, err := e.repo.LoadFavorites(ctx)
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return fmt.Errorf("load favorites: %w", err)
	}
	e.warnCorrupt("favorites", err)
	e.favorites = newIDSet(favs)

	missed, err := e.repo.LoadMissed(ctx)
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return fmt.Errorf("load missed: %w", err)
	}
	e.warnCorrupt("missed", err)
	e.missed = newIDSet(missed)

	rec, err := e.repo.LoadSession(ctx)
	if err != nil && !errors.Is(err, store.ErrCorrupt) {
		return fmt.Errorf("load session: %w", err)
	}
	e.warnCorrupt("session", err)

	switch {
	case rec == nil || len(rec.Shuffled) == 0:
		e.state = e.freshState(ModeQuiz)
		e.logger.Debug("started session",
			slog.String("session_id", e.state.SessionID),
			slog.Int("questions", len(e.state.Shuffled)))

	case !isPermutation(rec.Shuffled, e.questions.IDs()):
		// Saved against another deck, e.g. before --questions changed.
		e.logger.Warn("saved order does not match the loaded deck, starting fresh",
			slog.Int("saved", len(rec.Shuffled)), slog.Int("deck", len(e.questions.IDs())))
		e.state = e.freshState(stateFromRecord(*rec).Mode)

	default:
		e.state = stateFromRecord(*rec)
		if e.state.Index < 0 || e.state.Index >= len(e.state.Shuffled) {
			e.logger.Warn("saved index out of range, rewinding",
				slog.Int("index", e.state.Index), slog.Int("len", len(e.state.Shuffled)))
			e.state.Index = 0
		}
		e.logger.Debug("resumed session",
			slog.String("session_id", e.state.SessionID),
			slog.Int("index", e.state.Index),
			slog.Int("attempted", e.state.Attempted))
	}

	return e.saveState(ctx)
}

// CurrentQuestion returns the question under the cursor. It returns an
// error matching questions.ErrNotFound when the deck is empty.
func (e *Engine) CurrentQuestion() (questions.Question, error) {
	id := e.state.CurrentID()
	if id == "" {
		return questions.Question{}, fmt.Errorf("%w: empty session", questions.ErrNotFound)
	}
	return e.questions.ByID(id)
}

// SubmitAnswer scores chosenKey against the current question. Attempted
// always increments; score increments when the key matches. A wrong answer
// adds the question to the missed set. One history entry is appended
// either way.
//
// Submitting twice for the same card counts twice. Callers disable input
// after the first submission.
func (e *Engine) SubmitAnswer(ctx context.Context, chosenKey string) (Outcome, error) {
	q, err := e.CurrentQuestion()
	if err != nil {
		return Outcome{}, err
	}

	correct := q.IsCorrect(chosenKey)
	e.state.Attempted++
	if correct {
		e.state.Score++
	}

	var errs []error
	if !correct {
		e.missed.add(q.ID)
		if err := e.repo.SaveMissed(ctx, e.missed.list()); err != nil {
			errs = append(errs, fmt.Errorf("save missed: %w", err))
		}
	}

	entry := store.HistoryEntry{
		QuestionID:  q.ID,
		Correct:     correct,
		TimestampMs: e.now().UnixMilli(),
		SessionID:   e.state.SessionID,
	}
	if err := e.repo.AppendHistory(ctx, entry); err != nil {
		errs = append(errs, fmt.Errorf("append history: %w", err))
	}
	if err := e.saveState(ctx); err != nil {
		errs = append(errs, err)
	}

	out := Outcome{
		QuestionID:  q.ID,
		Chosen:      chosenKey,
		AnswerKey:   q.Answer,
		Correct:     correct,
		Explanation: q.Explanation,
		Score:       e.state.Score,
		Attempted:   e.state.Attempted,
	}
	return out, errors.Join(errs...)
}

// Advance moves to the next card. Past the last card the cursor wraps to
// the first when wrapToStart is set and stays on the last otherwise.
func (e *Engine) Advance(ctx context.Context, wrapToStart bool) error {
	n := len(e.state.Shuffled)
	if n == 0 {
		return nil
	}
	e.state.Index++
	if e.state.Index >= n {
		if wrapToStart {
			e.state.Index = 0
		} else {
			e.state.Index = n - 1
		}
	}
	return e.saveState(ctx)
}

// Retreat moves to the previous card, stopping at the first.
func (e *Engine) Retreat(ctx context.Context) error {
	if e.state.Index > 0 {
		e.state.Index--
	}
	return e.saveState(ctx)
}

// ToggleFavorite flips id's membership in the favorites and saves the
// whole set. It reports whether id is a favorite afterwards.
func (e *Engine) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	fav := e.favorites.add(id)
	if !fav {
		e.favorites.remove(id)
	}
	if err := e.repo.SaveFavorites(ctx, e.favorites.list()); err != nil {
		return fav, fmt.Errorf("save favorites: %w", err)
	}
	return fav, nil
}

// ResetSession reshuffles the deck and zeroes the counters. The mode is
// kept; favorites, missed set and history are untouched.
func (e *Engine) ResetSession(ctx context.Context) error {
	e.state = e.freshState(e.state.Mode)
	return e.saveState(ctx)
}

// ResetAllProgress wipes the session, favorites, missed set and history and
// starts over as on first run. It does nothing unless confirmed is true.
// A failure to clear storage is logged and does not stop the reset.
func (e *Engine) ResetAllProgress(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := e.repo.ClearProgress(ctx); err != nil {
		e.logger.Warn("clear progress failed, resetting anyway", slog.Any("err", err))
	}

	e.favorites = newIDSet(nil)
	e.missed = newIDSet(nil)
	e.state = e.freshState(ModeQuiz)
	if err := e.saveState(ctx); err != nil {
		e.logger.Warn("save fresh session failed", slog.Any("err", err))
	}
	e.logger.Info("progress reset", slog.String("session_id", e.state.SessionID))
	return nil
}

// SetMode switches the traversal mode.
func (e *Engine) SetMode(ctx context.Context, m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	e.state.Mode = m
	return e.saveState(ctx)
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state.clone()
}

// Questions returns the store the engine reads from.
func (e *Engine) Questions() *questions.Store {
	return e.questions
}

// IsFavorite reports whether id is a favorite.
func (e *Engine) IsFavorite(id string) bool {
	return e.favorites.contains(id)
}

// Favorites returns the favorite ids in the order they were added.
func (e *Engine) Favorites() []string {
	return e.favorites.list()
}

// IsMissed reports whether id has ever been answered incorrectly.
func (e *Engine) IsMissed(id string) bool {
	return e.missed.contains(id)
}

// Missed returns the missed ids in the order they were first missed.
func (e *Engine) Missed() []string {
	return e.missed.list()
}

// Progress returns how far the cursor is through the order, in whole
// percent.
func (e *Engine) Progress() int {
	n := len(e.state.Shuffled)
	if n == 0 {
		return 0
	}
	return int(float64(e.state.Index)/float64(n)*100 + 0.5)
}

func (e *Engine) freshState(mode Mode) State {
	return State{
		Shuffled:  Shuffle(e.questions.IDs(), e.rng),
		Mode:      mode,
		SessionID: e.newID(),
	}
}

func (e *Engine) saveState(ctx context.Context) error {
	if err := e.repo.SaveSession(ctx, e.state.record()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (e *Engine) warnCorrupt(what string, err error) {
	if err != nil {
		e.logger.Warn("discarding unreadable "+what, slog.Any("err", err))
	}
}

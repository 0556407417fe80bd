package store

import (
	"context"
	"time"
)

// Persisted keys. Every key lives under the quizdeck namespace so a full
// reset can clear them without touching anything else in the database.
const (
	Namespace = "quizdeck."

	KeySession       = Namespace + "state.v1"
	KeyFavorites     = Namespace + "favs.v1"
	KeyMissed        = Namespace + "missed.v1"
	KeyTheme         = Namespace + "theme"
	KeyPendingImport = Namespace + "imported_questions"
)

// progressKeys are cleared by ClearProgress. History is cleared alongside
// them even though it lives in its own table.
var progressKeys = []string{KeySession, KeyFavorites, KeyMissed}

// allKeys are cleared by ClearAll.
var allKeys = []string{KeySession, KeyFavorites, KeyMissed, KeyTheme, KeyPendingImport}

// SessionRecord is the persisted form of the session engine's state.
type SessionRecord struct {
	Shuffled  []string `json:"shuffled"`
	Index     int      `json:"index"`
	Score     int      `json:"score"`
	Attempted int      `json:"attempted"`
	Mode      string   `json:"mode"`
	SessionID string   `json:"session_id,omitempty"`
}

// HistoryEntry is one answer attempt.
type HistoryEntry struct {
	Sequence    int64  `json:"-"`
	QuestionID  string `json:"id"`
	Correct     bool   `json:"correct"`
	TimestampMs int64  `json:"t"`
	SessionID   string `json:"session_id,omitempty"`
}

// Time returns the attempt time.
func (e HistoryEntry) Time() time.Time {
	return time.UnixMilli(e.TimestampMs)
}

// Theme is the persisted colour scheme preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// HistoryReader gives read access to the answer log.
type HistoryReader interface {
	// History returns every entry in the order it was appended.
	History(ctx context.Context) ([]HistoryEntry, error)
}

// ProgressRepo persists everything a learner accumulates. Each write is
// atomic for its own entity only; there are no cross-entity transactions
// apart from the clear operations.
type ProgressRepo interface {
	HistoryReader

	// LoadSession returns the saved session, or nil if none is saved.
	LoadSession(ctx context.Context) (*SessionRecord, error)
	SaveSession(ctx context.Context, rec SessionRecord) error
	ClearSession(ctx context.Context) error

	LoadFavorites(ctx context.Context) ([]string, error)
	SaveFavorites(ctx context.Context, ids []string) error

	LoadMissed(ctx context.Context) ([]string, error)
	SaveMissed(ctx context.Context, ids []string) error

	// AppendHistory adds an entry to the end of the log.
	AppendHistory(ctx context.Context, e HistoryEntry) error

	// Theme returns the saved theme, or ThemeDark when unset.
	Theme(ctx context.Context) (Theme, error)
	SetTheme(ctx context.Context, t Theme) error

	// PendingImport returns a question document saved by an import that has
	// not been applied yet, or nil.
	PendingImport(ctx context.Context) ([]byte, error)
	SetPendingImport(ctx context.Context, doc []byte) error
	ClearPendingImport(ctx context.Context) error

	// ClearProgress removes the session, favorites, missed set and history.
	ClearProgress(ctx context.Context) error

	// ClearAll removes every key in the namespace, including the theme and
	// any pending import, and the history.
	ClearAll(ctx context.Context) error
}

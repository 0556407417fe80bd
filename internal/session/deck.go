package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/quizdeck/internal/questions"
	"github.com/abhisek/quizdeck/internal/store"
)

// DeckSource says where LoadDeck found the questions.
type DeckSource string

const (
	SourceFile     DeckSource = "file"
	SourceImported DeckSource = "imported"
	SourceBuiltin  DeckSource = "builtin"
)

// Import validates data and saves it as the imported deck. The saved
// session is cleared so the next start shuffles over the new ids. The deck
// in use by a running engine is not touched.
func Import(ctx context.Context, repo store.ProgressRepo, data []byte) error {
	doc, err := questions.ParseImport(data)
	if err != nil {
		return err
	}
	if err := repo.SetPendingImport(ctx, doc); err != nil {
		return fmt.Errorf("save import: %w", err)
	}
	if err := repo.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// LoadDeck picks the deck for this run: the file at path when set, then the
// imported deck, then the built-in one. An imported deck that no longer
// parses is logged, discarded and replaced by the built-in deck.
func LoadDeck(ctx context.Context, repo store.ProgressRepo, path string, logger *slog.Logger) (*questions.Store, DeckSource, error) {
	if path != "" {
		qs, err := questions.LoadFile(path)
		if err != nil {
			return nil, "", err
		}
		return qs, SourceFile, nil
	}

	doc, err := repo.PendingImport(ctx)
	if err != nil {
		logger.Warn("read imported deck failed, using built-in", slog.Any("err", err))
		return questions.Default(), SourceBuiltin, nil
	}
	if doc == nil {
		return questions.Default(), SourceBuiltin, nil
	}

	qs, err := loadImported(doc)
	if err != nil {
		logger.Warn("discarding unreadable imported deck", slog.Any("err", err))
		if err := repo.ClearPendingImport(ctx); err != nil {
			logger.Warn("clear imported deck failed", slog.Any("err", err))
		}
		return questions.Default(), SourceBuiltin, nil
	}
	logger.Debug("using imported deck", slog.Int("questions", qs.Len()))
	return qs, SourceImported, nil
}

func loadImported(doc []byte) (*questions.Store, error) {
	if _, err := questions.ParseImport(doc); err != nil {
		return nil, err
	}
	return questions.LoadBytes(doc)
}

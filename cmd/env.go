package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/logging"
	"github.com/abhisek/quizdeck/internal/questions"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/store"
)

// env is what every command needs: resolved config, an open repo and a
// logger.
type env struct {
	cfg    config.Config
	repo   store.ProgressRepo
	dbPath string // empty for ephemeral runs
	logger *slog.Logger
	close  func() error
}

// loadConfig reads .env, then the environment, then applies any flags the
// user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed(flagDB) {
		cfg.DBPath, _ = flags.GetString(flagDB)
	}
	if flags.Changed(flagQuestions) {
		cfg.QuestionsPath, _ = flags.GetString(flagQuestions)
	}
	if flags.Changed(flagSeed) {
		cfg.Seed, _ = flags.GetUint64(flagSeed)
	}
	if flags.Changed(flagEphemeral) {
		cfg.Ephemeral, _ = flags.GetBool(flagEphemeral)
	}
	if flags.Changed(flagLogLevel) {
		s, _ := flags.GetString(flagLogLevel)
		lvl, err := config.ParseLevel(s)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = lvl
	}
	if v, _ := flags.GetBool(flagVerbose); v {
		cfg.LogLevel = slog.LevelDebug
	}
	return cfg, nil
}

// openEnv resolves config and opens the store. CLI commands log to stderr.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	e := &env{
		cfg:    cfg,
		logger: logging.New(cmd.ErrOrStderr(), cfg.LogLevel),
		close:  func() error { return nil },
	}

	if cfg.Ephemeral {
		e.repo = store.NewMemory().ProgressRepo()
		return e, nil
	}

	e.dbPath, err = cfg.ResolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(e.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.repo = st.ProgressRepo()
	e.close = st.Close
	e.logger.Debug("opened store", slog.String("path", e.dbPath))
	return e, nil
}

func (e *env) loadDeck(ctx context.Context) (*questions.Store, error) {
	qs, src, err := session.LoadDeck(ctx, e.repo, e.cfg.QuestionsPath, e.logger)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	e.logger.Debug("loaded deck", slog.String("source", string(src)), slog.Int("questions", qs.Len()))
	return qs, nil
}

// newEngine loads the deck and builds an engine over it. The engine is not
// started.
func (e *env) newEngine(ctx context.Context) (*session.Engine, error) {
	qs, err := e.loadDeck(ctx)
	if err != nil {
		return nil, err
	}
	opts := []session.Option{session.WithLogger(e.logger)}
	if e.cfg.Seed != 0 {
		opts = append(opts, session.WithSeed(e.cfg.Seed))
	}
	return session.NewEngine(qs, e.repo, opts...), nil
}

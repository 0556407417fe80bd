package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/analytics"
	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/logging"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	// The TUI owns the terminal, so from here on logs go to a file.
	logger, closeLog, err := logging.File(e.cfg.ResolveLogFile(e.dbPath), e.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()
	e.logger = logger

	engine, err := e.newEngine(ctx)
	if err != nil {
		return err
	}
	if err := engine.StartOrResume(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	logger.Info("starting tui",
		slog.String("session_id", engine.State().SessionID),
		slog.Int("questions", engine.Questions().Len()),
		slog.Bool("ephemeral", e.cfg.Ephemeral))

	return app.Run(ctx, app.Options{
		Engine:     engine,
		Repo:       e.repo,
		Aggregator: analytics.NewAggregator(e.repo),
		Logger:     logger,
		Splash:     !noSplash,
	})
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/store"
)

func newResetCmd() *cobra.Command {
	var yes, all bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase the session, favorites, missed questions and history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if !yes {
				prompt := "Reset all progress? [y/N] "
				if all {
					prompt = "Reset all progress, the theme and any imported deck? [y/N] "
				}
				fmt.Fprint(out, prompt)
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if all {
				clearEverything(ctx, e.repo, e.logger)
				fmt.Fprintln(out, "Everything erased.")
				return nil
			}

			engine, err := e.newEngine(ctx)
			if err != nil {
				return err
			}
			if err := engine.ResetAllProgress(ctx, true); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			fmt.Fprintln(out, "Progress erased.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&all, "all", false, "Also forget the theme and any imported deck")
	return cmd
}

// clearEverything drops every persisted key and the history. A failed
// clear is logged; the reset still counts as done.
func clearEverything(ctx context.Context, repo store.ProgressRepo, logger *slog.Logger) {
	if err := repo.ClearAll(ctx); err != nil {
		logger.Warn("clear all failed", slog.Any("err", err))
		return
	}
	logger.Info("all data cleared")
}

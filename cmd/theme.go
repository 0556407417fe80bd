package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/store"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(store.ThemeLight), string(store.ThemeDark), "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			current, err := e.repo.Theme(ctx)
			if err != nil {
				return fmt.Errorf("read theme: %w", err)
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			}

			next := store.Theme(args[0])
			if args[0] == "toggle" {
				next = current.Toggle()
			}
			if err := e.repo.SetTheme(ctx, next); err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

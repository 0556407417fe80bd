package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/analytics"
)

func newStatsCmd() *cobra.Command {
	var top int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show answer accuracy and the most missed questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			report, err := analytics.NewAggregator(e.repo).Report(ctx, top)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprintln(out, report.Summary.String())
			if len(report.TopMissed) == 0 {
				return nil
			}

			qs, err := e.loadDeck(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Most missed:")
			for _, bar := range analytics.BarChart(report.TopMissed, 30, analytics.DefaultBarScale) {
				label := bar.Label
				if q, err := qs.ByID(bar.Label); err == nil {
					label = q.Question
				}
				fmt.Fprintf(out, "  %-30s %3d %s\n", truncate(label, 30), bar.Count, strings.Repeat("#", bar.Width))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", analytics.DefaultTopMissed, "Number of missed questions to list (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package cmd

import (
	"github.com/spf13/cobra"
)

// Persistent flag names.
const (
	flagDB        = "db"
	flagQuestions = "questions"
	flagSeed      = "seed"
	flagEphemeral = "ephemeral"
	flagLogLevel  = "log-level"
	flagVerbose   = "verbose"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quizdeck",
		Short: "Multiple-choice flashcards in the terminal",
		Long: "QuizDeck is a local-first flashcard and quiz app. It shuffles a question deck, " +
			"keeps score, and remembers favorites, missed questions and answer history.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	root.Flags().Bool("no-splash", false, "Skip the welcome animation")

	pf := root.PersistentFlags()
	pf.String(flagDB, "", "Path to SQLite database file (overrides QUIZDECK_DB)")
	pf.String(flagQuestions, "", "Load questions from this JSON file instead of the saved or built-in deck")
	pf.Uint64(flagSeed, 0, "Shuffle seed for reproducible order (0 = random)")
	pf.Bool(flagEphemeral, false, "Keep progress in memory for this run only")
	pf.String(flagLogLevel, "", "Log level: debug, info, warn or error")
	pf.BoolP(flagVerbose, "v", false, "Shorthand for --log-level=debug")

	root.AddCommand(
		newStatsCmd(),
		newExportCmd(),
		newImportCmd(),
		newQuestionsCmd(),
		newResetCmd(),
		newThemeCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// Package cmd wires the CLI. The bare `hoctot` command launches the
// TUI; subcommands cover scripted use and maintenance.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/minhvu/hoctot/internal/store"
)

// defaultUserID identifies the single local learner profile.
const defaultUserID = "default"

var rootCmd = &cobra.Command{
	Use:   "hoctot",
	Short: "AI study companion for Vietnamese secondary-school students",
	Long:  "Học Tốt — terminal app that helps học sinh THCS (grades 6-9) practice with AI-generated quizzes, flashcards and tutoring.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// A .env next to the binary is a convenience for development;
	// missing files are fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides HOCTOT_DB env var)")
	rootCmd.PersistentFlags().String("grade", "", "Grade, e.g. \"Lớp 6\" (defaults to the saved profile)")
	rootCmd.PersistentFlags().String("subject", "", "Subject, e.g. \"Toán\" (defaults to the saved profile)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(flashcardsCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then HOCTOT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the SQLite store for a subcommand.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}

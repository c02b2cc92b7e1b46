package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/store"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Manage the 4-week learning path",
}

var pathGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new learning path, replacing any existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		grade, subject, err := loadProfile(cmd, st)
		if err != nil {
			return err
		}

		ctx := context.Background()
		provider, _, err := buildProvider(ctx, st)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		generator := quizgen.New(provider, quizgen.DefaultConfig())

		path, err := generator.GeneratePath(ctx, grade, subject)
		if err != nil {
			return err
		}

		records := make([]store.WeekPlanRecord, len(path.Weeks))
		for i, w := range path.Weeks {
			records[i] = store.WeekPlanRecord{
				Week:      w.Week,
				Title:     w.Title,
				Topics:    w.Topics,
				Objective: w.Objective,
			}
		}
		if err := st.Paths().Save(ctx, defaultUserID, grade, subject, records); err != nil {
			return fmt.Errorf("save learning path: %w", err)
		}

		printWeeks(grade, subject, records)
		return nil
	},
}

var pathShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored learning path",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		grade, subject, err := loadProfile(cmd, st)
		if err != nil {
			return err
		}

		weeks, err := st.Paths().Load(context.Background(), defaultUserID, grade, subject)
		if err != nil {
			return fmt.Errorf("load learning path: %w", err)
		}
		if len(weeks) == 0 {
			fmt.Println("No learning path yet. Run: hoctot path generate")
			return nil
		}
		printWeeks(grade, subject, weeks)
		return nil
	},
}

var pathDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the stored learning path",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		grade, subject, err := loadProfile(cmd, st)
		if err != nil {
			return err
		}

		if err := st.Paths().Delete(context.Background(), defaultUserID, grade, subject); err != nil {
			return fmt.Errorf("delete learning path: %w", err)
		}
		fmt.Println("Learning path deleted.")
		return nil
	},
}

func printWeeks(grade, subject string, weeks []store.WeekPlanRecord) {
	fmt.Printf("Lộ trình 4 tuần · %s · %s\n\n", grade, subject)
	for _, w := range weeks {
		fmt.Printf("Tuần %d: %s\n", w.Week, w.Title)
		fmt.Printf("  Chủ đề: %s\n", strings.Join(w.Topics, ", "))
		fmt.Printf("  Mục tiêu: %s\n\n", w.Objective)
	}
}

func init() {
	pathCmd.AddCommand(pathGenerateCmd)
	pathCmd.AddCommand(pathShowCmd)
	pathCmd.AddCommand(pathDeleteCmd)
}

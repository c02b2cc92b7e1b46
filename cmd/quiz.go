package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minhvu/hoctot/internal/progression"
	"github.com/minhvu/hoctot/internal/quizgen"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz without the TUI",
	Long:  "Generates a quiz for a topic and prints it as a worksheet (or JSON), without starting an interactive attempt.",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		asJSON, _ := cmd.Flags().GetBool("json")
		typesFlag, _ := cmd.Flags().GetString("types")

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

		req := quizgen.Request{
			Topic:      topic,
			Grade:      grade,
			Subject:    subject,
			Difficulty: difficulty,
			Count:      count,
		}
		for _, t := range strings.Split(typesFlag, ",") {
			if t = strings.TrimSpace(t); t != "" {
				req.AllowedTypes = append(req.AllowedTypes, quizgen.QuestionType(t))
			}
		}

		questions, err := generator.Generate(ctx, req)
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(questions)
		}

		fmt.Printf("%s · %s · %s · %s\n\n", topic, grade, subject, difficulty)
		for _, q := range questions {
			fmt.Printf("%d. %s\n", q.ID, q.Prompt)
			if q.Type == quizgen.TypeMultipleChoice {
				for i, opt := range q.Options {
					fmt.Printf("   %c) %s\n", 'A'+i, opt)
				}
			}
			fmt.Printf("   Đáp án: %s\n", q.CorrectDisplay())
			if q.Explanation != "" {
				fmt.Printf("   Giải thích: %s\n", q.Explanation)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	quizCmd.Flags().StringP("topic", "t", "", "Topic to generate questions for (required)")
	quizCmd.Flags().IntP("count", "n", 10, "Number of questions (1-20)")
	quizCmd.Flags().StringP("difficulty", "d", string(progression.DifficultyEasy), "Difficulty (Dễ, Trung bình, Khó)")
	quizCmd.Flags().String("types", "", "Comma-separated question types (multiple-choice, true-false, fill-in-blank)")
	quizCmd.Flags().Bool("json", false, "Print questions as JSON")
	_ = quizCmd.MarkFlagRequired("topic")
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		grade, subject, err := loadProfile(cmd, st)
		if err != nil {
			return err
		}

		entries, err := st.History().List(context.Background(), defaultUserID, grade, subject, limit)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No attempts recorded yet.")
			return nil
		}

		fmt.Printf("%-16s  %5s  %-10s  %s\n", "Date", "Score", "Difficulty", "Topic")
		fmt.Println(strings.Repeat("─", 72))
		for _, e := range entries {
			fmt.Printf("%-16s  %5d  %-10s  %s\n",
				e.Date.Local().Format("02/01/2006 15:04"), e.Score, e.Difficulty, e.Topic)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minhvu/hoctot/internal/credential"
	"github.com/minhvu/hoctot/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the AI provider configuration and usage",
}

var llmStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured provider and credential state",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()

		cfg := llm.ConfigFromEnv()
		if cfg.Validate() != nil {
			if discovered, ok := llm.DiscoverConfig(); ok {
				cfg = discovered
			}
		}

		creds := credential.Load(ctx, st.KV(), defaultUserID)
		credState := "missing"
		switch creds.State() {
		case credential.StatePresent:
			credState = "present"
		case credential.StateInvalid:
			credState = "invalid (cleared, re-entry required)"
		}

		fmt.Printf("Provider:    %s\n", cfg.Provider)
		fmt.Printf("Model:       %s\n", configuredModel(cfg))
		fmt.Printf("Credential:  %s\n", credState)

		if err := cfg.Validate(); err != nil && creds.Key() == "" {
			fmt.Printf("\nNot usable: %v\n", err)
		}
		return nil
	},
}

var llmSetKeyCmd = &cobra.Command{
	Use:   "set-key <api-key>",
	Short: "Store a Gemini API key for when no environment key is set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		creds := credential.Load(ctx, st.KV(), defaultUserID)
		if err := creds.Set(ctx, args[0]); err != nil {
			return fmt.Errorf("save API key: %w", err)
		}
		fmt.Println("Đã lưu API key.")
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated AI request usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		events := st.LLMEvents()

		summary, err := events.Summary(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if summary.Requests == 0 {
			fmt.Println("No AI usage recorded yet.")
			return nil
		}

		usage, err := events.UsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage by purpose: %w", err)
		}

		fmt.Println("Usage by Purpose")
		fmt.Println(strings.Repeat("─", 68))
		fmt.Printf("%-16s  %6s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Avg Ms")
		fmt.Println(strings.Repeat("─", 68))
		for _, u := range usage {
			fmt.Printf("%-16s  %6d  %10d  %10d  %8d\n",
				u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		}
		fmt.Println(strings.Repeat("─", 68))
		fmt.Printf("%-16s  %6d  %10d  %10d   (%d failed)\n",
			"TOTAL", summary.Requests, summary.InputTokens, summary.OutputTokens, summary.Failures)
		return nil
	},
}

func configuredModel(cfg llm.Config) string {
	switch cfg.Provider {
	case "openai":
		return cfg.OpenAI.Model
	case "anthropic":
		return cfg.Anthropic.Model
	default:
		return cfg.Gemini.Model
	}
}

func init() {
	llmCmd.AddCommand(llmStatusCmd)
	llmCmd.AddCommand(llmSetKeyCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

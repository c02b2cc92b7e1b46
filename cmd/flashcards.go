package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/minhvu/hoctot/internal/extract"
	"github.com/minhvu/hoctot/internal/flashcards"
	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/store"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Manage the flashcard deck",
}

var flashcardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cards in the deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, _, _, st, err := loadDeck(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if len(deck.Cards) == 0 {
			fmt.Println("The deck is empty.")
			return nil
		}
		for i, c := range deck.Cards {
			fmt.Printf("%3d. [%-12s] %s — %s\n", i+1, c.Status, c.Front, c.Back)
		}
		return nil
	},
}

var flashcardsExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the deck to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deck, _, _, st, err := loadDeck(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		data, err := deck.Export()
		if err != nil {
			return fmt.Errorf("export deck: %w", err)
		}
		if err := os.WriteFile(args[0], data, 0o644); err != nil {
			return fmt.Errorf("write file: %w", err)
		}
		fmt.Printf("Exported %d cards to %s\n", len(deck.Cards), args[0])
		return nil
	},
}

var flashcardsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a deck from a JSON file, replacing the current one",
	Long:  "Imports ordered front/back pairs. Learning statuses reset to \"new\"; they reflect the learner, not the deck.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		deck, err := flashcards.Import(data)
		if err != nil {
			return fmt.Errorf("import deck: %w", err)
		}

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
		if err := st.Decks().Save(ctx, defaultUserID, grade, subject, deck.ToRecords()); err != nil {
			return fmt.Errorf("save deck: %w", err)
		}
		fmt.Printf("Imported %d cards.\n", len(deck.Cards))
		return nil
	},
}

var flashcardsMoveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a card to another position in the deck",
	Long:  "Positions are 1-based as shown by \"flashcards list\".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("from position %q is not a number", args[0])
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("to position %q is not a number", args[1])
		}

		deck, grade, subject, st, err := loadDeck(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := deck.Reorder(from-1, to-1); err != nil {
			return err
		}
		if err := st.Decks().Save(context.Background(), defaultUserID, grade, subject, deck.ToRecords()); err != nil {
			return fmt.Errorf("save deck: %w", err)
		}
		fmt.Printf("Moved card %d to position %d.\n", from, to)
		return nil
	},
}

var flashcardsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new cards for a topic and add them to the deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")

		deck, grade, subject, st, err := loadDeck(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		provider, _, err := buildProvider(ctx, st)
		if err != nil {
			return err
		}
		generator := quizgen.New(provider, quizgen.DefaultConfig())

		pairs, err := generator.GenerateCards(ctx, quizgen.CardRequest{
			Grade:   grade,
			Subject: subject,
			Topic:   topic,
			Count:   count,
		})
		if err != nil {
			return err
		}

		return appendCards(ctx, st, deck, grade, subject, pairs)
	},
}

var flashcardsFromDocCmd = &cobra.Command{
	Use:   "from-doc <file>",
	Short: "Generate cards from a PDF or image and add them to the deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}

		deck, grade, subject, st, err := loadDeck(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		provider, _, err := buildProvider(ctx, st)
		if err != nil {
			return err
		}
		extractor := textExtractor(provider)
		if extractor == nil {
			return fmt.Errorf("the configured provider cannot read documents")
		}

		text, err := extract.NewService(extractor).Extract(ctx, data, extract.MIMETypeFor(args[0]))
		if err != nil {
			return err
		}

		generator := quizgen.New(provider, quizgen.DefaultConfig())
		pairs, err := generator.GenerateCards(ctx, quizgen.CardRequest{
			Grade:      grade,
			Subject:    subject,
			SourceText: text,
			Count:      count,
		})
		if err != nil {
			return err
		}

		return appendCards(ctx, st, deck, grade, subject, pairs)
	},
}

// appendCards adds generated pairs to the deck as new cards and saves.
func appendCards(ctx context.Context, st *store.Store, deck *flashcards.Deck, grade, subject string, pairs []quizgen.CardPair) error {
	for _, p := range pairs {
		deck.Cards = append(deck.Cards, flashcards.Card{
			Front:  p.Front,
			Back:   p.Back,
			Status: flashcards.StatusNew,
		})
	}
	if err := st.Decks().Save(ctx, defaultUserID, grade, subject, deck.ToRecords()); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	fmt.Printf("Added %d cards. The deck now has %d.\n", len(pairs), len(deck.Cards))
	return nil
}

// loadDeck opens the store and loads the current deck.
func loadDeck(cmd *cobra.Command) (*flashcards.Deck, string, string, *store.Store, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, "", "", nil, fmt.Errorf("open store: %w", err)
	}

	grade, subject, err := loadProfile(cmd, st)
	if err != nil {
		st.Close()
		return nil, "", "", nil, err
	}

	records, err := st.Decks().Load(context.Background(), defaultUserID, grade, subject)
	if err != nil {
		st.Close()
		return nil, "", "", nil, fmt.Errorf("load deck: %w", err)
	}
	return flashcards.FromRecords(records), grade, subject, st, nil
}

func init() {
	flashcardsCmd.AddCommand(flashcardsListCmd)
	flashcardsCmd.AddCommand(flashcardsExportCmd)
	flashcardsCmd.AddCommand(flashcardsImportCmd)
	flashcardsCmd.AddCommand(flashcardsMoveCmd)

	flashcardsGenerateCmd.Flags().String("topic", "", "topic to make cards for")
	flashcardsGenerateCmd.Flags().Int("count", 10, "number of cards to generate")
	_ = flashcardsGenerateCmd.MarkFlagRequired("topic")
	flashcardsCmd.AddCommand(flashcardsGenerateCmd)

	flashcardsFromDocCmd.Flags().Int("count", 10, "number of cards to generate")
	flashcardsCmd.AddCommand(flashcardsFromDocCmd)
}

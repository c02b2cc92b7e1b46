package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/minhvu/hoctot/internal/llm"
)

// MaxCardCount caps a single card generation request.
const MaxCardCount = 50

// CardRequest describes a flashcard generation call. Either Topic or
// SourceText must be set; when SourceText is present the cards are
// drawn from it instead of general curriculum knowledge.
type CardRequest struct {
	Grade      string
	Subject    string
	Topic      string
	SourceText string
	Count      int
}

// CardPair is one generated front/back pair.
type CardPair struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// CardsSchema defines the JSON schema for flashcard generation responses.
var CardsSchema = &llm.Schema{
	Name:        "flashcards",
	Description: "A set of study flashcards with fronts and backs",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"front": map[string]any{
							"type":        "string",
							"description": "The prompt side of the card, in Vietnamese",
						},
						"back": map[string]any{
							"type":        "string",
							"description": "The answer side of the card, in Vietnamese",
						},
					},
					"required":             []any{"front", "back"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}

const cardsSystemPrompt = `You are a friendly tutor making study flashcards for Vietnamese secondary-school students (lớp 6 đến lớp 9).

Rules:
- Write fronts and backs in Vietnamese, matching the school curriculum for the given grade and subject.
- Generate at most the requested number of cards, never more.
- Each front is one term, formula or short question; each back is the matching definition, value or answer.
- Keep backs short enough to recall from memory, two sentences at most.
- When source material is provided, take every card from that material and nothing else.`

func buildCardsUserMessage(req CardRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Grade: %s\n", req.Grade)
	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	if req.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	}
	fmt.Fprintf(&b, "Number of cards: %d\n", req.Count)
	if req.SourceText != "" {
		fmt.Fprintf(&b, "\nSource material:\n%s\n", req.SourceText)
	}

	return b.String()
}

type cardsOutput struct {
	Cards []CardPair `json:"cards"`
}

// GenerateCards produces flashcard pairs for the request.
func (g *LLMGenerator) GenerateCards(ctx context.Context, req CardRequest) ([]CardPair, error) {
	if req.Topic == "" && req.SourceText == "" {
		return nil, &ErrBadRequest{Reason: "neither topic nor source text given"}
	}
	if req.Count < 1 || req.Count > MaxCardCount {
		return nil, &ErrBadRequest{Reason: fmt.Sprintf("card count %d outside 1..%d", req.Count, MaxCardCount)}
	}

	ctx = llm.WithPurpose(ctx, "card-gen")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      cardsSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildCardsUserMessage(req)}},
		Schema:      CardsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &ErrGeneration{Reason: "upstream call failed", Err: err}
	}

	var raw cardsOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &ErrGeneration{Reason: "unparseable response", Err: err}
	}
	if len(raw.Cards) == 0 {
		return nil, &ErrGeneration{Reason: "response contained zero cards"}
	}
	if len(raw.Cards) > req.Count {
		return nil, &ErrGeneration{Reason: fmt.Sprintf("response contained %d cards, requested %d", len(raw.Cards), req.Count)}
	}
	for i, c := range raw.Cards {
		if strings.TrimSpace(c.Front) == "" || strings.TrimSpace(c.Back) == "" {
			return nil, &ErrGeneration{Reason: fmt.Sprintf("card %d has an empty side", i+1)}
		}
	}

	return raw.Cards, nil
}

package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minhvu/hoctot/internal/llm"
)

type pathOutput struct {
	Weeks []weekOutput `json:"weeks"`
}

type weekOutput struct {
	Week      int      `json:"week"`
	Title     string   `json:"title"`
	Topics    []string `json:"topics"`
	Objective string   `json:"objective"`
}

// GeneratePath produces a learning path of exactly PathWeeks weeks for
// the grade and subject.
func (g *LLMGenerator) GeneratePath(ctx context.Context, grade, subject string) (*LearningPath, error) {
	ctx = llm.WithPurpose(ctx, "learning-path")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      pathSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildPathUserMessage(grade, subject)}},
		Schema:      PathSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &ErrGeneration{Reason: "upstream call failed", Err: err}
	}

	var raw pathOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &ErrGeneration{Reason: "unparseable response", Err: err}
	}

	if len(raw.Weeks) != PathWeeks {
		return nil, &ErrGeneration{Reason: fmt.Sprintf("response contained %d weeks, need exactly %d", len(raw.Weeks), PathWeeks)}
	}

	path := &LearningPath{Grade: grade, Subject: subject}
	for i, w := range raw.Weeks {
		if w.Title == "" || len(w.Topics) == 0 {
			return nil, &ErrGeneration{Reason: fmt.Sprintf("week %d incomplete", i+1)}
		}
		path.Weeks = append(path.Weeks, WeekPlan{
			Week:      i + 1,
			Title:     w.Title,
			Topics:    w.Topics,
			Objective: w.Objective,
		})
	}
	return path, nil
}

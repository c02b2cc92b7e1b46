package quizgen

import (
	"context"
	"encoding/json"

	"github.com/minhvu/hoctot/internal/llm"
)

// PerfectFeedback is returned for a flawless attempt without calling
// the generative service: the result is deterministic and free.
var PerfectFeedback = TutorFeedback{
	Title:   "Xuất sắc!",
	Content: "Em đã trả lời đúng tất cả các câu hỏi. Hãy thử độ khó cao hơn để tiếp tục tiến bộ nhé!",
}

// Feedback produces tutor feedback for a completed attempt.
func (g *LLMGenerator) Feedback(ctx context.Context, summary AttemptSummary) (*TutorFeedback, error) {
	if summary.Score >= 100 && len(summary.WrongAnswers) == 0 {
		perfect := PerfectFeedback
		return &perfect, nil
	}

	ctx = llm.WithPurpose(ctx, "feedback")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      feedbackSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildFeedbackUserMessage(summary)}},
		Schema:      FeedbackSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &ErrGeneration{Reason: "upstream call failed", Err: err}
	}

	var out struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ErrGeneration{Reason: "unparseable response", Err: err}
	}

	return &TutorFeedback{Title: out.Title, Content: out.Content}, nil
}

package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minhvu/hoctot/internal/llm"
)

// Generator produces quiz content using the generative-AI service.
type Generator interface {
	// Generate produces validated questions for the request, or fails
	// with *ErrGeneration. It never retries on its own and performs no
	// local state mutation.
	Generate(ctx context.Context, req Request) ([]Question, error)

	// GeneratePath produces a learning path of exactly PathWeeks weeks.
	GeneratePath(ctx context.Context, grade, subject string) (*LearningPath, error)

	// Feedback produces tutor feedback for a completed attempt. A
	// perfect attempt (maximal score, no wrong answers) returns a fixed
	// celebratory message without calling the service.
	Feedback(ctx context.Context, summary AttemptSummary) (*TutorFeedback, error)
}

// Config controls the LLM-backed generator.
type Config struct {
	// MaxTokens is the response token budget per call.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended generator configuration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// LLMGenerator implements Generator on top of an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates an LLMGenerator.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// quizOutput is the raw response shape before normalization.
type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Type         string   `json:"type"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	CorrectBool  bool     `json:"correct_bool"`
	CorrectText  string   `json:"correct_text"`
	Explanation  string   `json:"explanation"`
}

// Generate produces validated questions for the request.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) ([]Question, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      quizSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildQuizUserMessage(req)}},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &ErrGeneration{Reason: "upstream call failed", Err: err}
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &ErrGeneration{Reason: "unparseable response", Err: err}
	}

	return normalizeQuestions(raw.Questions, req)
}

func validateRequest(req Request) error {
	if req.Topic == "" {
		return &ErrBadRequest{Reason: "topic is empty"}
	}
	if req.Count < 1 || req.Count > MaxQuestionCount {
		return &ErrBadRequest{Reason: fmt.Sprintf("question count %d outside 1..%d", req.Count, MaxQuestionCount)}
	}
	for _, t := range req.AllowedTypes {
		if !KnownType(t) {
			return &ErrBadRequest{Reason: fmt.Sprintf("unknown question type %q", t)}
		}
	}
	return nil
}

// normalizeQuestions converts raw entries into Questions, failing hard
// on any schema violation. No entry is ever repaired into a default.
func normalizeQuestions(raw []questionOutput, req Request) ([]Question, error) {
	if len(raw) == 0 {
		return nil, &ErrGeneration{Reason: "response contained zero questions"}
	}
	if len(raw) > req.Count {
		return nil, &ErrGeneration{Reason: fmt.Sprintf("response contained %d questions, requested %d", len(raw), req.Count)}
	}

	questions := make([]Question, 0, len(raw))
	for i, entry := range raw {
		q, err := normalizeQuestion(entry, req)
		if err != nil {
			return nil, &ErrGeneration{Reason: fmt.Sprintf("question %d invalid", i+1), Err: err}
		}
		q.ID = i + 1
		questions = append(questions, q)
	}
	return questions, nil
}

func normalizeQuestion(entry questionOutput, req Request) (Question, error) {
	t := QuestionType(entry.Type)
	if !KnownType(t) {
		return Question{}, fmt.Errorf("unknown type %q", entry.Type)
	}
	if !req.allows(t) {
		return Question{}, fmt.Errorf("type %q not in allowed set", entry.Type)
	}
	if entry.Prompt == "" {
		return Question{}, fmt.Errorf("empty prompt")
	}

	q := Question{
		Type:        t,
		Prompt:      entry.Prompt,
		Explanation: entry.Explanation,
	}

	switch t {
	case TypeMultipleChoice:
		if len(entry.Options) < 2 {
			return Question{}, fmt.Errorf("%d options, need at least 2", len(entry.Options))
		}
		if entry.CorrectIndex < 0 || entry.CorrectIndex >= len(entry.Options) {
			return Question{}, fmt.Errorf("correct index %d outside options", entry.CorrectIndex)
		}
		q.Options = entry.Options
		q.CorrectIndex = entry.CorrectIndex
	case TypeTrueFalse:
		q.CorrectBool = entry.CorrectBool
	case TypeFillInBlank:
		if entry.CorrectText == "" {
			return Question{}, fmt.Errorf("empty expected answer")
		}
		q.CorrectText = entry.CorrectText
	}

	return q, nil
}

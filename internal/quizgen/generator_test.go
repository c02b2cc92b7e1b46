package quizgen

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/minhvu/hoctot/internal/llm"
)

func validRequest() Request {
	return Request{
		Topic:      "Phân số",
		Grade:      "Lớp 6",
		Subject:    "Toán",
		Difficulty: "Dễ",
		Count:      2,
	}
}

func quizJSON(questions string) json.RawMessage {
	return json.RawMessage(`{"questions": [` + questions + `]}`)
}

const validMC = `{"type": "multiple-choice", "prompt": "2+2?", "options": ["3", "4", "5", "6"], "correct_index": 1, "correct_bool": false, "correct_text": "", "explanation": "2+2=4"}`
const validTF = `{"type": "true-false", "prompt": "1/2 > 1/3", "options": [], "correct_index": 0, "correct_bool": true, "correct_text": "", "explanation": "so sánh phân số"}`

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(validMC + "," + validTF)})
	gen := New(mock, DefaultConfig())

	questions, err := gen.Generate(t.Context(), validRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].ID != 1 || questions[1].ID != 2 {
		t.Error("question IDs should number from 1")
	}
	if questions[0].Type != TypeMultipleChoice || questions[0].CorrectIndex != 1 {
		t.Errorf("first question: %+v", questions[0])
	}
	if questions[1].Type != TypeTrueFalse || !questions[1].CorrectBool {
		t.Errorf("second question: %+v", questions[1])
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 LLM call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "quiz-questions" {
		t.Error("expected schema name 'quiz-questions'")
	}
}

func TestGenerate_RequestValidation(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Request)
	}{
		{"empty topic", func(r *Request) { r.Topic = "" }},
		{"zero count", func(r *Request) { r.Count = 0 }},
		{"count above max", func(r *Request) { r.Count = MaxQuestionCount + 1 }},
		{"unknown allowed type", func(r *Request) { r.AllowedTypes = []QuestionType{"essay"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider()
			gen := New(mock, DefaultConfig())

			req := validRequest()
			tt.mut(&req)

			_, err := gen.Generate(t.Context(), req)
			var bad *ErrBadRequest
			if !errors.As(err, &bad) {
				t.Fatalf("expected *ErrBadRequest, got %v", err)
			}
			if mock.CallCount() != 0 {
				t.Error("invalid request should not reach the provider")
			}
		})
	}
}

func TestGenerate_MalformedResponses(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `oops`},
		{"zero questions", `{"questions": []}`},
		{"unknown type", `{"questions": [{"type": "matching", "prompt": "x", "options": [], "correct_index": 0, "correct_bool": false, "correct_text": "", "explanation": ""}]}`},
		{"empty prompt", `{"questions": [{"type": "true-false", "prompt": "", "options": [], "correct_index": 0, "correct_bool": true, "correct_text": "", "explanation": ""}]}`},
		{"mc with one option", `{"questions": [{"type": "multiple-choice", "prompt": "x?", "options": ["a"], "correct_index": 0, "correct_bool": false, "correct_text": "", "explanation": ""}]}`},
		{"mc index outside options", `{"questions": [{"type": "multiple-choice", "prompt": "x?", "options": ["a", "b"], "correct_index": 5, "correct_bool": false, "correct_text": "", "explanation": ""}]}`},
		{"fill-in without answer", `{"questions": [{"type": "fill-in-blank", "prompt": "x = ___", "options": [], "correct_index": 0, "correct_bool": false, "correct_text": "", "explanation": ""}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			gen := New(mock, DefaultConfig())

			_, err := gen.Generate(t.Context(), validRequest())
			var genErr *ErrGeneration
			if !errors.As(err, &genErr) {
				t.Fatalf("expected *ErrGeneration, got %v", err)
			}
		})
	}
}

func TestGenerate_MoreQuestionsThanRequested(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(validTF + "," + validTF + "," + validTF)})
	gen := New(mock, DefaultConfig())

	req := validRequest()
	req.Count = 2
	_, err := gen.Generate(t.Context(), req)
	var genErr *ErrGeneration
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *ErrGeneration for count overrun, got %v", err)
	}
}

func TestGenerate_FewerQuestionsAccepted(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(validTF)})
	gen := New(mock, DefaultConfig())

	req := validRequest()
	req.Count = 5
	questions, err := gen.Generate(t.Context(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(questions) != 1 {
		t.Errorf("got %d questions, want 1", len(questions))
	}
}

func TestGenerate_DisallowedTypeFails(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(validMC)})
	gen := New(mock, DefaultConfig())

	req := validRequest()
	req.Count = 1
	req.AllowedTypes = []QuestionType{TypeTrueFalse}

	_, err := gen.Generate(t.Context(), req)
	var genErr *ErrGeneration
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *ErrGeneration for a disallowed type, got %v", err)
	}
}

func TestGenerate_UpstreamErrorWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(t.Context(), validRequest())
	var genErr *ErrGeneration
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *ErrGeneration, got %v", err)
	}
	var unavailable *llm.ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Error("upstream error should remain reachable through Unwrap")
	}
}

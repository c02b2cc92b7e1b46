package quizgen

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/minhvu/hoctot/internal/llm"
)

const validPathJSON = `{"weeks": [
	{"week": 1, "title": "Số tự nhiên", "topics": ["tập hợp", "phép cộng"], "objective": "Thành thạo phép tính cơ bản"},
	{"week": 2, "title": "Phân số", "topics": ["rút gọn", "quy đồng"], "objective": "So sánh được phân số"},
	{"week": 3, "title": "Số thập phân", "topics": ["đọc viết", "làm tròn"], "objective": "Làm tròn đúng quy tắc"},
	{"week": 4, "title": "Ôn tập", "topics": ["tổng hợp"], "objective": "Hoàn thành đề ôn tập"}
]}`

func TestGeneratePath_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validPathJSON)})
	gen := New(mock, DefaultConfig())

	path, err := gen.GeneratePath(t.Context(), "Lớp 6", "Toán")
	if err != nil {
		t.Fatal(err)
	}
	if path.Grade != "Lớp 6" || path.Subject != "Toán" {
		t.Errorf("path header: %+v", path)
	}
	if len(path.Weeks) != PathWeeks {
		t.Fatalf("got %d weeks, want %d", len(path.Weeks), PathWeeks)
	}
	for i, w := range path.Weeks {
		if w.Week != i+1 {
			t.Errorf("week %d numbered %d", i+1, w.Week)
		}
		if w.Title == "" || len(w.Topics) == 0 {
			t.Errorf("week %d incomplete: %+v", i+1, w)
		}
	}

	if mock.Calls[0].Schema == nil || mock.Calls[0].Schema.Name != "learning-path" {
		t.Error("expected schema name 'learning-path'")
	}
}

func TestGeneratePath_WrongWeekCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"weeks": [{"week": 1, "title": "a", "topics": ["x"], "objective": "y"}]}`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.GeneratePath(t.Context(), "Lớp 6", "Toán")
	var genErr *ErrGeneration
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *ErrGeneration, got %v", err)
	}
}

func TestGeneratePath_IncompleteWeek(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"weeks": [
		{"week": 1, "title": "a", "topics": ["x"], "objective": "y"},
		{"week": 2, "title": "", "topics": ["x"], "objective": "y"},
		{"week": 3, "title": "c", "topics": ["x"], "objective": "y"},
		{"week": 4, "title": "d", "topics": ["x"], "objective": "y"}
	]}`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.GeneratePath(t.Context(), "Lớp 6", "Toán")
	var genErr *ErrGeneration
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *ErrGeneration, got %v", err)
	}
}

func TestGeneratePath_RenumbersWeeks(t *testing.T) {
	// The model's own numbering is ignored; position wins.
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"weeks": [
		{"week": 4, "title": "a", "topics": ["x"], "objective": "y"},
		{"week": 3, "title": "b", "topics": ["x"], "objective": "y"},
		{"week": 2, "title": "c", "topics": ["x"], "objective": "y"},
		{"week": 1, "title": "d", "topics": ["x"], "objective": "y"}
	]}`)})
	gen := New(mock, DefaultConfig())

	path, err := gen.GeneratePath(t.Context(), "Lớp 6", "Toán")
	if err != nil {
		t.Fatal(err)
	}
	for i, w := range path.Weeks {
		if w.Week != i+1 {
			t.Errorf("week at position %d numbered %d", i, w.Week)
		}
	}
}

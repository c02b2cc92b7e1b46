package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/minhvu/hoctot/internal/progression"
	"github.com/minhvu/hoctot/internal/quiz"
	"github.com/minhvu/hoctot/internal/quizgen"
	"github.com/minhvu/hoctot/internal/store"
)

// nopGenerator satisfies the generator interface for screens that
// never trigger a request during the test.
type nopGenerator struct{}

func (nopGenerator) Generate(ctx context.Context, req quizgen.Request) ([]quizgen.Question, error) {
	return nil, nil
}

func (nopGenerator) GeneratePath(ctx context.Context, grade, subject string) (*quizgen.LearningPath, error) {
	return nil, nil
}

func (nopGenerator) Feedback(ctx context.Context, summary quizgen.AttemptSummary) (*quizgen.TutorFeedback, error) {
	return nil, nil
}

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewFromQuestions_StartsInPlay(t *testing.T) {
	st := testStore(t)
	questions := []quizgen.Question{
		{ID: 1, Type: quizgen.TypeMultipleChoice, Prompt: "Thủ đô của Việt Nam?",
			Options: []string{"Hà Nội", "Huế", "Đà Nẵng", "Cần Thơ"}, CorrectIndex: 0},
		{ID: 2, Type: quizgen.TypeTrueFalse, Prompt: "1/2 > 1/3?", CorrectBool: true},
	}

	s, err := NewFromQuestions(nopGenerator{}, st, "default", "Lớp 6", "Toán",
		"Thẻ ghi nhớ", progression.DifficultyEasy, questions)
	if err != nil {
		t.Fatal(err)
	}

	if s.step != stepPlaying {
		t.Errorf("step = %d, want stepPlaying", s.step)
	}
	if s.attempt == nil || s.attempt.Phase != quiz.PhaseInProgress {
		t.Fatalf("attempt not in progress: %+v", s.attempt)
	}
	if s.attempt.Topic != "Thẻ ghi nhớ" {
		t.Errorf("topic = %q", s.attempt.Topic)
	}

	// Init must set up the first question instead of showing the topic
	// prompt; the first question is multiple choice.
	s.Init()
	if !s.mcActive {
		t.Error("mcActive = false after Init, want the choice widget active")
	}
}

func TestNewFromQuestions_EmptyQuestions(t *testing.T) {
	st := testStore(t)

	_, err := NewFromQuestions(nopGenerator{}, st, "default", "Lớp 6", "Toán",
		"Thẻ ghi nhớ", progression.DifficultyEasy, nil)
	if !errors.Is(err, quiz.ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

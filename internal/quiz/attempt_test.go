package quiz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minhvu/hoctot/internal/progression"
	"github.com/minhvu/hoctot/internal/quizgen"
)

func makeQuestions(n int) []quizgen.Question {
	qs := make([]quizgen.Question, n)
	for i := range qs {
		qs[i] = quizgen.Question{
			ID:          i + 1,
			Type:        quizgen.TypeTrueFalse,
			Prompt:      fmt.Sprintf("Câu %d", i+1),
			CorrectBool: true,
			Explanation: "vì vậy",
		}
	}
	return qs
}

func TestBegin_EmptyQuestions(t *testing.T) {
	_, err := Begin("Phân số", "Lớp 6", "Toán", progression.DifficultyEasy, nil)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestAttempt_FullCorrectScoresExactly100(t *testing.T) {
	for n := 1; n <= 20; n++ {
		a, err := Begin("Phân số", "Lớp 6", "Toán", progression.DifficultyEasy, makeQuestions(n))
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		for a.Phase == PhaseInProgress {
			correct, accepted := a.Submit(quizgen.Answer{Bool: true})
			if !accepted || !correct {
				t.Fatalf("n=%d: submit rejected or wrong at question %d", n, a.Current+1)
			}
			a.Advance()
		}
		if a.Phase != PhaseCompleted {
			t.Fatalf("n=%d: expected completed, got phase %d", n, a.Phase)
		}
		if a.Score != 100 {
			t.Errorf("n=%d: score = %d, want 100", n, a.Score)
		}
	}
}

func TestAttempt_AllWrongScoresZero(t *testing.T) {
	a, err := Begin("Phân số", "Lớp 6", "Toán", progression.DifficultyEasy, makeQuestions(7))
	if err != nil {
		t.Fatal(err)
	}
	for a.Phase == PhaseInProgress {
		correct, _ := a.Submit(quizgen.Answer{Bool: false})
		if correct {
			t.Fatal("wrong answer reported correct")
		}
		a.Advance()
	}
	if a.Score != 0 {
		t.Errorf("score = %d, want 0", a.Score)
	}
	if len(a.WrongAnswers()) != 7 {
		t.Errorf("wrong answers = %d, want 7", len(a.WrongAnswers()))
	}
}

func TestAttempt_SubmitIsIdempotentPerQuestion(t *testing.T) {
	a, err := Begin("Phân số", "Lớp 6", "Toán", progression.DifficultyEasy, makeQuestions(3))
	if err != nil {
		t.Fatal(err)
	}

	if _, accepted := a.Submit(quizgen.Answer{Bool: true}); !accepted {
		t.Fatal("first submit rejected")
	}
	score := a.Score

	// Same question again, in feedback phase.
	if _, accepted := a.Submit(quizgen.Answer{Bool: true}); accepted {
		t.Error("second submit accepted in feedback phase")
	}
	if a.Score != score {
		t.Errorf("score changed on repeat submit: %d -> %d", score, a.Score)
	}
}

func TestAttempt_PhaseTransitions(t *testing.T) {
	a, err := Begin("Phân số", "Lớp 6", "Toán", progression.DifficultyEasy, makeQuestions(2))
	if err != nil {
		t.Fatal(err)
	}
	if a.Phase != PhaseInProgress {
		t.Fatalf("begin phase = %d, want in-progress", a.Phase)
	}
	if a.CurrentQuestion() == nil || a.CurrentQuestion().ID != 1 {
		t.Fatal("expected question 1 active")
	}

	// Advance before answering does nothing.
	if a.Advance() {
		t.Error("advance succeeded without an answer")
	}

	a.Submit(quizgen.Answer{Bool: true})
	if a.Phase != PhaseFeedback {
		t.Fatalf("phase after submit = %d, want feedback", a.Phase)
	}
	if !a.Advance() {
		t.Fatal("expected more questions after the first")
	}
	if a.CurrentQuestion().ID != 2 {
		t.Errorf("current question ID = %d, want 2", a.CurrentQuestion().ID)
	}

	a.Submit(quizgen.Answer{Bool: true})
	if a.Advance() {
		t.Error("advance past the last question reported more remaining")
	}
	if a.Phase != PhaseCompleted {
		t.Errorf("final phase = %d, want completed", a.Phase)
	}
	if a.CurrentQuestion() != nil {
		t.Error("completed attempt still has an active question")
	}
}

func TestAttempt_AbandonProducesNoHistory(t *testing.T) {
	a, err := Begin("Phân số", "Lớp 6", "Toán", progression.DifficultyMedium, makeQuestions(5))
	if err != nil {
		t.Fatal(err)
	}
	a.Submit(quizgen.Answer{Bool: true})
	a.Advance()
	a.Abandon()

	if a.Phase != PhaseAbandoned {
		t.Fatalf("phase = %d, want abandoned", a.Phase)
	}
	if _, err := a.HistoryEntry(""); !errors.Is(err, ErrNotCompleted) {
		t.Errorf("expected ErrNotCompleted, got %v", err)
	}
}

func TestAttempt_AbandonAfterCompletionIsIgnored(t *testing.T) {
	a, err := Begin("Phân số", "Lớp 6", "Toán", progression.DifficultyEasy, makeQuestions(1))
	if err != nil {
		t.Fatal(err)
	}
	a.Submit(quizgen.Answer{Bool: true})
	a.Advance()
	a.Abandon()
	if a.Phase != PhaseCompleted {
		t.Errorf("phase = %d, want completed to stay completed", a.Phase)
	}
}

func TestAttempt_HistoryEntry(t *testing.T) {
	questions := []quizgen.Question{
		{ID: 1, Type: quizgen.TypeMultipleChoice, Prompt: "2+2?", Options: []string{"3", "4"}, CorrectIndex: 1},
		{ID: 2, Type: quizgen.TypeFillInBlank, Prompt: "3x___=9", CorrectText: "3"},
	}
	a, err := Begin("Phép nhân", "Lớp 6", "Toán", progression.DifficultyHard, questions)
	if err != nil {
		t.Fatal(err)
	}
	a.Submit(quizgen.Answer{OptionIndex: 1})
	a.Advance()
	a.Submit(quizgen.Answer{Text: "4"})
	a.Advance()

	entry, err := a.HistoryEntry("Cố gắng hơn nhé")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Topic != "Phép nhân" || entry.Difficulty != string(progression.DifficultyHard) {
		t.Errorf("entry header wrong: %+v", entry)
	}
	if entry.Score != 50 {
		t.Errorf("score = %d, want 50", entry.Score)
	}
	if len(entry.Questions) != 2 {
		t.Fatalf("question records = %d, want 2", len(entry.Questions))
	}
	if entry.Answers["1"] != "4" {
		t.Errorf("answer 1 = %q, want the chosen option text", entry.Answers["1"])
	}
	if entry.Answers["2"] != "4" {
		t.Errorf("answer 2 = %q, want the typed text", entry.Answers["2"])
	}
	if entry.Questions[1].CorrectAnswer != "3" {
		t.Errorf("correct answer = %q, want %q", entry.Questions[1].CorrectAnswer, "3")
	}
	if entry.Feedback != "Cố gắng hơn nhé" {
		t.Errorf("feedback = %q", entry.Feedback)
	}
}

func TestQuestionWeight_SumsTo100(t *testing.T) {
	for n := 1; n <= 20; n++ {
		sum := 0
		for i := 0; i < n; i++ {
			sum += questionWeight(n, i)
		}
		if sum != 100 {
			t.Errorf("n=%d: weights sum to %d, want 100", n, sum)
		}
	}
}

func TestAttempt_Summary(t *testing.T) {
	a, err := Begin("Phân số", "Lớp 7", "Toán", progression.DifficultyEasy, makeQuestions(2))
	if err != nil {
		t.Fatal(err)
	}
	a.Submit(quizgen.Answer{Bool: false})
	a.Advance()
	a.Submit(quizgen.Answer{Bool: true})
	a.Advance()

	s := a.Summary()
	if s.Grade != "Lớp 7" || s.Subject != "Toán" || s.Topic != "Phân số" {
		t.Errorf("summary header wrong: %+v", s)
	}
	if len(s.WrongAnswers) != 1 {
		t.Fatalf("wrong answers = %d, want 1", len(s.WrongAnswers))
	}
	if s.WrongAnswers[0].GivenAnswer != "false" || s.WrongAnswers[0].CorrectAnswer != "true" {
		t.Errorf("wrong answer detail: %+v", s.WrongAnswers[0])
	}
}

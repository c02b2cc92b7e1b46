// Package quiz drives one quiz attempt through its lifecycle:
// Setup → InProgress → Feedback (per question) → Completed. All
// transitions are pure functions over the Attempt state; persistence
// and rendering happen elsewhere.
package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/minhvu/hoctot/internal/progression"
	"github.com/minhvu/hoctot/internal/quizgen"
)

// Phase is the lifecycle stage of a quiz attempt.
type Phase int

const (
	// PhaseSetup: no content yet. A failed generation keeps the
	// machine here with no partial state.
	PhaseSetup Phase = iota

	// PhaseInProgress: a question is displayed, awaiting an answer.
	PhaseInProgress

	// PhaseFeedback: the current question was answered; correctness
	// and explanation are shown.
	PhaseFeedback

	// PhaseCompleted: all questions answered, score final.
	PhaseCompleted

	// PhaseAbandoned: the user quit mid-attempt. Terminal; nothing is
	// persisted.
	PhaseAbandoned
)

// Attempt is the state of one quiz run. Created by Begin, mutated once
// per answered question, discarded after completion.
type Attempt struct {
	// ID distinguishes this attempt from any later one, so a slow
	// async result arriving after a restart can be discarded instead
	// of applied to the wrong attempt.
	ID string

	Topic      string
	Grade      string
	Subject    string
	Difficulty progression.Difficulty

	// Questions is fixed at Begin; never mutated during the attempt.
	Questions []quizgen.Question

	// Current is the index of the active question.
	Current int

	// Answers and Correct are keyed by question ID.
	Answers map[int]quizgen.Answer
	Correct map[int]bool

	// Score accumulates as answers are submitted; totals exactly 100
	// for a full-correct run regardless of question count.
	Score int

	Phase     Phase
	StartedAt time.Time
}

// ErrNoQuestions is returned by Begin for an empty question list.
var ErrNoQuestions = errors.New("cannot start a quiz with zero questions")

// Begin creates an attempt in PhaseInProgress from generated questions.
func Begin(topic, grade, subject string, difficulty progression.Difficulty, questions []quizgen.Question) (*Attempt, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Attempt{
		ID:         uuid.NewString(),
		Topic:      topic,
		Grade:      grade,
		Subject:    subject,
		Difficulty: difficulty,
		Questions:  questions,
		Answers:    make(map[int]quizgen.Answer),
		Correct:    make(map[int]bool),
		Phase:      PhaseInProgress,
		StartedAt:  time.Now(),
	}, nil
}

// CurrentQuestion returns the active question, or nil outside
// InProgress/Feedback.
func (a *Attempt) CurrentQuestion() *quizgen.Question {
	if a.Current < 0 || a.Current >= len(a.Questions) {
		return nil
	}
	if a.Phase != PhaseInProgress && a.Phase != PhaseFeedback {
		return nil
	}
	return &a.Questions[a.Current]
}

// Submit records the answer for the current question and moves to
// PhaseFeedback. Once a question is answered, further submissions for
// it are ignored until Advance; answers cannot be changed after the
// fact. Returns (correct, accepted).
func (a *Attempt) Submit(ans quizgen.Answer) (bool, bool) {
	if a.Phase != PhaseInProgress {
		return false, false
	}
	q := &a.Questions[a.Current]
	if _, answered := a.Answers[q.ID]; answered {
		return false, false
	}

	correct := q.Check(ans)
	a.Answers[q.ID] = ans
	a.Correct[q.ID] = correct
	if correct {
		a.Score += questionWeight(len(a.Questions), a.Current)
	}
	a.Phase = PhaseFeedback
	return correct, true
}

// Advance moves past the feedback for the current question: to the next
// question, or to PhaseCompleted after the last one. Returns true while
// questions remain.
func (a *Attempt) Advance() bool {
	if a.Phase != PhaseFeedback {
		return false
	}
	if a.Current+1 < len(a.Questions) {
		a.Current++
		a.Phase = PhaseInProgress
		return true
	}
	a.Phase = PhaseCompleted
	return false
}

// Abandon discards the attempt. The caller must confirm with the user
// first; afterwards nothing from this attempt is persisted.
func (a *Attempt) Abandon() {
	if a.Phase != PhaseCompleted {
		a.Phase = PhaseAbandoned
	}
}

// WrongAnswers lists the missed questions for feedback generation.
func (a *Attempt) WrongAnswers() []quizgen.WrongAnswer {
	var wrong []quizgen.WrongAnswer
	for _, q := range a.Questions {
		ans, answered := a.Answers[q.ID]
		if !answered || a.Correct[q.ID] {
			continue
		}
		wrong = append(wrong, quizgen.WrongAnswer{
			Prompt:        q.Prompt,
			GivenAnswer:   q.FormatAnswer(ans),
			CorrectAnswer: q.CorrectDisplay(),
		})
	}
	return wrong
}

// Summary builds the feedback-generation input for a completed attempt.
func (a *Attempt) Summary() quizgen.AttemptSummary {
	return quizgen.AttemptSummary{
		Topic:        a.Topic,
		Grade:        a.Grade,
		Subject:      a.Subject,
		Score:        a.Score,
		WrongAnswers: a.WrongAnswers(),
	}
}

// questionWeight returns the score contribution of the question at
// index i in an n-question quiz. Every question weighs 100/n, with the
// final question absorbing the integer-division remainder so that a
// full-correct run totals exactly 100 for every n.
func questionWeight(n, i int) int {
	base := 100 / n
	if i == n-1 {
		return 100 - base*(n-1)
	}
	return base
}

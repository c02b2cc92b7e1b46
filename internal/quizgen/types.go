// Package quizgen is the adapter between the app and the generative-AI
// service: it turns a structured quiz request into validated questions,
// learning paths and tutor feedback, and fails hard on anything the
// service returns that does not match the expected shape.
package quizgen

import "strconv"

// QuestionType is how a question is asked and answered.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple-choice"
	TypeTrueFalse      QuestionType = "true-false"
	TypeFillInBlank    QuestionType = "fill-in-blank"
)

// KnownType reports whether t is one of the supported question types.
func KnownType(t QuestionType) bool {
	switch t {
	case TypeMultipleChoice, TypeTrueFalse, TypeFillInBlank:
		return true
	}
	return false
}

// Question is one validated quiz question. Immutable once a quiz
// attempt starts; the review mode edits copies before an attempt.
type Question struct {
	// ID numbers the question within its quiz, starting at 1.
	ID int

	Type   QuestionType
	Prompt string

	// Options is present only for multiple-choice, in display order.
	Options []string

	// CorrectIndex is the index into Options (multiple-choice only).
	CorrectIndex int

	// CorrectBool is the expected value for true-false questions.
	CorrectBool bool

	// CorrectText is the expected answer for fill-in-blank questions.
	CorrectText string

	// Explanation is shown after the learner answers.
	Explanation string
}

// Answer is a learner's chosen value for one question. Which field is
// meaningful depends on the question's type.
type Answer struct {
	OptionIndex int
	Bool        bool
	Text        string
}

// Check reports whether the answer is correct, by strict equality
// against the question's expected value.
func (q *Question) Check(a Answer) bool {
	switch q.Type {
	case TypeMultipleChoice:
		return a.OptionIndex == q.CorrectIndex
	case TypeTrueFalse:
		return a.Bool == q.CorrectBool
	case TypeFillInBlank:
		return a.Text == q.CorrectText
	}
	return false
}

// CorrectDisplay returns the correct answer as display text.
func (q *Question) CorrectDisplay() string {
	switch q.Type {
	case TypeMultipleChoice:
		if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
			return q.Options[q.CorrectIndex]
		}
		return ""
	case TypeTrueFalse:
		return strconv.FormatBool(q.CorrectBool)
	default:
		return q.CorrectText
	}
}

// FormatAnswer returns the learner's chosen value as display text.
func (q *Question) FormatAnswer(a Answer) string {
	switch q.Type {
	case TypeMultipleChoice:
		if a.OptionIndex >= 0 && a.OptionIndex < len(q.Options) {
			return q.Options[a.OptionIndex]
		}
		return ""
	case TypeTrueFalse:
		return strconv.FormatBool(a.Bool)
	default:
		return a.Text
	}
}

// Request is a quiz generation request. Validate before use.
type Request struct {
	Topic      string
	Grade      string // e.g. "Lớp 6"
	Subject    string // e.g. "Toán"
	Difficulty string // e.g. "Dễ"

	// Count is the requested number of questions, 1..MaxQuestionCount.
	Count int

	// AllowedTypes restricts the generated question types. Empty means
	// all types are allowed.
	AllowedTypes []QuestionType
}

// MaxQuestionCount bounds a single quiz generation request.
const MaxQuestionCount = 20

// allows reports whether t is permitted by the request.
func (r Request) allows(t QuestionType) bool {
	if len(r.AllowedTypes) == 0 {
		return true
	}
	for _, allowed := range r.AllowedTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// WeekPlan is one week of a learning path.
type WeekPlan struct {
	Week      int
	Title     string
	Topics    []string
	Objective string
}

// LearningPath is a fixed 4-week curriculum outline for a grade+subject.
type LearningPath struct {
	Grade   string
	Subject string
	Weeks   []WeekPlan
}

// PathWeeks is the exact number of week-plans in a learning path.
const PathWeeks = 4

// TutorFeedback is the free-text review of a completed quiz attempt.
type TutorFeedback struct {
	Title   string
	Content string
}

// WrongAnswer describes one missed question for feedback generation.
type WrongAnswer struct {
	Prompt        string
	GivenAnswer   string
	CorrectAnswer string
}

// AttemptSummary is what feedback generation needs from a completed attempt.
type AttemptSummary struct {
	Topic        string
	Grade        string
	Subject      string
	Score        int
	WrongAnswers []WrongAnswer
}

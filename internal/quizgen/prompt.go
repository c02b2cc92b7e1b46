package quizgen

import (
	"fmt"
	"strings"
)

const quizSystemPrompt = `You are a friendly tutor for Vietnamese secondary-school students (lớp 6 đến lớp 9).

Rules:
- Write all questions, options and explanations in Vietnamese, matching the school curriculum for the given grade and subject.
- Generate exactly the requested number of questions, no more and no fewer.
- Only use the allowed question types.
- For multiple-choice, provide exactly 4 options where exactly one is correct, and set correct_index to that option. Distractors should reflect common student mistakes, not random values.
- For true-false, state a single claim and set correct_bool.
- For fill-in-blank, use ___ for the blank and set correct_text to the exact expected answer, as short as possible.
- Always fill every field: use an empty array for options and empty string for correct_text when they do not apply, and false for correct_bool.
- Match the requested difficulty: "Dễ" needs only recall, "Trung bình" needs one reasoning step, "Khó" needs combining ideas.
- Keep explanations short and encouraging.`

func buildQuizUserMessage(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Grade: %s\n", req.Grade)
	fmt.Fprintf(&b, "Subject: %s\n", req.Subject)
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	fmt.Fprintf(&b, "Number of questions: %d\n", req.Count)
	fmt.Fprintf(&b, "Allowed question types: %s\n", formatTypes(req.AllowedTypes))

	return b.String()
}

func formatTypes(types []QuestionType) string {
	if len(types) == 0 {
		return "multiple-choice, true-false, fill-in-blank"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

const pathSystemPrompt = `You are a study planner for Vietnamese secondary-school students.

Rules:
- Produce a 4-week study plan for the given grade and subject, in Vietnamese.
- Exactly 4 weeks, numbered 1 through 4, each with a title, 3-5 topics and one concrete objective.
- Follow the order of the Vietnamese school curriculum for that subject and grade.`

func buildPathUserMessage(grade, subject string) string {
	return fmt.Sprintf("Grade: %s\nSubject: %s\n", grade, subject)
}

const feedbackSystemPrompt = `You are an encouraging tutor reviewing a Vietnamese student's quiz attempt.

Rules:
- Write in Vietnamese, warm and specific.
- For each missed question, briefly explain the likely misunderstanding and how to avoid it.
- End with one concrete suggestion for what to practice next.
- Never scold; mistakes are part of learning.`

func buildFeedbackUserMessage(s AttemptSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Grade: %s\n", s.Grade)
	fmt.Fprintf(&b, "Subject: %s\n", s.Subject)
	fmt.Fprintf(&b, "Topic: %s\n", s.Topic)
	fmt.Fprintf(&b, "Score: %d/100\n", s.Score)

	b.WriteString("\nMissed questions:\n")
	for i, w := range s.WrongAnswers {
		fmt.Fprintf(&b, "%d. %q — answered %q, correct answer %q\n",
			i+1, w.Prompt, w.GivenAnswer, w.CorrectAnswer)
	}

	return b.String()
}

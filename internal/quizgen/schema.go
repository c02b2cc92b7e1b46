package quizgen

import "github.com/minhvu/hoctot/internal/llm"

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A set of quiz questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"multiple-choice", "true-false", "fill-in-blank"},
							"description": "How the question is asked and answered",
						},
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question text shown to the student, in Vietnamese",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for multiple-choice. Empty array otherwise.",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"description": "Index of the correct option (multiple-choice only)",
						},
						"correct_bool": map[string]any{
							"type":        "boolean",
							"description": "The correct value (true-false only)",
						},
						"correct_text": map[string]any{
							"type":        "string",
							"description": "The expected answer (fill-in-blank only)",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Short explanation of the correct answer, in Vietnamese",
						},
					},
					"required":             []any{"type", "prompt", "options", "correct_index", "correct_bool", "correct_text", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// PathSchema defines the JSON schema for learning path responses.
var PathSchema = &llm.Schema{
	Name:        "learning-path",
	Description: "A 4-week study plan for one school subject",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"weeks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"week": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"maximum":     4,
							"description": "Week number, 1 through 4",
						},
						"title": map[string]any{
							"type":        "string",
							"description": "Theme of the week, in Vietnamese",
						},
						"topics": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Topics to study this week",
						},
						"objective": map[string]any{
							"type":        "string",
							"description": "What the student should be able to do after this week",
						},
					},
					"required":             []any{"week", "title", "topics", "objective"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"weeks"},
		"additionalProperties": false,
	},
}

// FeedbackSchema defines the JSON schema for tutor feedback responses.
var FeedbackSchema = &llm.Schema{
	Name:        "tutor-feedback",
	Description: "Encouraging feedback on a completed quiz attempt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short headline for the feedback, in Vietnamese",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "Friendly advice covering the missed questions, in Vietnamese",
			},
		},
		"required":             []any{"title", "content"},
		"additionalProperties": false,
	},
}

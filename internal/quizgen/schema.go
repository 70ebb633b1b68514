package quizgen

import "github.com/FVTVLIX/Quiz-Whiz/internal/llm"

// QuizSchema is the JSON schema attached to completion requests when
// Config.StructuredOutput is enabled. It is deliberately loose, one object
// shape covering all four variants: the normalizer, not the schema, is the
// authority on per-variant required fields.
var QuizSchema = &llm.Schema{
	Name:        "quiz-document",
	Description: "A quiz as a list of typed questions with answers and explanations",
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
							"enum":        []any{"multiple-choice", "true-false", "short-answer", "fill-blank"},
							"description": "The question variant",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Choices for multiple-choice questions",
						},
						"correct": map[string]any{
							"description": "Correct option index (multiple-choice) or boolean (true-false)",
						},
						"sampleAnswer": map[string]any{
							"type":        "string",
							"description": "Model answer for short-answer questions",
						},
						"keyPoints": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Grading keywords for short-answer questions",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "Expected text for fill-blank questions",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the answer is correct",
						},
					},
					"required": []any{"type", "question"},
				},
			},
		},
		"required": []any{"questions"},
	},
}

package quizgen

import (
	"strings"
	"testing"
)

const fullDoc = `{
  "questions": [
    {
      "type": "multiple-choice",
      "question": "What organelle produces ATP?",
      "options": ["Nucleus", "Mitochondria", "Ribosome", "Golgi"],
      "correct": 1,
      "explanation": "Mitochondria run cellular respiration."
    },
    {
      "type": "true-false",
      "question": "Plant cells have cell walls",
      "correct": true,
      "explanation": "Cellulose walls surround plant cells."
    },
    {
      "type": "short-answer",
      "question": "Explain the role of chlorophyll",
      "sampleAnswer": "Chlorophyll absorbs light for photosynthesis.",
      "keyPoints": ["light", "photosynthesis"],
      "explanation": "Chlorophyll captures light energy."
    },
    {
      "type": "fill-blank",
      "question": "Photosynthesis occurs in the _____.",
      "answer": "chloroplast",
      "explanation": "Chloroplasts contain the photosynthetic machinery."
    }
  ]
}`

func TestNormalize_FullDocument(t *testing.T) {
	quiz, warnings, err := Normalize(fullDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(quiz.Questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(quiz.Questions))
	}

	mc, ok := quiz.Questions[0].(MultipleChoice)
	if !ok {
		t.Fatalf("expected MultipleChoice, got %T", quiz.Questions[0])
	}
	if mc.Correct != 1 {
		t.Errorf("expected correct index 1, got %d", mc.Correct)
	}
	if len(mc.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(mc.Options))
	}

	tf, ok := quiz.Questions[1].(TrueFalse)
	if !ok {
		t.Fatalf("expected TrueFalse, got %T", quiz.Questions[1])
	}
	if !tf.Correct {
		t.Error("expected correct=true")
	}

	sa, ok := quiz.Questions[2].(ShortAnswer)
	if !ok {
		t.Fatalf("expected ShortAnswer, got %T", quiz.Questions[2])
	}
	if len(sa.KeyPoints) != 2 {
		t.Errorf("expected 2 key points, got %d", len(sa.KeyPoints))
	}

	fb, ok := quiz.Questions[3].(FillBlank)
	if !ok {
		t.Fatalf("expected FillBlank, got %T", quiz.Questions[3])
	}
	if fb.Answer != "chloroplast" {
		t.Errorf("unexpected answer %q", fb.Answer)
	}
}

func TestNormalize_AssignsUniqueIDs(t *testing.T) {
	quiz, _, err := Normalize(fullDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[string]bool{}
	for _, q := range quiz.Questions {
		var id string
		switch v := q.(type) {
		case MultipleChoice:
			id = v.ID
		case TrueFalse:
			id = v.ID
		case ShortAnswer:
			id = v.ID
		case FillBlank:
			id = v.ID
		}
		if id == "" {
			t.Fatal("question has no ID")
		}
		if seen[id] {
			t.Fatalf("duplicate ID %q", id)
		}
		seen[id] = true
	}
}

func TestNormalize_DropAndWarn(t *testing.T) {
	tests := []struct {
		name    string
		element string
		reason  string
	}{
		{
			name:    "unknown type",
			element: `{"type": "essay", "question": "Discuss."}`,
			reason:  "unknown question type",
		},
		{
			name:    "empty question text",
			element: `{"type": "true-false", "question": "  ", "correct": true}`,
			reason:  "question text is empty",
		},
		{
			name:    "multiple-choice with one option",
			element: `{"type": "multiple-choice", "question": "Pick", "options": ["only"], "correct": 0}`,
			reason:  "at least 2 options",
		},
		{
			name:    "multiple-choice out-of-bounds index",
			element: `{"type": "multiple-choice", "question": "Pick", "options": ["a", "b"], "correct": 5}`,
			reason:  "out of bounds",
		},
		{
			name:    "multiple-choice fractional index",
			element: `{"type": "multiple-choice", "question": "Pick", "options": ["a", "b"], "correct": 1.5}`,
			reason:  "not an integer",
		},
		{
			name:    "multiple-choice string index",
			element: `{"type": "multiple-choice", "question": "Pick", "options": ["a", "b"], "correct": "b"}`,
			reason:  "not a number",
		},
		{
			name:    "true-false missing correct",
			element: `{"type": "true-false", "question": "Statement"}`,
			reason:  "missing the correct field",
		},
		{
			name:    "true-false non-bool correct",
			element: `{"type": "true-false", "question": "Statement", "correct": "yes"}`,
			reason:  "correct value",
		},
		{
			name:    "short-answer without key points",
			element: `{"type": "short-answer", "question": "Explain", "sampleAnswer": "Because.", "keyPoints": []}`,
			reason:  "no key points",
		},
		{
			name:    "short-answer with blank key points",
			element: `{"type": "short-answer", "question": "Explain", "sampleAnswer": "Because.", "keyPoints": ["  ", ""]}`,
			reason:  "no key points",
		},
		{
			name:    "short-answer without sample answer",
			element: `{"type": "short-answer", "question": "Explain", "keyPoints": ["key"]}`,
			reason:  "sample answer",
		},
		{
			name:    "fill-blank without answer",
			element: `{"type": "fill-blank", "question": "The _____."}`,
			reason:  "missing the answer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Pair the bad element with a good one so the document survives.
			doc := `{"questions": [` + tt.element + `, {"type": "fill-blank", "question": "The _____.", "answer": "x"}]}`
			quiz, warnings, err := Normalize(doc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(quiz.Questions) != 1 {
				t.Fatalf("expected 1 surviving question, got %d", len(quiz.Questions))
			}
			if len(warnings) != 1 {
				t.Fatalf("expected 1 warning, got %d", len(warnings))
			}
			if warnings[0].Index != 0 {
				t.Errorf("expected warning index 0, got %d", warnings[0].Index)
			}
			if !strings.Contains(warnings[0].Reason, tt.reason) {
				t.Errorf("warning %q does not mention %q", warnings[0].Reason, tt.reason)
			}
		})
	}
}

func TestNormalize_DocumentLevelFailures(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		kind      ValidationKind
	}{
		{"not an object", `[1, 2, 3]`, ValidationMalformed},
		{"invalid json", `{broken`, ValidationMalformed},
		{"no questions field", `{"items": []}`, ValidationMissingQuestions},
		{"questions not an array", `{"questions": "many"}`, ValidationMissingQuestions},
		{"empty questions array", `{"questions": []}`, ValidationEmptyResult},
		{
			name:      "all questions dropped",
			candidate: `{"questions": [{"type": "essay", "question": "Discuss."}]}`,
			kind:      ValidationEmptyResult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize(tt.candidate)
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if verr.Kind != tt.kind {
				t.Errorf("expected kind %q, got %q", tt.kind, verr.Kind)
			}
		})
	}
}

func TestNormalize_EmptyResultKeepsWarnings(t *testing.T) {
	doc := `{"questions": [{"type": "essay", "question": "a"}, {"type": "true-false", "question": ""}]}`
	_, warnings, err := Normalize(doc)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings alongside the error, got %d", len(warnings))
	}
}

func TestNormalize_DefaultExplanation(t *testing.T) {
	doc := `{"questions": [{"type": "fill-blank", "question": "The _____.", "answer": "x"}]}`
	quiz, _, err := Normalize(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fb := quiz.Questions[0].(FillBlank)
	if fb.Explanation != defaultExplanation {
		t.Errorf("expected synthesized explanation, got %q", fb.Explanation)
	}
}

func TestNormalize_IntegralFloatIndex(t *testing.T) {
	doc := `{"questions": [{"type": "multiple-choice", "question": "Pick", "options": ["a", "b", "c"], "correct": 2.0}]}`
	quiz, _, err := Normalize(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mc := quiz.Questions[0].(MultipleChoice)
	if mc.Correct != 2 {
		t.Errorf("expected index 2, got %d", mc.Correct)
	}
}

func TestNormalize_ExtraFieldsIgnored(t *testing.T) {
	doc := `{"questions": [{"type": "fill-blank", "question": "The _____.", "answer": "x", "points": 10, "hint": "starts with x"}]}`
	quiz, warnings, err := Normalize(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(quiz.Questions) != 1 {
		t.Errorf("expected 1 question, got %d", len(quiz.Questions))
	}
}

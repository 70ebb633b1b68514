package quizgen

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestQuestionMarshal_TypeDiscriminator(t *testing.T) {
	tests := []struct {
		name string
		q    Question
		kind string
	}{
		{"multiple choice", MultipleChoice{Base: Base{Question: "Pick?"}, Options: []string{"a", "b"}}, "multiple-choice"},
		{"true false", TrueFalse{Base: Base{Question: "Statement."}}, "true-false"},
		{"short answer", ShortAnswer{Base: Base{Question: "Why?"}, SampleAnswer: "x", KeyPoints: []string{"x"}}, "short-answer"},
		{"fill blank", FillBlank{Base: Base{Question: "The ___."}, Answer: "x"}, "fill-blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.q)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var doc map[string]any
			if err := json.Unmarshal(data, &doc); err != nil {
				t.Fatalf("marshaled question is not valid JSON: %v", err)
			}
			if doc["type"] != tt.kind {
				t.Errorf("expected type %q, got %v", tt.kind, doc["type"])
			}
			// The discriminator leads so documents are skimmable.
			if !strings.HasPrefix(string(data), `{"type":`) {
				t.Errorf("type is not the first field: %s", data)
			}
		})
	}
}

func TestQuizRoundTrip(t *testing.T) {
	quiz, _, err := Normalize(fullDoc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	quiz = Enhance(quiz)

	data, err := json.Marshal(quiz)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Quiz
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(decoded.Questions) != len(quiz.Questions) {
		t.Fatalf("expected %d questions, got %d", len(quiz.Questions), len(decoded.Questions))
	}
	for i := range quiz.Questions {
		if decoded.Questions[i].Kind() != quiz.Questions[i].Kind() {
			t.Errorf("question %d: kind changed from %q to %q",
				i, quiz.Questions[i].Kind(), decoded.Questions[i].Kind())
		}
	}

	mc := decoded.Questions[0].(MultipleChoice)
	original := quiz.Questions[0].(MultipleChoice)
	if mc.ID != original.ID || mc.Correct != original.Correct {
		t.Error("multiple-choice fields lost in round trip")
	}
	if mc.LearningObjective != original.LearningObjective {
		t.Error("learning objective lost in round trip")
	}
}

func TestQuizUnmarshal_StrictOnBadElement(t *testing.T) {
	doc := `{"questions": [
		{"type": "fill-blank", "question": "The ___.", "answer": "x"},
		{"type": "essay", "question": "Discuss."}
	]}`
	var quiz Quiz
	err := json.Unmarshal([]byte(doc), &quiz)
	if err == nil {
		t.Fatal("expected error for unknown question type")
	}
	if !strings.Contains(err.Error(), "question 1") {
		t.Errorf("error does not locate the bad element: %v", err)
	}
}

func TestAnswersFromJSON(t *testing.T) {
	answers, err := AnswersFromJSON([]byte(`[2, true, "some text", null]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if answers[0].Index == nil || *answers[0].Index != 2 {
		t.Errorf("answer 0: %+v", answers[0])
	}
	if answers[1].Bool == nil || *answers[1].Bool != true {
		t.Errorf("answer 1: %+v", answers[1])
	}
	if answers[2].Text == nil || *answers[2].Text != "some text" {
		t.Errorf("answer 2: %+v", answers[2])
	}
	if _, ok := answers[3]; ok {
		t.Error("null should be an absent slot")
	}
}

func TestAnswersFromJSON_ZeroValues(t *testing.T) {
	answers, err := AnswersFromJSON([]byte(`[0, false, ""]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answers[0].Index == nil || *answers[0].Index != 0 {
		t.Error("index 0 should be a submission")
	}
	if answers[1].Bool == nil || *answers[1].Bool != false {
		t.Error("false should be a submission")
	}
	if answers[2].Text == nil || *answers[2].Text != "" {
		t.Error("empty string should be a submission")
	}
}

func TestAnswersFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not an array", `{"0": 2}`},
		{"fractional index", `[1.5]`},
		{"nested array", `[[1]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AnswersFromJSON([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

package llm

import "testing"

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":     map[string]any{"type": "string", "enum": []any{"multiple-choice", "true-false"}},
						"question": map[string]any{"type": "string"},
						"correct":  map[string]any{"type": "integer"},
					},
					"required": []any{"type", "question"},
				},
			},
		},
		"required": []any{"questions"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Required) != 1 || schema.Required[0] != "questions" {
		t.Fatalf("unexpected required: %v", schema.Required)
	}

	questions := schema.Properties["questions"]
	if questions == nil || questions.Type != "ARRAY" {
		t.Fatalf("expected ARRAY for questions, got %+v", questions)
	}

	item := questions.Items
	if item == nil || item.Type != "OBJECT" {
		t.Fatalf("expected OBJECT items, got %+v", item)
	}
	if item.Properties["question"].Type != "STRING" {
		t.Fatalf("expected STRING for question, got %s", item.Properties["question"].Type)
	}
	if item.Properties["correct"].Type != "INTEGER" {
		t.Fatalf("expected INTEGER for correct, got %s", item.Properties["correct"].Type)
	}
	if len(item.Properties["type"].Enum) != 2 {
		t.Fatalf("expected 2 enum values, got %d", len(item.Properties["type"].Enum))
	}
	if len(item.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(item.Required))
	}
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "generate"},
		{Role: RoleAssistant, Content: "here"},
	})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" {
		t.Errorf("unexpected role: %q", contents[0].Role)
	}
	if contents[1].Role != "model" {
		t.Errorf("unexpected role: %q", contents[1].Role)
	}
}

func TestGeminiMissingAPIKey(t *testing.T) {
	if _, err := NewGeminiProvider(t.Context(), GeminiConfig{Model: "gemini-2.0-flash"}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

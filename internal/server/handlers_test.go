package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FVTVLIX/Quiz-Whiz/internal/llm"
	"github.com/FVTVLIX/Quiz-Whiz/internal/quizgen"
)

var testContent = strings.Repeat("Photosynthesis converts light energy into chemical energy. ", 4)

const completionDoc = `{
  "questions": [
    {
      "type": "multiple-choice",
      "question": "Where does photosynthesis occur?",
      "options": ["Nucleus", "Chloroplast", "Mitochondria", "Vacuole"],
      "correct": 1,
      "explanation": "Chloroplasts hold the photosynthetic machinery."
    },
    {
      "type": "fill-blank",
      "question": "Plants absorb _____ from the air.",
      "answer": "carbon dioxide",
      "explanation": "CO2 is fixed during the Calvin cycle."
    }
  ]
}`

func testRouter(responses ...llm.MockResponse) http.Handler {
	mock := llm.NewMockProvider(responses...)
	svc := quizgen.NewService(mock, quizgen.DefaultConfig())

	cfg := DefaultConfig()
	cfg.Provider = "mock"
	cfg.ProviderConfigured = true
	return NewRouter(svc, cfg)
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	handler := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status             string    `json:"status"`
		Timestamp          time.Time `json:"timestamp"`
		Provider           string    `json:"provider"`
		ProviderConfigured bool      `json:"providerConfigured"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "mock", resp.Provider)
	assert.True(t, resp.ProviderConfigured)
	assert.WithinDuration(t, time.Now(), resp.Timestamp, time.Minute)
}

func TestGenerateQuiz(t *testing.T) {
	handler := testRouter(llm.MockResponse{Content: json.RawMessage(completionDoc)})

	rec := postJSON(t, handler, "/api/generate-quiz", map[string]any{
		"content": testContent,
		"options": map[string]any{
			"numQuestions": 2,
			"difficulty":   "beginner",
			"subject":      "biology",
			"gradeLevel":   "middle",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool         `json:"success"`
		Quiz    quizgen.Quiz `json:"quiz"`
		Model   string       `json:"model"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Quiz.Questions, 2)
	assert.Equal(t, "mock", resp.Model)
	require.NotNil(t, resp.Quiz.Metadata)
	assert.Equal(t, quizgen.DifficultyBeginner, resp.Quiz.Metadata.Difficulty)
}

func TestGenerateQuiz_DefaultsOptions(t *testing.T) {
	handler := testRouter(llm.MockResponse{Content: json.RawMessage(completionDoc)})

	rec := postJSON(t, handler, "/api/generate-quiz", map[string]any{"content": testContent})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestGenerateQuiz_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"missing content", map[string]any{}},
		{"blank content", map[string]any{"content": "   "}},
		{
			name: "invalid options",
			body: map[string]any{
				"content": testContent,
				"options": map[string]any{"numQuestions": 0, "difficulty": "mixed", "gradeLevel": "high"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := testRouter()
			rec := postJSON(t, handler, "/api/generate-quiz", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestGenerateQuiz_InvalidJSONBody(t *testing.T) {
	handler := testRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-quiz", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateQuiz_UpstreamStatusPassthrough(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"rate limit", &llm.ErrRateLimit{Err: errors.New("429")}, http.StatusTooManyRequests},
		{"unavailable", &llm.ErrProviderUnavailable{Err: errors.New("down")}, http.StatusServiceUnavailable},
		{"unclassified", errors.New("connection reset"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := testRouter(llm.MockResponse{Err: tt.err})
			rec := postJSON(t, handler, "/api/generate-quiz", map[string]any{"content": testContent})
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "failed to generate quiz", resp.Error)
			assert.NotEmpty(t, resp.Details)
		})
	}
}

func TestGenerateQuiz_BadCompletionIsBadGateway(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no document", "Sorry, I cannot help with that."},
		{"no questions field", `{"items": []}`},
		{"empty result", `{"questions": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := testRouter(llm.MockResponse{Content: json.RawMessage(tt.content)})
			rec := postJSON(t, handler, "/api/generate-quiz", map[string]any{"content": testContent})
			assert.Equal(t, http.StatusBadGateway, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "failed to generate quiz", resp.Error)
			assert.NotEmpty(t, resp.Details)
		})
	}
}

func TestGrade(t *testing.T) {
	quiz := map[string]any{
		"questions": []map[string]any{
			{
				"type":        "multiple-choice",
				"question":    "Where does photosynthesis occur?",
				"options":     []string{"Nucleus", "Chloroplast"},
				"correct":     1,
				"explanation": "x",
			},
			{
				"type":        "fill-blank",
				"question":    "Plants absorb _____.",
				"answer":      "carbon dioxide",
				"explanation": "x",
			},
		},
	}

	handler := testRouter()
	rec := postJSON(t, handler, "/api/grade", map[string]any{
		"quiz":    quiz,
		"answers": []any{1, "Carbon Dioxide"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success bool                `json:"success"`
		Result  quizgen.GradeResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Result.Score)
	assert.Equal(t, 2, resp.Result.Total)
	assert.Equal(t, 100, resp.Result.Percent)
}

func TestGrade_PartialAnswers(t *testing.T) {
	quiz := map[string]any{
		"questions": []map[string]any{
			{"type": "true-false", "question": "Statement.", "correct": true, "explanation": "x"},
			{"type": "true-false", "question": "Statement.", "correct": false, "explanation": "x"},
		},
	}

	handler := testRouter()
	rec := postJSON(t, handler, "/api/grade", map[string]any{
		"quiz":    quiz,
		"answers": []any{true, nil},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Result quizgen.GradeResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Result.Score)
	assert.True(t, resp.Result.PerQuestion[0].Answered)
	assert.False(t, resp.Result.PerQuestion[1].Answered)
}

func TestGrade_BadRequests(t *testing.T) {
	handler := testRouter()

	t.Run("missing quiz", func(t *testing.T) {
		rec := postJSON(t, handler, "/api/grade", map[string]any{"answers": []any{}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty quiz", func(t *testing.T) {
		rec := postJSON(t, handler, "/api/grade", map[string]any{
			"quiz":    map[string]any{"questions": []any{}},
			"answers": []any{},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("answers not an array", func(t *testing.T) {
		rec := postJSON(t, handler, "/api/grade", map[string]any{
			"quiz": map[string]any{"questions": []map[string]any{
				{"type": "fill-blank", "question": "The ___.", "answer": "x", "explanation": "x"},
			}},
			"answers": map[string]any{"0": "x"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

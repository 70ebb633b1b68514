package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/FVTVLIX/Quiz-Whiz/internal/quizgen"
)

// maxBodyBytes caps request bodies. Study content is text; anything
// bigger than this is not a quiz source.
const maxBodyBytes = 1 << 20

// errorResponse is the failure envelope for every endpoint. Error is a
// stable short label; Details carries the underlying cause when there is
// one worth surfacing.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg, Details: details})
}

// HealthHandler reports liveness plus which completion provider the server
// was started with and whether its credentials are in place.
func HealthHandler(cfg Config) http.HandlerFunc {
	type response struct {
		Status             string    `json:"status"`
		Timestamp          time.Time `json:"timestamp"`
		Provider           string    `json:"provider"`
		ProviderConfigured bool      `json:"providerConfigured"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, response{
			Status:             "ok",
			Timestamp:          time.Now().UTC(),
			Provider:           cfg.Provider,
			ProviderConfigured: cfg.ProviderConfigured,
		})
	}
}

// GenerateQuizHandler runs the full generation pipeline for the posted
// content and options.
func GenerateQuizHandler(svc *quizgen.Service) http.HandlerFunc {
	type request struct {
		Content string                     `json:"content"`
		Options *quizgen.GenerationOptions `json:"options"`
	}
	type response struct {
		Success  bool              `json:"success"`
		Quiz     *quizgen.Quiz     `json:"quiz"`
		Warnings []quizgen.Warning `json:"warnings,omitempty"`
		Model    string            `json:"model,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body", "")
			return
		}

		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "content is required", "")
			return
		}
		opts := defaultOptions()
		if req.Options != nil {
			opts = *req.Options
		}

		result, err := svc.Generate(r.Context(), req.Content, opts)
		if err != nil {
			status, msg, details := generationStatus(err)
			writeError(w, status, msg, details)
			return
		}

		writeJSON(w, http.StatusOK, response{
			Success:  true,
			Quiz:     result.Quiz,
			Warnings: result.Warnings,
			Model:    result.Model,
		})
	}
}

// GradeHandler scores a posted quiz against a positional answer array.
func GradeHandler() http.HandlerFunc {
	type request struct {
		Quiz    *quizgen.Quiz   `json:"quiz"`
		Answers json.RawMessage `json:"answers"`
	}
	type response struct {
		Success bool                 `json:"success"`
		Result  *quizgen.GradeResult `json:"result"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body", "")
			return
		}
		if req.Quiz == nil {
			writeError(w, http.StatusBadRequest, "quiz is required", "")
			return
		}

		answers, err := quizgen.AnswersFromJSON(req.Answers)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid answers", err.Error())
			return
		}

		result, err := quizgen.Grade(req.Quiz, answers)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to grade quiz", err.Error())
			return
		}

		writeJSON(w, http.StatusOK, response{Success: true, Result: result})
	}
}

func defaultOptions() quizgen.GenerationOptions {
	return quizgen.GenerationOptions{
		NumQuestions: 5,
		Difficulty:   quizgen.DifficultyMixed,
		GradeLevel:   quizgen.GradeHigh,
	}
}

// generationStatus maps pipeline errors to an HTTP status, a stable error
// label, and the underlying cause for the details field. Provider statuses
// worth surfacing (429, 503) pass through; other upstream failures and bad
// completion output read as a bad gateway.
func generationStatus(err error) (int, string, string) {
	var invalid *quizgen.InvalidOptionsError
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, invalid.Error(), ""
	}

	var upstream *quizgen.UpstreamError
	if errors.As(err, &upstream) {
		switch upstream.Status {
		case http.StatusTooManyRequests, http.StatusServiceUnavailable:
			return upstream.Status, "failed to generate quiz", upstream.Error()
		}
		return http.StatusBadGateway, "failed to generate quiz", upstream.Error()
	}

	var extraction *quizgen.ExtractionError
	if errors.As(err, &extraction) {
		return http.StatusBadGateway, "failed to generate quiz", extraction.Error()
	}
	var validation *quizgen.ValidationError
	if errors.As(err, &validation) {
		return http.StatusBadGateway, "failed to generate quiz", validation.Error()
	}

	return http.StatusInternalServerError, "failed to generate quiz", err.Error()
}

package quizgen

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/FVTVLIX/Quiz-Whiz/internal/llm"
)

// Service runs the full generation pipeline: prompt → completion →
// extraction → normalization → enhancement. Stateless and safe for
// concurrent use; every request is independent.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a Service with the given provider and config.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Result is the outcome of one generation request.
type Result struct {
	// Quiz is the canonical, enhanced quiz.
	Quiz *Quiz

	// Warnings lists question elements the normalizer dropped. The quiz
	// may be shorter than the requested count; fabricated padding is
	// never added.
	Warnings []Warning

	// Model is the completion model that served the request.
	Model string

	// Usage reports token consumption for the completion call.
	Usage llm.Usage
}

// Generate turns free-text content into a canonical quiz.
//
// Error taxonomy: *InvalidOptionsError before any provider call,
// *UpstreamError for provider failures (with upstream status when known),
// *ExtractionError when no document can be found in the completion, and
// *ValidationError for document-level defects. Element-level defects are
// reported as Result.Warnings, never as errors.
func (s *Service) Generate(ctx context.Context, content string, opts GenerationOptions) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	prompt, err := BuildPrompt(content, opts, s.cfg)
	if err != nil {
		return nil, err
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
	if s.cfg.StructuredOutput {
		req.Schema = QuizSchema
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, &UpstreamError{Status: upstreamStatus(err), Err: err}
	}

	candidate, err := Extract(string(resp.Content))
	if err != nil {
		return nil, err
	}

	quiz, warnings, err := Normalize(candidate)
	if err != nil {
		return nil, err
	}

	quiz = Enhance(quiz)
	quiz.Metadata = &Metadata{
		GeneratedAt: time.Now().UTC(),
		Difficulty:  opts.Difficulty,
		Subject:     opts.Subject,
		GradeLevel:  opts.GradeLevel,
	}

	return &Result{
		Quiz:     quiz,
		Warnings: warnings,
		Model:    resp.Model,
		Usage:    resp.Usage,
	}, nil
}

// upstreamStatus maps provider error types to the HTTP status they imply.
// Returns 0 when the status is unknown.
func upstreamStatus(err error) int {
	var rateLimit *llm.ErrRateLimit
	if errors.As(err, &rateLimit) {
		return http.StatusTooManyRequests
	}
	var unavailable *llm.ErrProviderUnavailable
	if errors.As(err, &unavailable) {
		return http.StatusServiceUnavailable
	}
	return 0
}

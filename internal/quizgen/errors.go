package quizgen

import "fmt"

// InvalidOptionsError reports a bad generation parameter. Raised before
// any call to the completion provider.
type InvalidOptionsError struct {
	Field  string
	Reason string
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("invalid options: %s: %s", e.Field, e.Reason)
}

// ExtractionError means no strategy could pull a syntactically valid
// document out of the completion text.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

// ValidationKind classifies document-level normalization failures.
type ValidationKind string

const (
	// ValidationMalformed means the candidate did not parse as a JSON object.
	ValidationMalformed ValidationKind = "malformed"

	// ValidationMissingQuestions means the document has no "questions" array.
	ValidationMissingQuestions ValidationKind = "missing-questions"

	// ValidationEmptyResult means no question survived element validation.
	ValidationEmptyResult ValidationKind = "empty-result"
)

// ValidationError reports a document-level defect. Element-level defects
// are dropped with a Warning instead; see Normalize.
type ValidationError struct {
	Kind ValidationKind
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("validation failed (%s)", e.Kind)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// GradingKind classifies grading precondition violations.
type GradingKind string

// GradingEmptyQuiz means Grade was called with a quiz of zero questions.
const GradingEmptyQuiz GradingKind = "empty-quiz"

// GradingError reports a grading precondition violation.
type GradingError struct {
	Kind GradingKind
}

func (e *GradingError) Error() string {
	return fmt.Sprintf("grading failed (%s)", e.Kind)
}

// UpstreamError wraps a completion-provider failure. The upstream HTTP
// status is carried when known (429 rate limited, 503 unavailable) so
// callers can propagate it instead of swallowing it.
type UpstreamError struct {
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("completion provider error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("completion provider error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

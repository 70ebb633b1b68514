package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// defaultExplanation is synthesized when the upstream document omits the
// explanation. Explanations are never empty after normalization.
const defaultExplanation = "No explanation provided."

// Normalize parses a candidate document into a canonical Quiz.
//
// The policy is maximally permissive at the element level and strict at the
// document level: a malformed question is dropped with a Warning while the
// rest of the quiz survives, but a document that parses to zero usable
// questions fails with ValidationEmptyResult. A partially-wrong quiz is
// usable; an empty one is not.
func Normalize(candidate string) (*Quiz, []Warning, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, nil, &ValidationError{Kind: ValidationMalformed, Err: err}
	}

	rawQuestions, ok := doc["questions"]
	if !ok {
		return nil, nil, &ValidationError{
			Kind: ValidationMissingQuestions,
			Err:  errors.New(`document has no "questions" field`),
		}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(rawQuestions, &elements); err != nil {
		return nil, nil, &ValidationError{
			Kind: ValidationMissingQuestions,
			Err:  fmt.Errorf(`"questions" is not an array: %w`, err),
		}
	}

	var questions []Question
	var warnings []Warning
	for i, element := range elements {
		q, err := parseQuestion(element)
		if err != nil {
			warnings = append(warnings, Warning{Index: i, Reason: err.Error()})
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, warnings, &ValidationError{
			Kind: ValidationEmptyResult,
			Err:  fmt.Errorf("no usable questions among %d elements", len(elements)),
		}
	}

	for i := range questions {
		questions[i] = withID(questions[i], uuid.NewString())
	}

	return &Quiz{Questions: questions}, warnings, nil
}

// questionDoc is the superset of fields a question element may carry.
// Which fields are required depends on the "type" discriminator.
type questionDoc struct {
	Type         string          `json:"type"`
	ID           string          `json:"id"`
	Question     string          `json:"question"`
	Objective    string          `json:"learningObjective"`
	Options      []string        `json:"options"`
	Correct      json.RawMessage `json:"correct"`
	Explanation  string          `json:"explanation"`
	SampleAnswer string          `json:"sampleAnswer"`
	KeyPoints    []string        `json:"keyPoints"`
	Answer       string          `json:"answer"`
}

// parseQuestion validates a single element against its variant's shape.
// Any required-field violation is an error; the caller decides whether to
// drop the element (normalization) or fail (canonical decode).
func parseQuestion(element json.RawMessage) (Question, error) {
	var doc questionDoc
	if err := json.Unmarshal(element, &doc); err != nil {
		return nil, fmt.Errorf("malformed question element: %w", err)
	}

	if strings.TrimSpace(doc.Question) == "" {
		return nil, errors.New("question text is empty")
	}

	base := Base{
		ID:                doc.ID,
		Question:          doc.Question,
		Explanation:       doc.Explanation,
		LearningObjective: doc.Objective,
	}
	if strings.TrimSpace(base.Explanation) == "" {
		base.Explanation = defaultExplanation
	}

	switch Kind(doc.Type) {
	case KindMultipleChoice:
		if len(doc.Options) < 2 {
			return nil, fmt.Errorf("multiple-choice needs at least 2 options, got %d", len(doc.Options))
		}
		correct, err := decodeIndex(doc.Correct)
		if err != nil {
			return nil, fmt.Errorf("multiple-choice correct index: %w", err)
		}
		if correct < 0 || correct >= len(doc.Options) {
			return nil, fmt.Errorf("correct index %d out of bounds for %d options", correct, len(doc.Options))
		}
		return MultipleChoice{Base: base, Options: doc.Options, Correct: correct}, nil

	case KindTrueFalse:
		var correct bool
		if len(doc.Correct) == 0 {
			return nil, errors.New("true-false is missing the correct field")
		}
		if err := json.Unmarshal(doc.Correct, &correct); err != nil {
			return nil, fmt.Errorf("true-false correct value: %w", err)
		}
		return TrueFalse{Base: base, Correct: correct}, nil

	case KindShortAnswer:
		keyPoints := trimNonEmpty(doc.KeyPoints)
		if len(keyPoints) == 0 {
			return nil, errors.New("short-answer has no key points")
		}
		if strings.TrimSpace(doc.SampleAnswer) == "" {
			return nil, errors.New("short-answer is missing a sample answer")
		}
		return ShortAnswer{Base: base, SampleAnswer: doc.SampleAnswer, KeyPoints: keyPoints}, nil

	case KindFillBlank:
		if strings.TrimSpace(doc.Answer) == "" {
			return nil, errors.New("fill-blank is missing the answer")
		}
		return FillBlank{Base: base, Answer: doc.Answer}, nil

	default:
		return nil, fmt.Errorf("unknown question type %q", doc.Type)
	}
}

// decodeIndex decodes a JSON number into an integer index. Completion
// models occasionally emit "2.0" for an index, so integral floats are
// accepted; fractional values are not.
func decodeIndex(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, errors.New("missing")
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("not a number: %w", err)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	return int(f), nil
}

// trimNonEmpty trims every entry and drops the blank ones.
func trimNonEmpty(entries []string) []string {
	var out []string
	for _, e := range entries {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// withID returns a copy of q with the canonical identifier set.
func withID(q Question, id string) Question {
	switch v := q.(type) {
	case MultipleChoice:
		v.ID = id
		return v
	case TrueFalse:
		v.ID = id
		return v
	case ShortAnswer:
		v.ID = id
		return v
	case FillBlank:
		v.ID = id
		return v
	default:
		return q
	}
}

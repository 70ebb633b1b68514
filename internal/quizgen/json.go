package quizgen

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The four variants marshal themselves with the "type" discriminator first,
// producing the canonical wire shape consumed by Quiz.UnmarshalJSON and the
// normalizer.

func (q MultipleChoice) MarshalJSON() ([]byte, error) {
	type alias MultipleChoice
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{q.Kind(), alias(q)})
}

func (q TrueFalse) MarshalJSON() ([]byte, error) {
	type alias TrueFalse
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{q.Kind(), alias(q)})
}

func (q ShortAnswer) MarshalJSON() ([]byte, error) {
	type alias ShortAnswer
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{q.Kind(), alias(q)})
}

func (q FillBlank) MarshalJSON() ([]byte, error) {
	type alias FillBlank
	return json.Marshal(struct {
		Type Kind `json:"type"`
		alias
	}{q.Kind(), alias(q)})
}

// UnmarshalJSON decodes a canonical quiz document. Unlike Normalize, this
// is strict: a single invalid question fails the whole decode, since
// canonical documents are valid by construction.
func (q *Quiz) UnmarshalJSON(data []byte) error {
	var doc struct {
		Questions []json.RawMessage `json:"questions"`
		Metadata  *Metadata         `json:"metadata"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	questions := make([]Question, 0, len(doc.Questions))
	for i, element := range doc.Questions {
		parsed, err := parseQuestion(element)
		if err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, parsed)
	}

	q.Questions = questions
	q.Metadata = doc.Metadata
	return nil
}

// AnswersFromJSON decodes the wire form of an answer set: a JSON array
// positionally aligned with the quiz, each element a number (multiple-choice
// index), boolean (true-false), string (free text) or null (unanswered).
func AnswersFromJSON(data []byte) (AnswerSet, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("answers must be an array: %w", err)
	}

	answers := make(AnswerSet, len(elements))
	for i, raw := range elements {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || string(trimmed) == "null" {
			continue
		}

		switch trimmed[0] {
		case 't', 'f':
			var b bool
			if err := json.Unmarshal(trimmed, &b); err != nil {
				return nil, fmt.Errorf("answer %d: %w", i, err)
			}
			answers[i] = Answer{Bool: &b}
		case '"':
			var s string
			if err := json.Unmarshal(trimmed, &s); err != nil {
				return nil, fmt.Errorf("answer %d: %w", i, err)
			}
			answers[i] = Answer{Text: &s}
		default:
			idx, err := decodeIndex(trimmed)
			if err != nil {
				return nil, fmt.Errorf("answer %d: %w", i, err)
			}
			answers[i] = Answer{Index: &idx}
		}
	}

	return answers, nil
}

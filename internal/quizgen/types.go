package quizgen

import "time"

// Kind discriminates the four question variants. The values are the wire
// names used in the quiz document's "type" field.
type Kind string

const (
	KindMultipleChoice Kind = "multiple-choice"
	KindTrueFalse      Kind = "true-false"
	KindShortAnswer    Kind = "short-answer"
	KindFillBlank      Kind = "fill-blank"
)

// Question is the sealed interface over the four question variants.
// Only the concrete types in this package implement it, so a type switch
// over MultipleChoice, TrueFalse, ShortAnswer and FillBlank is exhaustive.
type Question interface {
	// Kind returns the variant discriminator as it appears on the wire.
	Kind() Kind

	isQuestion()
}

// Base holds the fields shared by every question variant.
type Base struct {
	// ID is the canonical identifier assigned during normalization.
	// Opaque, unique within a quiz.
	ID string `json:"id,omitempty"`

	// Question is the prompt text shown to the learner.
	Question string `json:"question"`

	// Explanation is shown after grading. Never empty after normalization;
	// a placeholder is synthesized when the upstream document omits it.
	Explanation string `json:"explanation"`

	// LearningObjective is derived from the variant by the enhancer.
	LearningObjective string `json:"learningObjective,omitempty"`
}

// MultipleChoice asks the learner to pick one of several options.
type MultipleChoice struct {
	Base

	// Options is the ordered list of choices, at least two.
	Options []string `json:"options"`

	// Correct is the index into Options of the right answer.
	Correct int `json:"correct"`
}

func (MultipleChoice) Kind() Kind  { return KindMultipleChoice }
func (MultipleChoice) isQuestion() {}

// TrueFalse asks the learner to evaluate a statement.
type TrueFalse struct {
	Base

	Correct bool `json:"correct"`
}

func (TrueFalse) Kind() Kind  { return KindTrueFalse }
func (TrueFalse) isQuestion() {}

// ShortAnswer asks for free text, graded by keyword presence.
type ShortAnswer struct {
	Base

	// SampleAnswer is a model answer shown during review.
	SampleAnswer string `json:"sampleAnswer"`

	// KeyPoints are the keywords used for grading. At least one entry.
	KeyPoints []string `json:"keyPoints"`
}

func (ShortAnswer) Kind() Kind  { return KindShortAnswer }
func (ShortAnswer) isQuestion() {}

// FillBlank asks the learner to supply a missing word or phrase.
type FillBlank struct {
	Base

	Answer string `json:"answer"`
}

func (FillBlank) Kind() Kind  { return KindFillBlank }
func (FillBlank) isQuestion() {}

// Quiz is an ordered sequence of questions plus optional metadata.
// A quiz is immutable after normalization; the enhancer returns a new value.
type Quiz struct {
	Questions []Question `json:"questions"`
	Metadata  *Metadata  `json:"metadata,omitempty"`
}

// Metadata describes how and when a quiz was generated.
type Metadata struct {
	GeneratedAt time.Time  `json:"generatedAt"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	GradeLevel  GradeLevel `json:"gradeLevel,omitempty"`
}

// Warning records a question element dropped during normalization.
// Element-level defects are recovered locally instead of failing the
// whole document.
type Warning struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

package quizgen

import (
	"math"
	"strconv"
	"strings"
)

// Answer is a learner's response to a single question. At most one field is
// set, matching the question variant: Index for multiple-choice, Bool for
// true-false, Text for short-answer and fill-blank. The zero value means
// unanswered, distinct from a submitted zero index, false, or empty string.
type Answer struct {
	Index *int    `json:"index,omitempty"`
	Bool  *bool   `json:"bool,omitempty"`
	Text  *string `json:"text,omitempty"`
}

// Answered reports whether the learner submitted anything for this slot.
func (a Answer) Answered() bool {
	return a.Index != nil || a.Bool != nil || a.Text != nil
}

// AnswerSet maps question index (presentation order) to the learner's
// answer. Missing keys are unanswered slots.
type AnswerSet map[int]Answer

// Verdict is the per-question grading outcome plus the data needed to
// render a review.
type Verdict struct {
	Index      int    `json:"index"`
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Answered   bool   `json:"answered"`
	Expected   string `json:"expected"`
	Submitted  string `json:"submitted,omitempty"`
}

// GradeResult aggregates the verdicts for one grading request.
type GradeResult struct {
	PerQuestion []Verdict `json:"perQuestion"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	Percent     int       `json:"percent"`
}

// Grade computes per-question correctness and an aggregate score.
// Deterministic: fixed quiz and answers always produce the same result.
// An unanswered slot is always incorrect and never an error. Fails with
// *GradingError on an empty quiz so the percent computation never divides
// by zero.
func Grade(quiz *Quiz, answers AnswerSet) (*GradeResult, error) {
	if quiz == nil || len(quiz.Questions) == 0 {
		return nil, &GradingError{Kind: GradingEmptyQuiz}
	}

	result := &GradeResult{
		PerQuestion: make([]Verdict, len(quiz.Questions)),
		Total:       len(quiz.Questions),
	}

	for i, q := range quiz.Questions {
		verdict := gradeQuestion(i, q, answers[i])
		if verdict.Correct {
			result.Score++
		}
		result.PerQuestion[i] = verdict
	}

	result.Percent = int(math.Round(100 * float64(result.Score) / float64(result.Total)))
	return result, nil
}

func gradeQuestion(index int, q Question, a Answer) Verdict {
	verdict := Verdict{
		Index:    index,
		Answered: a.Answered(),
	}

	switch v := q.(type) {
	case MultipleChoice:
		verdict.QuestionID = v.ID
		verdict.Expected = v.Options[v.Correct]
		if a.Index != nil {
			verdict.Submitted = renderChoice(*a.Index, v.Options)
			verdict.Correct = *a.Index == v.Correct
		}

	case TrueFalse:
		verdict.QuestionID = v.ID
		verdict.Expected = strconv.FormatBool(v.Correct)
		if a.Bool != nil {
			verdict.Submitted = strconv.FormatBool(*a.Bool)
			verdict.Correct = *a.Bool == v.Correct
		}

	case ShortAnswer:
		verdict.QuestionID = v.ID
		verdict.Expected = v.SampleAnswer
		if a.Text != nil {
			verdict.Submitted = *a.Text
			verdict.Correct = matchShortAnswer(*a.Text, v.KeyPoints)
		}

	case FillBlank:
		verdict.QuestionID = v.ID
		verdict.Expected = v.Answer
		if a.Text != nil {
			verdict.Submitted = *a.Text
			verdict.Correct = matchFillBlank(*a.Text, v.Answer)
		}
	}

	return verdict
}

// matchShortAnswer is a keyword-presence heuristic, not natural-language
// grading: the answer is correct when it contains any key point as a
// case-insensitive substring.
func matchShortAnswer(submitted string, keyPoints []string) bool {
	submitted = strings.ToLower(strings.TrimSpace(submitted))
	if submitted == "" {
		return false
	}
	for _, kp := range keyPoints {
		kp = strings.ToLower(strings.TrimSpace(kp))
		if kp != "" && strings.Contains(submitted, kp) {
			return true
		}
	}
	return false
}

// matchFillBlank accepts an exact match or either string containing the
// other, after lower-casing and trimming both. The deliberately permissive
// three-way OR tolerates minor phrasing variance ("the World War II era"
// matches "World War II"); do not tighten it to exact match.
func matchFillBlank(submitted, expected string) bool {
	submitted = strings.ToLower(strings.TrimSpace(submitted))
	expected = strings.ToLower(strings.TrimSpace(expected))
	if submitted == "" || expected == "" {
		return false
	}
	return submitted == expected ||
		strings.Contains(submitted, expected) ||
		strings.Contains(expected, submitted)
}

// renderChoice resolves a submitted index to its option text for review
// display, falling back to the bare number when out of bounds.
func renderChoice(index int, options []string) string {
	if index >= 0 && index < len(options) {
		return options[index]
	}
	return strconv.Itoa(index)
}

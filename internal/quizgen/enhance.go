package quizgen

import "strings"

// learningObjectives maps each variant to its fixed learning objective.
var learningObjectives = map[Kind]string{
	KindMultipleChoice: "Identify and recall key concepts",
	KindTrueFalse:      "Evaluate factual statements",
	KindShortAnswer:    "Analyze and explain relationships",
	KindFillBlank:      "Remember specific details and terminology",
}

// Enhance post-processes a normalized quiz: trims prompts and options,
// ensures terminal punctuation on question text, and tags each question
// with its learning objective. Pure and total: the input quiz is not
// mutated and there is no failure path. Enhancing an already-enhanced quiz
// returns an equal value.
func Enhance(quiz *Quiz) *Quiz {
	out := &Quiz{
		Questions: make([]Question, len(quiz.Questions)),
		Metadata:  quiz.Metadata,
	}
	for i, q := range quiz.Questions {
		out.Questions[i] = enhanceQuestion(q)
	}
	return out
}

func enhanceQuestion(q Question) Question {
	switch v := q.(type) {
	case MultipleChoice:
		v.Base = enhanceBase(v.Base, v.Kind())
		v.Options = trimAll(v.Options)
		return v
	case TrueFalse:
		v.Base = enhanceBase(v.Base, v.Kind())
		return v
	case ShortAnswer:
		v.Base = enhanceBase(v.Base, v.Kind())
		v.SampleAnswer = strings.TrimSpace(v.SampleAnswer)
		v.KeyPoints = trimAll(v.KeyPoints)
		return v
	case FillBlank:
		v.Base = enhanceBase(v.Base, v.Kind())
		v.Answer = strings.TrimSpace(v.Answer)
		return v
	default:
		return q
	}
}

func enhanceBase(b Base, kind Kind) Base {
	b.Question = ensureTerminalPunctuation(strings.TrimSpace(b.Question), kind)
	b.Explanation = strings.TrimSpace(b.Explanation)
	b.LearningObjective = learningObjectives[kind]
	return b
}

// ensureTerminalPunctuation appends a terminal mark when the text lacks
// one of ". ! ?". Interrogative variants get "?", declarative ones ".".
func ensureTerminalPunctuation(text string, kind Kind) string {
	if text == "" {
		return text
	}
	switch text[len(text)-1] {
	case '.', '!', '?':
		return text
	}
	if kind == KindMultipleChoice || kind == KindShortAnswer {
		return text + "?"
	}
	return text + "."
}

// trimAll returns a new slice with every entry trimmed. The input slice is
// left untouched so the pre-enhancement quiz stays reusable.
func trimAll(entries []string) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = strings.TrimSpace(e)
	}
	return out
}

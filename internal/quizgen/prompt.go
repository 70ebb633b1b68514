package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const systemPrompt = `You are an expert educational content creator. Generate quiz questions in valid JSON format only.`

// outputFormat shows the model one example per question variant. The field
// names here are the canonical wire shape the normalizer expects.
const outputFormat = `{
  "questions": [
    {
      "type": "multiple-choice",
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct": 2,
      "explanation": "Detailed explanation of why this answer is correct"
    },
    {
      "type": "true-false",
      "question": "Statement to evaluate",
      "correct": true,
      "explanation": "Explanation of the correct answer"
    },
    {
      "type": "short-answer",
      "question": "Question requiring explanation?",
      "sampleAnswer": "A model answer in 2-3 sentences",
      "keyPoints": ["keyword1", "keyword2", "keyword3"],
      "explanation": "What makes a good answer"
    },
    {
      "type": "fill-blank",
      "question": "The _____ occurred in _____.",
      "answer": "correct phrase or word",
      "explanation": "Context and explanation"
    }
  ]
}`

// BuildPrompt converts raw content and generation options into the single
// instruction string sent to the completion provider. Pure: identical inputs
// produce identical prompts. Fails with *InvalidOptionsError when the
// content is shorter than cfg.MinContentLength or any option field is out
// of range.
//
// The prompt directs the model to respond with only the JSON document, but
// the extractor never assumes that directive is honored.
func BuildPrompt(content string, opts GenerationOptions, cfg Config) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	if utf8.RuneCountInString(strings.TrimSpace(content)) < cfg.MinContentLength {
		return "", &InvalidOptionsError{
			Field:  "content",
			Reason: fmt.Sprintf("must be at least %d characters long", cfg.MinContentLength),
		}
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly %d diverse quiz questions from the following content.\n\n", opts.NumQuestions)

	b.WriteString("CONTENT:\n")
	b.WriteString(content)
	b.WriteString("\n\n")

	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- Number of questions: %d\n", opts.NumQuestions)
	fmt.Fprintf(&b, "- Difficulty level: %s\n", opts.Difficulty)
	fmt.Fprintf(&b, "- Subject area: %s\n", opts.Subject)
	fmt.Fprintf(&b, "- Grade level: %s\n", opts.GradeLevel)
	b.WriteString("- Question types: mix of multiple-choice, true-false, short-answer, and fill-blank\n")
	b.WriteString("- Each question must test important concepts from the content\n")
	b.WriteString("- Provide clear, educational explanations\n\n")

	b.WriteString("OUTPUT FORMAT (MUST BE VALID JSON):\n")
	b.WriteString(outputFormat)
	b.WriteString("\n\n")

	b.WriteString("IMPORTANT:\n")
	b.WriteString("- Return ONLY valid JSON, no other text\n")
	b.WriteString("- Ensure all questions are directly based on the provided content\n")
	b.WriteString("- Make questions challenging but fair\n")
	b.WriteString("- Distribute question types evenly\n")
	b.WriteString("- Test different cognitive levels (recall, understanding, application, analysis)")

	return b.String(), nil
}

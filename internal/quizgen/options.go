package quizgen

import "fmt"

// Difficulty is the requested difficulty level for a generated quiz.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyMixed        Difficulty = "mixed"
)

// GradeLevel is the target audience for a generated quiz.
type GradeLevel string

const (
	GradeElementary GradeLevel = "elementary"
	GradeMiddle     GradeLevel = "middle"
	GradeHigh       GradeLevel = "high"
	GradeCollege    GradeLevel = "college"
)

// GenerationOptions are the caller-supplied parameters for quiz generation.
// Invalid values are rejected before any call to the completion provider.
type GenerationOptions struct {
	NumQuestions int        `json:"numQuestions"`
	Difficulty   Difficulty `json:"difficulty"`
	Subject      string     `json:"subject"`
	GradeLevel   GradeLevel `json:"gradeLevel"`
}

const (
	minQuestions = 1
	maxQuestions = 50
)

// Validate checks every field against its range or enum constraint.
// Returns *InvalidOptionsError on the first violation.
func (o GenerationOptions) Validate() error {
	if o.NumQuestions < minQuestions || o.NumQuestions > maxQuestions {
		return &InvalidOptionsError{
			Field:  "numQuestions",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", minQuestions, maxQuestions, o.NumQuestions),
		}
	}

	switch o.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyMixed:
	default:
		return &InvalidOptionsError{
			Field:  "difficulty",
			Reason: fmt.Sprintf("unknown difficulty %q", o.Difficulty),
		}
	}

	switch o.GradeLevel {
	case GradeElementary, GradeMiddle, GradeHigh, GradeCollege:
	default:
		return &InvalidOptionsError{
			Field:  "gradeLevel",
			Reason: fmt.Sprintf("unknown grade level %q", o.GradeLevel),
		}
	}

	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/FVTVLIX/Quiz-Whiz/internal/llm"
	"github.com/FVTVLIX/Quiz-Whiz/internal/quizgen"
	"github.com/FVTVLIX/Quiz-Whiz/internal/store"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a quiz from a text file or stdin",
	Long: `Generate a quiz from study material and print it as JSON.

Reads content from the given file, or from stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readContent(args)
		if err != nil {
			return err
		}

		opts := quizgen.GenerationOptions{}
		opts.NumQuestions, _ = cmd.Flags().GetInt("questions")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		opts.Difficulty = quizgen.Difficulty(difficulty)
		gradeLevel, _ := cmd.Flags().GetString("grade-level")
		opts.GradeLevel = quizgen.GradeLevel(gradeLevel)
		opts.Subject, _ = cmd.Flags().GetString("subject")

		ctx := cmd.Context()

		// Telemetry is best-effort for one-shot runs; a missing database
		// never blocks generation.
		var events store.EventRepo
		if dbPath, err := resolveDBPath(cmd); err == nil {
			if st, err := store.Open(dbPath); err == nil {
				defer st.Close()
				events = st.EventRepo()
			}
		}

		llmCfg := llm.ConfigFromEnv()
		if err := llmCfg.Validate(); err != nil {
			return err
		}
		provider, err := llm.NewProvider(ctx, llmCfg, events)
		if err != nil {
			return fmt.Errorf("build provider: %w", err)
		}

		svc := quizgen.NewService(provider, quizgen.DefaultConfig())
		result, err := svc.Generate(ctx, string(content), opts)
		if err != nil {
			return err
		}

		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: question %d dropped: %s\n", w.Index, w.Reason)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Quiz)
	},
}

func init() {
	generateCmd.Flags().Int("questions", 5, "Number of questions to generate (1-50)")
	generateCmd.Flags().String("difficulty", "mixed", "Difficulty: beginner, intermediate, advanced, mixed")
	generateCmd.Flags().String("grade-level", "high", "Audience: elementary, middle, high, college")
	generateCmd.Flags().String("subject", "", "Subject hint for the prompt")
}

func readContent(args []string) ([]byte, error) {
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", args[0], err)
		}
		return content, nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return content, nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/FVTVLIX/Quiz-Whiz/internal/llm"
	"github.com/FVTVLIX/Quiz-Whiz/internal/quizgen"
	"github.com/FVTVLIX/Quiz-Whiz/internal/server"
	"github.com/FVTVLIX/Quiz-Whiz/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the quiz generation API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides QUIZWHIZ_ADDR env var)")
}

// runServe opens the store, builds the provider and service, and serves
// the HTTP API until interrupted.
func runServe(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Completion provider not configured:", err)
		return err
	}
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
	if err != nil {
		return fmt.Errorf("build provider: %w", err)
	}

	svc := quizgen.NewService(provider, quizgen.DefaultConfig())

	srvCfg := server.ConfigFromEnv()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		srvCfg.Addr = addr
	}
	srvCfg.Provider = llmCfg.Provider
	srvCfg.ProviderConfigured = llmCfg.Validate() == nil
	return server.Run(svc, srvCfg)
}

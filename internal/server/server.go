// Package server exposes the generation and grading pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/FVTVLIX/Quiz-Whiz/internal/quizgen"
)

// Config holds HTTP server settings. Provider and ProviderConfigured
// describe the completion backend for the health endpoint.
type Config struct {
	Addr           string
	AllowedOrigins []string
	RequestTimeout time.Duration

	Provider           string
	ProviderConfigured bool
}

// DefaultConfig returns server settings suitable for local use.
func DefaultConfig() Config {
	return Config{
		Addr:           ":3000",
		AllowedOrigins: []string{"http://localhost:3000"},
		RequestTimeout: 2 * time.Minute,
	}
}

// ConfigFromEnv builds a Config from QUIZWHIZ_ADDR and
// QUIZWHIZ_ALLOWED_ORIGIN, falling back to defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if addr := os.Getenv("QUIZWHIZ_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if origin := os.Getenv("QUIZWHIZ_ALLOWED_ORIGIN"); origin != "" {
		cfg.AllowedOrigins = []string{origin}
	}
	return cfg
}

// NewRouter assembles the API router. The generation timeout is generous;
// completion calls routinely take tens of seconds.
func NewRouter(svc *quizgen.Service, cfg Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/api/health", HealthHandler(cfg))
	r.Post("/api/generate-quiz", GenerateQuizHandler(svc))
	r.Post("/api/grade", GradeHandler())

	return r
}

// Run serves the router until SIGINT/SIGTERM, then shuts down gracefully.
func Run(svc *quizgen.Service, cfg Config) error {
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewRouter(svc, cfg),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	log.Print("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

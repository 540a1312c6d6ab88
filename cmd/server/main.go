package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluentband/backend/internal/api"
	"github.com/fluentband/backend/internal/audio"
	"github.com/fluentband/backend/internal/domain/question"
	"github.com/fluentband/backend/internal/domain/writingprompt"
	"github.com/fluentband/backend/internal/evallog"
	"github.com/fluentband/backend/internal/evaluation"
	"github.com/fluentband/backend/internal/infrastructure/config"
	"github.com/fluentband/backend/internal/service"
	"github.com/fluentband/backend/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()

	if n, err := db.SeedQuestions(ctx, question.DefaultBank()); err != nil {
		logger.Error("failed to seed questions", "error", err)
		os.Exit(1)
	} else if n > 0 {
		logger.Info("seeded question bank", "count", n)
	}
	if n, err := db.SeedWritingPrompts(ctx, writingprompt.DefaultPrompts()); err != nil {
		logger.Error("failed to seed writing prompts", "error", err)
		os.Exit(1)
	} else if n > 0 {
		logger.Info("seeded writing prompts", "count", n)
	}

	evaluator, err := evaluation.NewFromSettings(ctx, evaluation.ProviderSettings{
		Provider:      cfg.Provider,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiModel:   cfg.GeminiModel,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		logger.Error("failed to configure evaluation provider", "error", err)
		os.Exit(1)
	}

	assessSvc := service.NewAssessmentService(
		db, evaluator, audio.TimingAnalyzer{},
		evallog.New(cfg.EvalLogDir), logger, cfg.Workers,
	)
	defer assessSvc.Close()

	handler := api.NewHandler(db, assessSvc, evaluator, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      120 * time.Second, // provider calls can be slow
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server",
		"address", cfg.ServerAddress,
		"provider", evaluator.ProviderName(),
		"model", evaluator.ModelName(),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

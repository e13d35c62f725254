package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/s155003/Budgetly/src/ai"
	"github.com/s155003/Budgetly/src/api"
	"github.com/s155003/Budgetly/src/cache"
	"github.com/s155003/Budgetly/src/config"
	"github.com/s155003/Budgetly/src/db"
	"github.com/s155003/Budgetly/src/logger"
	"github.com/s155003/Budgetly/src/util"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		// The logger itself is misconfigured, fall back to a default one to report it.
		log = zap.Must(zap.NewProduction())
		log.Fatal("Logger setup failed", zap.Error(err))
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	conn, dialect, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	defer conn.Close()
	log.Info("Database ready", zap.String("dialect", string(dialect)))

	lookups, err := cache.New()
	if err != nil {
		log.Fatal("Cache setup failed", zap.Error(err))
	}
	defer lookups.Close()

	advisor, err := newAdvisor(ctx, cfg)
	if err != nil {
		log.Fatal("AI client setup failed", zap.Error(err))
	}
	if !advisor.Configured() {
		log.Warn("No AI API key configured, AI endpoints will answer with fallbacks", zap.String("provider", cfg.AIProvider))
	}

	tokens := util.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	router := api.NewRouter(cfg, conn, tokens, lookups, advisor, log)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("API server running", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

// newAdvisor picks the completion provider. Without an API key the advisor is
// returned unconfigured rather than failing startup.
func newAdvisor(ctx context.Context, cfg config.Config) (*ai.Advisor, error) {
	if cfg.AIAPIKey() == "" {
		return ai.NewAdvisor(nil), nil
	}

	switch cfg.AIProvider {
	case "gemini":
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.AIModel, cfg.AITimeout)
		if err != nil {
			return nil, err
		}
		return ai.NewAdvisor(client), nil
	default:
		return ai.NewAdvisor(ai.NewOpenAIClient(ai.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.AIModel,
			Timeout: cfg.AITimeout,
		})), nil
	}
}

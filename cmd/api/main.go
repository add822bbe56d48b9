package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"hr-insights-go/internal/analytics"
	"hr-insights-go/internal/api"
	"hr-insights-go/internal/config"
	"hr-insights-go/internal/genai"
	"hr-insights-go/internal/logger"
	"hr-insights-go/internal/store"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "hr-insights-go").Info("starting service")

	cfg := config.FromEnv()

	db, err := store.Open(cfg.DBPath, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open backing store")
	}
	defer db.Close()

	engine := analytics.New(db, log)

	// Initial load. The service still starts on failure or an empty table;
	// "not ready" stays visible through /status until a reload succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	n, err := engine.Load(ctx)
	cancel()
	switch {
	case err != nil:
		log.WithError(err).Warn("initial load failed, starting without data")
	case n == 0:
		log.Warn("initial load found no feedback rows")
	default:
		log.WithField("records", n).Info("initial load complete")
	}

	ai := genai.New(genai.Config{
		APIKey:   cfg.GeminiAPIKey,
		Model:    cfg.GeminiModel,
		Endpoint: cfg.GeminiEndpoint,
	}, log)
	if ai == nil {
		log.Warn("no Gemini API key configured, /analyze will degrade")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewServer(engine, ai, log, cfg.LoadTimeout, cfg.AITimeout).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

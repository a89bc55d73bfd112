package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/theroslabs/vitals-tracker/internal/api"
	"github.com/theroslabs/vitals-tracker/internal/bot"
	"github.com/theroslabs/vitals-tracker/internal/bot/state"
	"github.com/theroslabs/vitals-tracker/internal/config"
	"github.com/theroslabs/vitals-tracker/internal/database"
	"github.com/theroslabs/vitals-tracker/internal/domain"
	"github.com/theroslabs/vitals-tracker/internal/logger"
	"github.com/theroslabs/vitals-tracker/internal/repository"
	"github.com/theroslabs/vitals-tracker/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting vitals tracker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewMeasurementRepository(db)
	measurementSvc := services.NewMeasurementService(repo)
	summarySvc := services.NewSummaryService(repo)

	// The rewriter stays nil when no provider key is configured; the
	// insight path then serves the deterministic narrative only.
	var rewriter domain.NarrativeRewriter
	if cfg.AI.Enabled() {
		aiSvc, err := services.NewAIService(ctx, cfg.AI.GeminiAPIKey, cfg.AI.OpenAIAPIKey)
		if err != nil {
			logger.Warn("AI rewriter unavailable, continuing without it", "error", err)
		} else {
			rewriter = aiSvc
			logger.Info("AI narrative rewriter configured")
		}
	}
	insightSvc := services.NewInsightService(summarySvc, rewriter, cfg.AI.Timeout)

	if cfg.TelegramToken != "" {
		states, err := botStates(cfg)
		if err != nil {
			logger.Fatalf("Failed to set up bot state store: %v", err)
		}
		defer states.Close()

		telegramBot, err := bot.NewBot(cfg.TelegramToken, measurementSvc, insightSvc, states)
		if err != nil {
			logger.Fatalf("Failed to create bot: %v", err)
		}
		go func() {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Bot stopped with error", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.SetupRouter(measurementSvc, insightSvc),
	}
	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
}

func botStates(cfg *config.Config) (state.Manager, error) {
	if cfg.Redis.Enabled() {
		return state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
	}
	return state.NewMemoryManager(), nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"dekut-chatbot/internal/bot"
	"dekut-chatbot/internal/bundle"
	"dekut-chatbot/internal/config"
	"dekut-chatbot/internal/corpus"
	"dekut-chatbot/internal/server"
	"dekut-chatbot/internal/telegram"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// The corpus supplies the response table; serving without it is meaningless.
	c, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}

	// The model bundle must be complete and from a single training run.
	b, err := bundle.Load(cfg.Models.Dir)
	if err != nil {
		logger.Fatal("Failed to load model bundle (run the train command first)", zap.Error(err))
	}
	logger.Info("Model bundle loaded",
		zap.String("run_id", b.RunID),
		zap.Time("trained_at", b.TrainedAt),
		zap.Int("intents", b.Labels.Len()),
		zap.Int("vocabulary", b.Vectorizer.Dimension()))

	engine := bot.NewEngine(b, c.Responses(), cfg.Bot.ConfidenceThreshold, nil, logger)

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run Telegram bot in a goroutine (if enabled)
	tgBot, err := telegram.NewBot(cfg, engine, logger)
	if err != nil {
		logger.Warn("Failed to initialize Telegram bot, continuing without it", zap.Error(err))
		tgBot = nil
	}
	if tgBot != nil {
		go func() {
			if err := tgBot.Start(ctx); err != nil {
				logger.Error("Telegram bot failed", zap.Error(err))
			}
		}()
	}

	srv := server.NewServer(engine, logger)
	go func() {
		if err := srv.Run(cfg.Server.Port); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Application stopped.")
}

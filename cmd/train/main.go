package main

import (
	"go.uber.org/zap"

	"dekut-chatbot/internal/config"
	"dekut-chatbot/internal/corpus"
	"dekut-chatbot/internal/trainer"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	c, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}

	result, err := trainer.Train(c, trainer.Config{
		MaxFeatures:  cfg.Training.MaxFeatures,
		MaxIter:      cfg.Training.MaxIter,
		LearningRate: cfg.Training.LearningRate,
		TestSize:     cfg.Training.TestSize,
		Seed:         cfg.Training.Seed,
	}, logger)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}

	// The bundle is saved whatever the accuracy; quality is an operator
	// decision, not a persistence gate.
	if err := result.Bundle.Save(cfg.Models.Dir); err != nil {
		logger.Fatal("Failed to save model bundle", zap.Error(err))
	}

	logger.Info("Model bundle saved",
		zap.String("dir", cfg.Models.Dir),
		zap.String("run_id", result.Bundle.RunID),
		zap.Float64("accuracy", result.Accuracy))
}

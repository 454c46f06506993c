package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"dekut-chatbot/internal/config"
	"dekut-chatbot/internal/corpus"
	"dekut-chatbot/internal/repository"
	"dekut-chatbot/internal/scraper"
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

	if len(cfg.Scraper.Pages) == 0 {
		logger.Fatal("No scraper pages configured")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Database for the harvested records
	db, err := repository.NewSQLiteDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	repository.MigrateDB(db, logger)
	faqRepo := repository.NewFAQRepository(db, logger)

	s, err := scraper.NewScraper(cfg.Scraper.Headless, logger)
	if err != nil {
		logger.Fatal("Failed to start browser", zap.Error(err))
	}
	defer s.Close()

	faqs, err := s.ScrapeAll(ctx, cfg)
	if err != nil {
		logger.Fatal("Scraping aborted", zap.Error(err))
	}
	if len(faqs) == 0 {
		logger.Warn("No FAQs scraped; corpus left unchanged")
		return
	}

	// Re-scraped pages replace their previous harvest.
	for _, page := range cfg.Scraper.Pages {
		if err := faqRepo.DeleteBySource(page.Path); err != nil {
			logger.Fatal("Failed to clear previous records", zap.Error(err))
		}
	}
	if err := faqRepo.SaveFAQs(faqs); err != nil {
		logger.Fatal("Failed to store scraped FAQs", zap.Error(err))
	}

	// Merge everything stored so far into the corpus file as one intent.
	stored, err := faqRepo.GetAllFAQs()
	if err != nil {
		logger.Fatal("Failed to read stored FAQs", zap.Error(err))
	}

	c, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}
	c.Merge(scraper.BuildIntent(stored))
	if err := c.Save(cfg.Corpus.Path); err != nil {
		logger.Fatal("Failed to save corpus", zap.Error(err))
	}

	logger.Info("Corpus updated with scraped FAQs",
		zap.Int("scraped_now", len(faqs)),
		zap.Int("total_stored", len(stored)),
		zap.Int("intents", len(c.Intents)))
}

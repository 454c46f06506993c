package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"dekut-chatbot/internal/scraper"
)

// FAQRepository stores scraped FAQ records between scraper runs, so a failed
// website fetch never loses previously harvested data.
type FAQRepository interface {
	SaveFAQs(faqs []scraper.FAQ) error
	GetAllFAQs() ([]scraper.FAQ, error)
	DeleteBySource(source string) error
}

type faqRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewFAQRepository creates a repository over an open database.
func NewFAQRepository(db *sqlx.DB, logger *zap.Logger) FAQRepository {
	return &faqRepository{db: db, logger: logger}
}

// SaveFAQs inserts a batch of scraped records in one transaction.
func (r *faqRepository) SaveFAQs(faqs []scraper.FAQ) error {
	if len(faqs) == 0 {
		return nil
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, faq := range faqs {
		_, err := tx.Exec(
			`INSERT INTO faqs (question, answer, source, scraped_at) VALUES (?, ?, ?, ?)`,
			faq.Question, faq.Answer, faq.Source, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert FAQ: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit FAQs: %w", err)
	}

	r.logger.Info("Saved scraped FAQs", zap.Int("count", len(faqs)))
	return nil
}

// GetAllFAQs returns every stored record, newest first.
func (r *faqRepository) GetAllFAQs() ([]scraper.FAQ, error) {
	var faqs []scraper.FAQ
	err := r.db.Select(&faqs, `SELECT question, answer, source FROM faqs ORDER BY scraped_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query FAQs: %w", err)
	}
	return faqs, nil
}

// DeleteBySource removes records for one page, so a re-scrape replaces its
// previous harvest instead of duplicating it.
func (r *faqRepository) DeleteBySource(source string) error {
	_, err := r.db.Exec(`DELETE FROM faqs WHERE source = ?`, source)
	if err != nil {
		return fmt.Errorf("failed to delete FAQs for source %s: %w", source, err)
	}
	return nil
}

package scraper

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"dekut-chatbot/internal/config"
	"dekut-chatbot/internal/corpus"
)

// ScrapedIntentTag is the tag under which harvested FAQs are merged into the
// corpus.
const ScrapedIntentTag = "scraped_faqs"

// Scraper drives a headless browser over the configured university pages and
// extracts FAQ blocks from them.
type Scraper struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// NewScraper creates and initializes a new scraper instance.
func NewScraper(headless bool, logger *zap.Logger) (*Scraper, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx)

	return &Scraper{
		ctx: ctx,
		cancel: func() {
			cancelCtx()
			cancelAlloc()
		},
		logger: logger,
	}, nil
}

// Close closes the browser and releases resources.
func (s *Scraper) Close() {
	s.cancel()
}

// FetchPage navigates to a URL and returns the rendered document.
func (s *Scraper) FetchPage(url string) (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	var doc string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &doc),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	return doc, nil
}

// ScrapeAll visits every configured page, pausing between requests, and
// returns the combined FAQ list.
func (s *Scraper) ScrapeAll(ctx context.Context, cfg *config.Config) ([]FAQ, error) {
	var all []FAQ
	delay := time.Duration(cfg.Scraper.DelaySeconds) * time.Second

	for i, page := range cfg.Scraper.Pages {
		url := cfg.Scraper.BaseURL + page.Path
		s.logger.Info("Scraping page", zap.String("url", url))

		doc, err := s.FetchPage(url)
		if err != nil {
			s.logger.Error("Failed to fetch page, skipping", zap.String("url", url), zap.Error(err))
			continue
		}

		faqs, err := ExtractFAQs(doc, page.Keywords, page.Path)
		if err != nil {
			s.logger.Error("Failed to parse page, skipping", zap.String("url", url), zap.Error(err))
			continue
		}

		s.logger.Info("Extracted FAQs", zap.String("page", page.Path), zap.Int("count", len(faqs)))
		all = append(all, faqs...)

		if i < len(cfg.Scraper.Pages)-1 {
			select {
			case <-ctx.Done():
				return all, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return all, nil
}

// BuildIntent converts scraped FAQs into one trainable intent. Each question
// contributes a few phrasing variants as patterns and its answer as a
// response; duplicate patterns are collapsed.
func BuildIntent(faqs []FAQ) corpus.Intent {
	intent := corpus.Intent{Tag: ScrapedIntentTag}

	seen := make(map[string]struct{})
	addPattern := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		intent.Patterns = append(intent.Patterns, p)
	}

	for _, faq := range faqs {
		topic := strings.ToLower(strings.TrimSuffix(faq.Question, "?"))
		addPattern(faq.Question)
		addPattern(strings.ToLower(faq.Question))
		addPattern("what is " + topic)
		addPattern("tell me about " + topic)
		intent.Responses = append(intent.Responses, faq.Answer)
	}

	sort.Strings(intent.Patterns)
	return intent
}

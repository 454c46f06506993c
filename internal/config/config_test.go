package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
server:
  port: "9090"
scraper:
  pages:
    - path: "/admissions"
      keywords: ["admission"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Fatalf("port=%q, want 9090", cfg.Server.Port)
	}
	if cfg.Corpus.Path != "intents.json" {
		t.Fatalf("corpus path default=%q", cfg.Corpus.Path)
	}
	if cfg.Models.Dir != "models" {
		t.Fatalf("models dir default=%q", cfg.Models.Dir)
	}
	if cfg.Scraper.BaseURL != "https://dkut.ac.ke" {
		t.Fatalf("base url default=%q", cfg.Scraper.BaseURL)
	}
	if cfg.Scraper.DelaySeconds != 1 {
		t.Fatalf("delay default=%d", cfg.Scraper.DelaySeconds)
	}
	if len(cfg.Scraper.Pages) != 1 || cfg.Scraper.Pages[0].Path != "/admissions" {
		t.Fatalf("pages=%+v", cfg.Scraper.Pages)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestLoadConfigExpandsTelegramToken(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "secret-token")

	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
telegram:
  enabled: true
  bot_token: "${TEST_BOT_TOKEN}"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.BotToken != "secret-token" {
		t.Fatalf("token=%q, want expanded env value", cfg.Telegram.BotToken)
	}
}

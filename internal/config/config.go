package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Page is one website page the scraper visits, with the heading keywords that
// mark FAQ-worthy sections on it.
type Page struct {
	Path     string   `yaml:"path"`
	Keywords []string `yaml:"keywords"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Corpus struct {
		Path string `yaml:"path"`
	} `yaml:"corpus"`

	Models struct {
		Dir string `yaml:"dir"`
	} `yaml:"models"`

	Bot struct {
		ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	} `yaml:"bot"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Scraper struct {
		BaseURL      string `yaml:"base_url"`
		Headless     bool   `yaml:"headless"`
		DelaySeconds int64  `yaml:"delay_seconds"`
		Pages        []Page `yaml:"pages"`
	} `yaml:"scraper"`

	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token"`
	} `yaml:"telegram"`

	Training struct {
		MaxFeatures  int     `yaml:"max_features"`
		MaxIter      int     `yaml:"max_iter"`
		LearningRate float64 `yaml:"learning_rate"`
		TestSize     float64 `yaml:"test_size"`
		Seed         int64   `yaml:"seed"`
	} `yaml:"training"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Set defaults
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}
	if config.Corpus.Path == "" {
		config.Corpus.Path = "intents.json"
	}
	if config.Models.Dir == "" {
		config.Models.Dir = "models"
	}
	if config.Database.Path == "" {
		config.Database.Path = "./data/chatbot.db"
	}
	if config.Scraper.BaseURL == "" {
		config.Scraper.BaseURL = "https://dkut.ac.ke"
	}
	if config.Scraper.DelaySeconds == 0 {
		config.Scraper.DelaySeconds = 1
	}

	config.Telegram.BotToken = os.ExpandEnv(config.Telegram.BotToken)

	return config, nil
}

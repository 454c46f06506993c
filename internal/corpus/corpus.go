package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Intent is one named category of user queries: example patterns used for
// training and the canned responses the bot may answer with.
type Intent struct {
	Tag       string   `json:"tag"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses"`
}

// Corpus is the full intent definition file (intents.json).
type Corpus struct {
	Intents []Intent `json:"intents"`
}

// Load reads and validates a corpus file.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	c := &Corpus{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid corpus: %w", err)
	}

	return c, nil
}

func (c *Corpus) validate() error {
	if len(c.Intents) == 0 {
		return fmt.Errorf("corpus contains no intents")
	}

	seen := make(map[string]struct{}, len(c.Intents))
	for _, intent := range c.Intents {
		if intent.Tag == "" {
			return fmt.Errorf("intent with empty tag")
		}
		if _, ok := seen[intent.Tag]; ok {
			return fmt.Errorf("duplicate intent tag %q", intent.Tag)
		}
		seen[intent.Tag] = struct{}{}

		if len(intent.Patterns) == 0 {
			return fmt.Errorf("intent %q has no patterns", intent.Tag)
		}
		if len(intent.Responses) == 0 {
			return fmt.Errorf("intent %q has no responses", intent.Tag)
		}
	}
	return nil
}

// Save writes the corpus back to disk as indented JSON.
func (c *Corpus) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	return nil
}

// TrainingData flattens the corpus into parallel (pattern, tag) slices.
// Patterns are lower-cased here; the vectorizer expects pre-lowered text.
func (c *Corpus) TrainingData() (patterns []string, tags []string) {
	for _, intent := range c.Intents {
		for _, p := range intent.Patterns {
			patterns = append(patterns, strings.ToLower(p))
			tags = append(tags, intent.Tag)
		}
	}
	return patterns, tags
}

// Responses builds the tag -> responses lookup used at serving time.
func (c *Corpus) Responses() map[string][]string {
	table := make(map[string][]string, len(c.Intents))
	for _, intent := range c.Intents {
		table[intent.Tag] = intent.Responses
	}
	return table
}

// Merge adds an intent to the corpus, replacing any existing intent with the
// same tag. Used by the scraper to fold harvested FAQs into the corpus.
func (c *Corpus) Merge(intent Intent) {
	for i := range c.Intents {
		if c.Intents[i].Tag == intent.Tag {
			c.Intents[i] = intent
			return
		}
	}
	c.Intents = append(c.Intents, intent)
}

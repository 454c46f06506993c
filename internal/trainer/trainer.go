package trainer

import (
	"fmt"

	"go.uber.org/zap"

	"dekut-chatbot/internal/bundle"
	"dekut-chatbot/internal/classifier"
	"dekut-chatbot/internal/corpus"
	"dekut-chatbot/internal/label"
	"dekut-chatbot/internal/vectorizer"
)

// Config controls one training run. Zero values fall back to the classifier
// and vectorizer defaults.
type Config struct {
	MaxFeatures  int
	MaxIter      int
	LearningRate float64
	TestSize     float64
	Seed         int64
}

// Result is a completed training run: the bundle to persist plus the
// diagnostics reported to the operator.
type Result struct {
	Bundle    *bundle.Bundle
	Accuracy  float64
	Converged bool
	Samples   int
	Intents   int
}

// Train fits the full pipeline on a corpus: vectorizer and label codec over
// the pattern/tag pairs, then a softmax regression classifier over the encoded
// samples. Training always yields a bundle, whatever the achieved accuracy;
// quality gating is left to the operator reading the diagnostics.
func Train(c *corpus.Corpus, cfg Config, logger *zap.Logger) (*Result, error) {
	patterns, tags := c.TrainingData()
	if len(patterns) == 0 {
		return nil, fmt.Errorf("corpus has no training patterns")
	}

	vec := vectorizer.New(cfg.MaxFeatures)
	if err := vec.Fit(patterns); err != nil {
		return nil, fmt.Errorf("failed to fit vectorizer: %w", err)
	}

	codec := label.Fit(tags)

	samples := make([][]float64, len(patterns))
	labels := make([]int, len(patterns))
	for i, p := range patterns {
		samples[i] = vec.Transform(p)
		code, err := codec.Encode(tags[i])
		if err != nil {
			return nil, fmt.Errorf("failed to encode tag %q: %w", tags[i], err)
		}
		labels[i] = code
	}

	trained, err := classifier.Train(samples, labels, codec.Len(), classifier.Options{
		MaxIter:      cfg.MaxIter,
		LearningRate: cfg.LearningRate,
		TestSize:     cfg.TestSize,
		Seed:         cfg.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to train classifier: %w", err)
	}

	if !trained.Converged {
		logger.Warn("Classifier did not converge within iteration limit; saving partially optimized model anyway",
			zap.Int("iterations", trained.Iterations))
	}

	logger.Info("Training complete",
		zap.Int("samples", len(samples)),
		zap.Int("intents", codec.Len()),
		zap.Int("vocabulary", vec.Dimension()),
		zap.Float64("accuracy", trained.Accuracy))

	return &Result{
		Bundle:    bundle.New(vec, codec, trained.Model),
		Accuracy:  trained.Accuracy,
		Converged: trained.Converged,
		Samples:   len(samples),
		Intents:   codec.Len(),
	}, nil
}

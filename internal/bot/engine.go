package bot

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dekut-chatbot/internal/bundle"
)

// DefaultThreshold is the minimum confidence (strictly exceeded) before a
// predicted intent's responses are trusted over the fallback list.
const DefaultThreshold = 0.5

// ReplyKind tags the outcome of handling one query.
type ReplyKind int

const (
	// ReplyPrompt asks the user to type something; the classifier never ran.
	ReplyPrompt ReplyKind = iota
	// ReplyAnswer is a response drawn from the predicted intent.
	ReplyAnswer
	// ReplyFallback is a generic response for untrusted or failed predictions.
	ReplyFallback
)

// Reply is the engine's answer to one query. Intent and Confidence are only
// meaningful for ReplyAnswer and ReplyFallback replies that reached the
// classifier.
type Reply struct {
	Kind       ReplyKind
	Text       string
	Intent     string
	Confidence float64
}

const (
	promptText  = "Please type a question."
	troubleText = "I'm having trouble understanding. Please try again."
)

// Engine answers free-text queries with a trained model bundle and the
// corpus response table. The bundle is read-only after construction, so one
// engine is safe to share across concurrent requests.
type Engine struct {
	bundle    *bundle.Bundle
	responses map[string][]string
	selector  *Selector
	threshold float64
	logger    *zap.Logger
}

// NewEngine builds an engine around a loaded bundle. threshold <= 0 selects
// the default. The sampler may be nil for production randomness.
func NewEngine(b *bundle.Bundle, responses map[string][]string, threshold float64, sampler Sampler, logger *zap.Logger) *Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Engine{
		bundle:    b,
		responses: responses,
		selector:  NewSelector(sampler),
		threshold: threshold,
		logger:    logger,
	}
}

// Predict classifies one query, returning the best intent and its confidence.
// A query that encodes to the zero vector still yields a prediction; the
// classifier's bias terms decide it.
func (e *Engine) Predict(query string) (string, float64, error) {
	vec := e.bundle.Vectorizer.Transform(strings.ToLower(query))

	code, confidence, err := e.bundle.Model.Predict(vec)
	if err != nil {
		return "", 0, fmt.Errorf("prediction failed: %w", err)
	}

	intent, err := e.bundle.Labels.Decode(code)
	if err != nil {
		// A code the codec cannot decode means the bundle is inconsistent;
		// surface it as an inference failure rather than crashing the caller.
		return "", 0, fmt.Errorf("failed to decode predicted class %d: %w", code, err)
	}
	return intent, confidence, nil
}

// Respond handles one user message end to end. It never returns an error:
// empty input becomes a prompt and any inference failure degrades to a
// fallback reply.
func (e *Engine) Respond(query string) Reply {
	if strings.TrimSpace(query) == "" {
		return Reply{Kind: ReplyPrompt, Text: promptText}
	}

	intent, confidence, err := e.Predict(query)
	if err != nil {
		e.logger.Error("Inference failed", zap.String("query", query), zap.Error(err))
		return Reply{Kind: ReplyFallback, Text: troubleText}
	}

	e.logger.Info("Predicted intent",
		zap.String("intent", intent),
		zap.Float64("confidence", confidence))

	if confidence > e.threshold {
		if responses, ok := e.responses[intent]; ok && len(responses) > 0 {
			return Reply{
				Kind:       ReplyAnswer,
				Text:       e.selector.Pick(responses),
				Intent:     intent,
				Confidence: confidence,
			}
		}
	}

	return Reply{
		Kind:       ReplyFallback,
		Text:       e.selector.Fallback(),
		Intent:     intent,
		Confidence: confidence,
	}
}

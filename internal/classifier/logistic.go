package classifier

import (
	"errors"
	"math"
)

// Model is a fitted multinomial logistic regression classifier. Weights is
// one row per class over the feature dimensions. The model is immutable after
// training; serving processes treat it as read-only.
type Model struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// NumClasses is the size of the model's output space.
func (m *Model) NumClasses() int {
	return len(m.Bias)
}

// NumFeatures is the expected feature vector length.
func (m *Model) NumFeatures() int {
	if len(m.Weights) == 0 {
		return 0
	}
	return len(m.Weights[0])
}

// Proba returns the softmax probability distribution over classes for one
// feature vector. A zero vector is fine: the bias terms dominate and the
// result is still a valid distribution.
func (m *Model) Proba(x []float64) ([]float64, error) {
	if len(x) != m.NumFeatures() {
		return nil, errors.New("feature vector dimension mismatch")
	}

	scores := make([]float64, m.NumClasses())
	for c := range m.Weights {
		s := m.Bias[c]
		for j, w := range m.Weights[c] {
			s += w * x[j]
		}
		scores[c] = s
	}
	return softmax(scores), nil
}

// Predict returns the arg-max class and its probability.
func (m *Model) Predict(x []float64) (int, float64, error) {
	probs, err := m.Proba(x)
	if err != nil {
		return 0, 0, err
	}
	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return best, probs[best], nil
}

// softmax with the usual max-shift for numeric stability.
func softmax(scores []float64) []float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}

	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

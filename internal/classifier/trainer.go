package classifier

import (
	"errors"
	"math"
	"math/rand"
)

// Options controls training. Zero values select the defaults, which mirror the
// usual logistic regression setup: 1000 iterations, 80/20 split, seed 42.
type Options struct {
	MaxIter      int
	LearningRate float64
	Tolerance    float64
	TestSize     float64
	Seed         int64
}

func (o Options) withDefaults() Options {
	if o.MaxIter <= 0 {
		o.MaxIter = 1000
	}
	if o.LearningRate <= 0 {
		o.LearningRate = 0.5
	}
	if o.Tolerance <= 0 {
		o.Tolerance = 1e-5
	}
	if o.TestSize <= 0 {
		o.TestSize = 0.2
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	return o
}

// Result reports the outcome of a training run. Accuracy is measured on the
// held-out split and is a diagnostic only; a model that failed to converge
// within the iteration limit is still returned and usable.
type Result struct {
	Model      *Model
	Accuracy   float64
	Converged  bool
	Iterations int
	TrainSize  int
	TestSize   int
}

// Train fits a softmax regression model with full-batch gradient descent on
// cross-entropy loss. The train/held-out split is shuffled with a fixed seed,
// so identical inputs always produce identical accuracy figures.
func Train(samples [][]float64, labels []int, numClasses int, opts Options) (*Result, error) {
	if len(samples) == 0 {
		return nil, errors.New("no training samples")
	}
	if len(samples) != len(labels) {
		return nil, errors.New("samples and labels length mismatch")
	}
	if numClasses < 2 {
		return nil, errors.New("need at least two classes")
	}
	for _, y := range labels {
		if y < 0 || y >= numClasses {
			return nil, errors.New("label out of range")
		}
	}
	opts = opts.withDefaults()

	// Reproducible shuffle, then hold out the tail for evaluation.
	indices := rand.New(rand.NewSource(opts.Seed)).Perm(len(samples))
	numTest := int(float64(len(samples)) * opts.TestSize)
	if numTest == 0 && len(samples) > 1 {
		numTest = 1
	}
	trainIdx := indices[:len(indices)-numTest]
	testIdx := indices[len(indices)-numTest:]
	if len(trainIdx) == 0 {
		return nil, errors.New("training split is empty")
	}

	numFeatures := len(samples[0])
	model := &Model{
		Weights: make([][]float64, numClasses),
		Bias:    make([]float64, numClasses),
	}
	for c := range model.Weights {
		model.Weights[c] = make([]float64, numFeatures)
	}

	result := &Result{
		Model:     model,
		TrainSize: len(trainIdx),
		TestSize:  len(testIdx),
	}

	prevLoss := math.Inf(1)
	for iter := 0; iter < opts.MaxIter; iter++ {
		loss := gradientStep(model, samples, labels, trainIdx, opts.LearningRate)
		result.Iterations = iter + 1
		if math.Abs(prevLoss-loss) < opts.Tolerance {
			result.Converged = true
			break
		}
		prevLoss = loss
	}

	// Fall back to the training split for the diagnostic when the corpus is
	// too small to hold anything out.
	evalIdx := testIdx
	if len(evalIdx) == 0 {
		evalIdx = trainIdx
	}
	correct := 0
	for _, i := range evalIdx {
		pred, _, err := model.Predict(samples[i])
		if err != nil {
			return nil, err
		}
		if pred == labels[i] {
			correct++
		}
	}
	result.Accuracy = float64(correct) / float64(len(evalIdx))

	return result, nil
}

// gradientStep runs one full-batch update and returns the mean cross-entropy
// loss before the update.
func gradientStep(m *Model, samples [][]float64, labels []int, idx []int, lr float64) float64 {
	numClasses := m.NumClasses()
	numFeatures := m.NumFeatures()

	gradW := make([][]float64, numClasses)
	for c := range gradW {
		gradW[c] = make([]float64, numFeatures)
	}
	gradB := make([]float64, numClasses)

	var loss float64
	for _, i := range idx {
		probs, _ := m.Proba(samples[i])
		loss += -math.Log(math.Max(probs[labels[i]], 1e-12))

		for c := 0; c < numClasses; c++ {
			delta := probs[c]
			if c == labels[i] {
				delta -= 1
			}
			gradB[c] += delta
			for j, xj := range samples[i] {
				if xj != 0 {
					gradW[c][j] += delta * xj
				}
			}
		}
	}

	n := float64(len(idx))
	for c := 0; c < numClasses; c++ {
		m.Bias[c] -= lr * gradB[c] / n
		for j := 0; j < numFeatures; j++ {
			m.Weights[c][j] -= lr * gradW[c][j] / n
		}
	}
	return loss / n
}

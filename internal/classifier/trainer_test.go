package classifier

import (
	"math"
	"reflect"
	"testing"
)

// separable two-class toy set: class 0 lives on the first axis, class 1 on
// the second.
func toyData() ([][]float64, []int) {
	samples := [][]float64{
		{1, 0}, {0.9, 0.1}, {0.8, 0}, {1, 0.2}, {0.7, 0.1},
		{0, 1}, {0.1, 0.9}, {0, 0.8}, {0.2, 1}, {0.1, 0.7},
	}
	labels := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	return samples, labels
}

func TestTrainSeparable(t *testing.T) {
	samples, labels := toyData()

	result, err := Train(samples, labels, 2, Options{})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	if result.Accuracy != 1.0 {
		t.Fatalf("accuracy=%f, want 1.0 on separable data", result.Accuracy)
	}
	if result.TrainSize+result.TestSize != len(samples) {
		t.Fatalf("split sizes %d+%d != %d", result.TrainSize, result.TestSize, len(samples))
	}

	for i, x := range samples {
		pred, conf, err := result.Model.Predict(x)
		if err != nil {
			t.Fatalf("predict: %v", err)
		}
		if pred != labels[i] {
			t.Fatalf("sample %d predicted %d, want %d", i, pred, labels[i])
		}
		if conf <= 0.5 {
			t.Fatalf("sample %d confidence %f, want > 0.5", i, conf)
		}
	}
}

func TestTrainDeterminism(t *testing.T) {
	samples, labels := toyData()

	a, err := Train(samples, labels, 2, Options{})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	b, err := Train(samples, labels, 2, Options{})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	if a.Accuracy != b.Accuracy {
		t.Fatalf("accuracy differs across identical runs: %f vs %f", a.Accuracy, b.Accuracy)
	}
	if !reflect.DeepEqual(a.Model, b.Model) {
		t.Fatalf("models differ across identical runs")
	}
}

func TestProbaDistribution(t *testing.T) {
	samples, labels := toyData()
	result, err := Train(samples, labels, 2, Options{})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	// The zero vector is valid input; the bias terms decide.
	probs, err := result.Model.Proba([]float64{0, 0})
	if err != nil {
		t.Fatalf("proba: %v", err)
	}
	var sum float64
	for _, p := range probs {
		if p < 0 || p > 1 {
			t.Fatalf("probability %f out of range", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities sum to %f, want 1", sum)
	}
}

func TestPredictDimensionMismatch(t *testing.T) {
	samples, labels := toyData()
	result, err := Train(samples, labels, 2, Options{})
	if err != nil {
		t.Fatalf("train: %v", err)
	}

	if _, _, err := result.Model.Predict([]float64{1, 2, 3}); err == nil {
		t.Fatalf("expected error for wrong feature dimension")
	}
}

func TestTrainInputValidation(t *testing.T) {
	tests := []struct {
		name       string
		samples    [][]float64
		labels     []int
		numClasses int
	}{
		{name: "no samples", samples: nil, labels: nil, numClasses: 2},
		{name: "length mismatch", samples: [][]float64{{1}}, labels: []int{0, 1}, numClasses: 2},
		{name: "one class", samples: [][]float64{{1}, {2}}, labels: []int{0, 0}, numClasses: 1},
		{name: "label out of range", samples: [][]float64{{1}, {2}}, labels: []int{0, 5}, numClasses: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Train(tt.samples, tt.labels, tt.numClasses, Options{}); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTinyCorpusStillEvaluates(t *testing.T) {
	samples := [][]float64{{1, 0}, {0, 1}, {1, 0.1}, {0.1, 1}}
	labels := []int{0, 1, 0, 1}

	result, err := Train(samples, labels, 2, Options{})
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if result.TestSize != 1 {
		t.Fatalf("test size=%d, want 1 held-out sample from four", result.TestSize)
	}
	if result.Accuracy < 0 || result.Accuracy > 1 {
		t.Fatalf("accuracy=%f out of range", result.Accuracy)
	}
}

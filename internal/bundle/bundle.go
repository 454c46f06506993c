package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"dekut-chatbot/internal/classifier"
	"dekut-chatbot/internal/label"
	"dekut-chatbot/internal/vectorizer"
)

// Artifact file names inside the models directory. The three files belong to
// one training run and only load together; a missing or mismatched file is a
// fatal startup error for the serving process.
const (
	VectorizerFile = "vectorizer.json"
	LabelsFile     = "labels.json"
	ClassifierFile = "classifier.json"
)

// Bundle is the atomic set of fitted artifacts required for inference.
// It is written once by a training run and never mutated afterwards;
// retraining produces a new bundle that replaces the old one wholesale.
type Bundle struct {
	RunID      string
	TrainedAt  time.Time
	Vectorizer *vectorizer.Vectorizer
	Labels     *label.Codec
	Model      *classifier.Model
}

// envelope wraps each artifact on disk with the run it belongs to.
type envelope struct {
	RunID     string          `json:"run_id"`
	TrainedAt time.Time       `json:"trained_at"`
	Artifact  json.RawMessage `json:"artifact"`
}

// New stamps freshly fitted artifacts with a shared run id.
func New(v *vectorizer.Vectorizer, codec *label.Codec, model *classifier.Model) *Bundle {
	return &Bundle{
		RunID:      uuid.NewString(),
		TrainedAt:  time.Now().UTC(),
		Vectorizer: v,
		Labels:     codec,
		Model:      model,
	}
}

// Save writes the three artifact files into dir, creating it if needed.
func (b *Bundle) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create models directory: %w", err)
	}

	files := map[string]interface{}{
		VectorizerFile: b.Vectorizer,
		LabelsFile:     b.Labels,
		ClassifierFile: b.Model,
	}
	for name, artifact := range files {
		if err := b.writeArtifact(filepath.Join(dir, name), artifact); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bundle) writeArtifact(path string, artifact interface{}) error {
	raw, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	data, err := json.Marshal(envelope{RunID: b.RunID, TrainedAt: b.TrainedAt, Artifact: raw})
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Load reads the three artifacts from dir and verifies they come from the same
// training run and are dimensionally consistent with each other.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{
		Vectorizer: &vectorizer.Vectorizer{},
		Labels:     &label.Codec{},
		Model:      &classifier.Model{},
	}

	runs := make(map[string]string, 3)
	files := map[string]interface{}{
		VectorizerFile: b.Vectorizer,
		LabelsFile:     b.Labels,
		ClassifierFile: b.Model,
	}
	for name, artifact := range files {
		env, err := readArtifact(filepath.Join(dir, name), artifact)
		if err != nil {
			return nil, err
		}
		runs[name] = env.RunID
		b.RunID = env.RunID
		b.TrainedAt = env.TrainedAt
	}

	for name, run := range runs {
		if run != b.RunID {
			return nil, fmt.Errorf("bundle artifacts come from different training runs (%s: %s vs %s)", name, run, b.RunID)
		}
	}

	if b.Model.NumFeatures() != b.Vectorizer.Dimension() {
		return nil, fmt.Errorf("bundle is inconsistent: classifier expects %d features, vectorizer produces %d",
			b.Model.NumFeatures(), b.Vectorizer.Dimension())
	}
	if b.Model.NumClasses() != b.Labels.Len() {
		return nil, fmt.Errorf("bundle is inconsistent: classifier has %d classes, label codec has %d",
			b.Model.NumClasses(), b.Labels.Len())
	}

	return b, nil
}

func readArtifact(path string, artifact interface{}) (*envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact %s: %w", filepath.Base(path), err)
	}
	env := &envelope{}
	if err := json.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", filepath.Base(path), err)
	}
	if env.RunID == "" {
		return nil, fmt.Errorf("model artifact %s has no run id", filepath.Base(path))
	}
	if err := json.Unmarshal(env.Artifact, artifact); err != nil {
		return nil, fmt.Errorf("failed to parse model artifact %s: %w", filepath.Base(path), err)
	}
	return env, nil
}

package pipeline

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Pipeline standardizes an ordered feature vector and feeds it through a
// linear regression. It is immutable once fitted or loaded.
type Pipeline struct {
	Features  []string
	Scaler    StandardScaler
	Regressor LinearRegression

	// Training metadata
	Samples   int
	Metrics   Metrics
	TrainedAt time.Time
}

// FeatureWeight pairs a feature with its share of the total absolute
// standardized coefficient mass.
type FeatureWeight struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
}

// New creates an unfitted pipeline for the given feature order
func New(features []string) *Pipeline {
	names := make([]string, len(features))
	copy(names, features)
	return &Pipeline{Features: names}
}

// Fit trains the scaler and the regression on x (one column per feature)
func (p *Pipeline) Fit(x *mat.Dense, y []float64) error {
	rows, cols := x.Dims()
	if cols != len(p.Features) {
		return fmt.Errorf("pipeline: expected %d feature columns, got %d", len(p.Features), cols)
	}

	if err := p.Scaler.Fit(x); err != nil {
		return err
	}
	if err := p.Regressor.Fit(p.Scaler.TransformMatrix(x), y); err != nil {
		return err
	}

	p.Samples = rows
	p.TrainedAt = time.Now().UTC()
	return nil
}

// Predict maps one ordered feature vector to a price estimate
func (p *Pipeline) Predict(vector []float64) (float64, error) {
	if len(p.Regressor.Coef) != len(p.Features) {
		return 0, fmt.Errorf("pipeline: model is not fitted")
	}
	if len(vector) != len(p.Features) {
		return 0, fmt.Errorf("pipeline: expected %d features, got %d", len(p.Features), len(vector))
	}
	return p.Regressor.Predict(p.Scaler.Transform(vector)), nil
}

// PredictMatrix predicts every row of x
func (p *Pipeline) PredictMatrix(x *mat.Dense) ([]float64, error) {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		v, err := p.Predict(mat.Row(nil, i, x))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Coefficients returns the standardized coefficients keyed by feature name
func (p *Pipeline) Coefficients() map[string]float64 {
	out := make(map[string]float64, len(p.Features))
	for i, name := range p.Features {
		if i < len(p.Regressor.Coef) {
			out[name] = p.Regressor.Coef[i]
		}
	}
	return out
}

// Importance ranks features by |coef| / sum(|coef|), largest first
func (p *Pipeline) Importance() []FeatureWeight {
	var total float64
	for _, c := range p.Regressor.Coef {
		total += math.Abs(c)
	}

	weights := make([]FeatureWeight, 0, len(p.Features))
	for i, name := range p.Features {
		w := FeatureWeight{Name: name}
		if total > 0 && i < len(p.Regressor.Coef) {
			w.Importance = math.Abs(p.Regressor.Coef[i]) / total
		}
		weights = append(weights, w)
	}

	sort.SliceStable(weights, func(i, j int) bool {
		return weights[i].Importance > weights[j].Importance
	})
	return weights
}

// Save writes the pipeline to path as a gob artifact. The file is written
// to a temporary sibling first and renamed into place.
func (p *Pipeline) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create model directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".model-*.gob")
	if err != nil {
		return fmt.Errorf("failed to create model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(p); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to install model file: %w", err)
	}
	return nil
}

// Load reads a pipeline artifact written by Save
func Load(path string) (*Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var p Pipeline
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode model %s: %w", path, err)
	}

	if len(p.Features) == 0 {
		return nil, fmt.Errorf("model %s has no features", path)
	}
	if len(p.Regressor.Coef) != len(p.Features) ||
		len(p.Scaler.Mean) != len(p.Features) ||
		len(p.Scaler.Scale) != len(p.Features) {
		return nil, fmt.Errorf("model %s is inconsistent: %d features, %d coefficients", path, len(p.Features), len(p.Regressor.Coef))
	}

	return &p, nil
}

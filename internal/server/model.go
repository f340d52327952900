package server

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/kartoza/house-price-predictor/internal/config"
	"github.com/kartoza/house-price-predictor/internal/dataset"
	"github.com/kartoza/house-price-predictor/internal/pipeline"
)

// loadModel reads the model artifact. When it does not exist and bootstrap
// is enabled, a demo model is trained on synthetic data and saved in its place.
func loadModel(cfg config.Config) (*pipeline.Pipeline, error) {
	path := cfg.ResolvedModelPath()

	model, err := pipeline.Load(path)
	if err == nil {
		log.Printf("Loaded model: %s (%d features, trained on %d samples)", path, len(model.Features), model.Samples)
		return model, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || !cfg.Bootstrap {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	log.Printf("Model %s not found, training demo model on synthetic data", path)
	ds := dataset.Synthetic(dataset.DefaultSamples, dataset.DefaultSeed)
	model, err = pipeline.Train(ds.Features, ds.X, ds.Y, pipeline.DefaultTrainConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to train demo model: %w", err)
	}

	if err := model.Save(path); err != nil {
		log.Printf("Warning: could not save demo model: %v", err)
	} else {
		log.Printf("Saved demo model: %s (R² %.4f, RMSE %.2f)", path, model.Metrics.R2, model.Metrics.RMSE)
	}
	return model, nil
}

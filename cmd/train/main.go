// Command train fits the house price pipeline and writes the model artifact
// served by the predictor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/kartoza/house-price-predictor/internal/dataset"
	"github.com/kartoza/house-price-predictor/internal/pipeline"
)

func main() {
	dataPath := flag.String("data", "houses.csv", "CSV of house sales with a price column")
	outPath := flag.String("out", "model.gob", "Where to write the trained model")
	seed := flag.Int64("seed", dataset.DefaultSeed, "Seed for the split and synthetic data")
	samples := flag.Int("samples", dataset.DefaultSamples, "Synthetic rows to generate when no CSV exists")
	testSize := flag.Float64("test-size", 0.2, "Fraction of rows held out for evaluation")
	flag.Parse()

	if err := run(*dataPath, *outPath, *seed, *samples, *testSize); err != nil {
		log.Fatalf("Training failed: %v", err)
	}
}

func run(dataPath, outPath string, seed int64, samples int, testSize float64) error {
	if testSize <= 0 || testSize >= 1 {
		return fmt.Errorf("test-size must be between 0 and 1, got %v", testSize)
	}

	data, err := loadData(dataPath, seed, samples)
	if err != nil {
		return err
	}

	model, err := pipeline.Train(data.Features, data.X, data.Y, pipeline.TrainConfig{
		TestSize: testSize,
		Seed:     seed,
	})
	if err != nil {
		return err
	}

	log.Printf("Trained on %d samples with %d features", model.Samples, len(model.Features))
	log.Printf("Held-out R²:   %.4f", model.Metrics.R2)
	log.Printf("Held-out RMSE: %.4f", model.Metrics.RMSE)
	log.Printf("Held-out MAE:  %.4f", model.Metrics.MAE)
	for _, w := range model.Importance() {
		log.Printf("  %-15s %.3f", w.Name, w.Importance)
	}

	if err := model.Save(outPath); err != nil {
		return err
	}

	if info, err := os.Stat(outPath); err == nil {
		log.Printf("Model saved to %s (%s)", outPath, humanize.Bytes(uint64(info.Size())))
	}
	return nil
}

// loadData reads the CSV when present, otherwise generates demo data
func loadData(path string, seed int64, samples int) (*dataset.Dataset, error) {
	data, err := dataset.LoadCSV(path)
	if err == nil {
		log.Printf("Loaded %d rows from %s", data.Len(), path)
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	log.Printf("%s not found, generating %d synthetic samples", path, samples)
	return dataset.Synthetic(samples, seed), nil
}

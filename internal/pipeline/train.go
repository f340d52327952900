package pipeline

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// TrainConfig controls the hold-out evaluation done by Train
type TrainConfig struct {
	TestSize float64
	Seed     int64
}

// DefaultTrainConfig returns an 80/20 split with seed 42
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		TestSize: 0.2,
		Seed:     42,
	}
}

// Split partitions the rows of x and y into train and test sets using a
// seeded shuffle. testSize is the fraction of rows held out.
func Split(x *mat.Dense, y []float64, testSize float64, seed int64) (xTrain, xTest *mat.Dense, yTrain, yTest []float64) {
	rows, cols := x.Dims()

	nTest := int(float64(rows)*testSize + 0.999999)
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= rows {
		nTest = rows - 1
	}
	nTrain := rows - nTest

	perm := rand.New(rand.NewSource(seed)).Perm(rows)

	xTrain = mat.NewDense(nTrain, cols, nil)
	xTest = mat.NewDense(nTest, cols, nil)
	yTrain = make([]float64, nTrain)
	yTest = make([]float64, nTest)

	for i, src := range perm {
		if i < nTest {
			xTest.SetRow(i, mat.Row(nil, src, x))
			yTest[i] = y[src]
			continue
		}
		xTrain.SetRow(i-nTest, mat.Row(nil, src, x))
		yTrain[i-nTest] = y[src]
	}
	return xTrain, xTest, yTrain, yTest
}

// Train evaluates a pipeline on a held-out split, then refits on every row
// and returns that pipeline carrying the held-out metrics.
func Train(features []string, x *mat.Dense, y []float64, cfg TrainConfig) (*Pipeline, error) {
	rows, _ := x.Dims()
	if rows < 2 {
		return nil, fmt.Errorf("need at least 2 samples to train, got %d", rows)
	}

	xTrain, xTest, yTrain, yTest := Split(x, y, cfg.TestSize, cfg.Seed)

	eval := New(features)
	if err := eval.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("fit on training split: %w", err)
	}
	predicted, err := eval.PredictMatrix(xTest)
	if err != nil {
		return nil, err
	}

	final := New(features)
	if err := final.Fit(x, y); err != nil {
		return nil, fmt.Errorf("fit on full dataset: %w", err)
	}
	final.Metrics = Score(yTest, predicted)

	return final, nil
}

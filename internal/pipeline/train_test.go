package pipeline

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestScore(t *testing.T) {
	m := Score([]float64{1, 2, 3, 4}, []float64{1, 2, 3, 4})
	if m.R2 != 1 || m.RMSE != 0 || m.MAE != 0 {
		t.Errorf("Expected perfect metrics, got %+v", m)
	}

	m = Score([]float64{0, 0, 0, 0}, []float64{1, -1, 1, -1})
	if m.RMSE != 1 {
		t.Errorf("Expected RMSE 1, got %v", m.RMSE)
	}
	if m.MAE != 1 {
		t.Errorf("Expected MAE 1, got %v", m.MAE)
	}
}

func TestScoreMismatched(t *testing.T) {
	m := Score([]float64{1, 2}, []float64{1})
	if !math.IsNaN(m.RMSE) {
		t.Errorf("Expected NaN RMSE for mismatched input, got %v", m.RMSE)
	}
}

func TestSplit(t *testing.T) {
	x, y := linearData(10, 4)

	xTrain, xTest, yTrain, yTest := Split(x, y, 0.2, 42)

	trainRows, _ := xTrain.Dims()
	testRows, _ := xTest.Dims()
	if trainRows != 8 || testRows != 2 {
		t.Fatalf("Expected 8/2 split, got %d/%d", trainRows, testRows)
	}
	if len(yTrain) != 8 || len(yTest) != 2 {
		t.Fatalf("Expected 8/2 targets, got %d/%d", len(yTrain), len(yTest))
	}

	// every row keeps its own target
	for i := 0; i < testRows; i++ {
		a, b := xTest.At(i, 0), xTest.At(i, 1)
		if !almostEqual(yTest[i], 3+2*a-0.5*b, 1e-9) {
			t.Errorf("Test row %d lost its target", i)
		}
	}

	// same seed, same split
	_, xTest2, _, _ := Split(x, y, 0.2, 42)
	if xTest2.At(0, 0) != xTest.At(0, 0) {
		t.Error("Expected deterministic split for equal seeds")
	}
}

func TestTrain(t *testing.T) {
	x, y := linearData(300, 5)

	p, err := Train([]string{"a", "b", "c"}, x, y, DefaultTrainConfig())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	if p.Samples != 300 {
		t.Errorf("Expected final model fit on 300 rows, got %d", p.Samples)
	}
	if !almostEqual(p.Metrics.R2, 1, 1e-9) {
		t.Errorf("Expected R2 ~1 on noiseless data, got %v", p.Metrics.R2)
	}
	if p.Metrics.RMSE > 1e-6 {
		t.Errorf("Expected RMSE ~0 on noiseless data, got %v", p.Metrics.RMSE)
	}
}

func TestTrainTooFewSamples(t *testing.T) {
	x, y := linearData(1, 6)
	if _, err := Train([]string{"a", "b", "c"}, x, y, DefaultTrainConfig()); err == nil {
		t.Error("Expected error for a single sample")
	}
}

func TestTrainSmallWideDataset(t *testing.T) {
	// 16 rows leave 12 for fitting 15 features
	rng := rand.New(rand.NewSource(3))
	x := mat.NewDense(16, 15, nil)
	y := make([]float64, 16)
	for i := 0; i < 16; i++ {
		for j := 0; j < 15; j++ {
			x.Set(i, j, rng.Float64()*10)
		}
		y[i] = 2 + x.At(i, 0) - 0.5*x.At(i, 3)
	}

	names := make([]string, 15)
	for j := range names {
		names[j] = fmt.Sprintf("f%d", j)
	}

	p, err := Train(names, x, y, DefaultTrainConfig())
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if p.Samples != 16 {
		t.Errorf("Expected final model fit on 16 rows, got %d", p.Samples)
	}
}

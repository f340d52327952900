package pipeline

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics summarises how well a pipeline fits held-out data
type Metrics struct {
	R2   float64 `json:"r2"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}

// Score computes R^2, RMSE and MAE of predictions against actual values
func Score(actual, predicted []float64) Metrics {
	if len(actual) == 0 || len(actual) != len(predicted) {
		return Metrics{R2: math.NaN(), RMSE: math.NaN(), MAE: math.NaN()}
	}

	var sq, abs float64
	for i := range actual {
		d := actual[i] - predicted[i]
		sq += d * d
		abs += math.Abs(d)
	}
	n := float64(len(actual))

	return Metrics{
		R2:   stat.RSquaredFrom(predicted, actual, nil),
		RMSE: math.Sqrt(sq / n),
		MAE:  abs / n,
	}
}

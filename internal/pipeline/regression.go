package pipeline

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// LinearRegression is an ordinary least squares model with intercept
type LinearRegression struct {
	Coef      []float64
	Intercept float64
}

// rcondEps scales the cutoff below which singular values count as zero
const rcondEps = 2.220446049250313e-16

// Fit solves for the minimum-norm least squares coefficients on the centred
// design matrix, then recovers the intercept from the column means.
// Collinear or constant columns are tolerated.
func (r *LinearRegression) Fit(x *mat.Dense, y []float64) error {
	rows, cols := x.Dims()
	if rows != len(y) {
		return fmt.Errorf("regression: %d rows but %d targets", rows, len(y))
	}
	if rows == 0 {
		return errors.New("regression: no samples")
	}

	xMean := make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		xMean[j] = stat.Mean(col, nil)
	}
	yMean := stat.Mean(y, nil)

	centred := mat.NewDense(rows, cols, nil)
	centred.Apply(func(_, j int, v float64) float64 {
		return v - xMean[j]
	}, x)

	yc := make([]float64, rows)
	for i, v := range y {
		yc[i] = v - yMean
	}

	var svd mat.SVD
	if !svd.Factorize(centred, mat.SVDThin) {
		return errors.New("regression: SVD factorization failed")
	}

	r.Coef = make([]float64, cols)
	if rank := svd.Rank(float64(max(rows, cols)) * rcondEps); rank > 0 {
		var beta mat.VecDense
		svd.SolveVecTo(&beta, mat.NewVecDense(rows, yc), rank)
		for j := range r.Coef {
			r.Coef[j] = beta.AtVec(j)
		}
	}
	r.Intercept = yMean - floats.Dot(r.Coef, xMean)
	return nil
}

// Predict evaluates the model for one row
func (r *LinearRegression) Predict(row []float64) float64 {
	return r.Intercept + floats.Dot(r.Coef, row)
}

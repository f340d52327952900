// Package dataset produces training tables for the price pipeline, either
// from a CSV export of house sales or from a seeded synthetic generator.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// TargetColumn is the CSV column holding the price, in units of $100k
const TargetColumn = "price"

// Synthetic generator defaults
const (
	DefaultSamples = 1000
	DefaultSeed    = 42
)

// ErrNoTarget is returned when a CSV has no price column
var ErrNoTarget = errors.New("dataset: no price column")

// Dataset is a feature matrix with its target vector
type Dataset struct {
	Features []string
	X        *mat.Dense
	Y        []float64
}

// Len returns the number of rows
func (d *Dataset) Len() int {
	return len(d.Y)
}

// LoadCSV reads a CSV with a header row. The price column is the target and
// every other column becomes a feature, in file order.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses CSV data from r, see LoadCSV
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	target := -1
	var features []string
	var featureCols []int
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == TargetColumn {
			target = i
			continue
		}
		features = append(features, name)
		featureCols = append(featureCols, i)
	}
	if target < 0 {
		return nil, ErrNoTarget
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("dataset: no feature columns")
	}

	var values, y []float64
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		price, err := parseCell(record[target])
		if err != nil {
			return nil, fmt.Errorf("line %d column %s: %w", line, TargetColumn, err)
		}
		for k, col := range featureCols {
			v, err := parseCell(record[col])
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, features[k], err)
			}
			values = append(values, v)
		}
		y = append(y, price)
	}

	if len(y) == 0 {
		return nil, fmt.Errorf("dataset: CSV has no rows")
	}

	return &Dataset{
		Features: features,
		X:        mat.NewDense(len(y), len(features), values),
		Y:        y,
	}, nil
}

func parseCell(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Columns in the order the synthetic generator emits them
var Columns = []string{
	"bedrooms",
	"bathrooms",
	"sqft_living",
	"floors",
	"waterfront",
	"view",
	"condition",
	"grade",
	"sqft_above",
	"sqft_basement",
	"yr_built",
	"yr_renovated",
	"lat",
	"long",
	"sqft_living15",
}

// Synthetic generates n demo rows. Prices start uniform in [15, 150) and are
// pushed up by living area, bedrooms, waterfront and view.
func Synthetic(n int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	intn := func(lo, hi int) float64 { // [lo, hi)
		return float64(lo + rng.Intn(hi-lo))
	}
	uniform := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}
	floorChoices := []float64{1, 1.5, 2, 2.5, 3}

	x := mat.NewDense(n, len(Columns), nil)
	y := make([]float64, n)

	for i := 0; i < n; i++ {
		bedrooms := intn(1, 6)
		sqftLiving := intn(800, 5000)

		var waterfront float64
		if rng.Float64() < 0.01 {
			waterfront = 1
		}
		view := intn(0, 5)

		// 0 (never renovated) or a year in [1950, 2024), equally likely
		renovated := 0.0
		if k := rng.Intn(75); k > 0 {
			renovated = float64(1949 + k)
		}

		x.SetRow(i, []float64{
			bedrooms,
			uniform(1, 4),
			sqftLiving,
			floorChoices[rng.Intn(len(floorChoices))],
			waterfront,
			view,
			intn(1, 6),
			intn(4, 12),
			intn(600, 4000),
			intn(0, 2000),
			intn(1900, 2024),
			renovated,
			uniform(47.4, 47.8),
			uniform(-122.4, -122.0),
			intn(800, 5000),
		})

		price := uniform(15, 150)
		price += sqftLiving * 0.02
		price += bedrooms * 5
		price += waterfront * 50
		price += view * 10
		y[i] = price
	}

	features := make([]string, len(Columns))
	copy(features, Columns)

	return &Dataset{Features: features, X: x, Y: y}
}

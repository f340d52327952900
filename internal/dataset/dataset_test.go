package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSyntheticShape(t *testing.T) {
	ds := Synthetic(500, 42)

	if ds.Len() != 500 {
		t.Fatalf("Expected 500 rows, got %d", ds.Len())
	}
	rows, cols := ds.X.Dims()
	if rows != 500 || cols != len(Columns) {
		t.Errorf("Expected 500x%d matrix, got %dx%d", len(Columns), rows, cols)
	}
	if ds.Features[0] != "bedrooms" || ds.Features[len(ds.Features)-1] != "sqft_living15" {
		t.Errorf("Unexpected feature order: %v", ds.Features)
	}
}

func TestSyntheticRanges(t *testing.T) {
	ds := Synthetic(1000, 7)

	bounds := map[string][2]float64{
		"bedrooms":      {1, 5},
		"bathrooms":     {1, 4},
		"sqft_living":   {800, 4999},
		"waterfront":    {0, 1},
		"view":          {0, 4},
		"condition":     {1, 5},
		"grade":         {4, 11},
		"yr_built":      {1900, 2023},
		"yr_renovated":  {0, 2023},
		"lat":           {47.4, 47.8},
		"long":          {-122.4, -122.0},
		"sqft_living15": {800, 4999},
	}

	for j, name := range ds.Features {
		b, ok := bounds[name]
		if !ok {
			continue
		}
		for i := 0; i < ds.Len(); i++ {
			v := ds.X.At(i, j)
			if v < b[0] || v > b[1] {
				t.Fatalf("%s row %d = %v outside [%v, %v]", name, i, v, b[0], b[1])
			}
		}
	}

	for i, price := range ds.Y {
		// base 15 + 800*0.02 + 1*5 at minimum
		if price < 36 {
			t.Fatalf("Price row %d = %v below minimum", i, price)
		}
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	a := Synthetic(50, 42)
	b := Synthetic(50, 42)
	c := Synthetic(50, 43)

	for i := range a.Y {
		if a.Y[i] != b.Y[i] {
			t.Fatalf("Row %d differs for equal seeds", i)
		}
	}
	if a.Y[0] == c.Y[0] && a.Y[1] == c.Y[1] {
		t.Error("Expected different data for different seeds")
	}
}

func TestReadCSV(t *testing.T) {
	data := "bedrooms, price ,sqft_living\n3,5.5,1800\n4, 7.25 ,2400\n"

	ds, err := ReadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	if len(ds.Features) != 2 || ds.Features[0] != "bedrooms" || ds.Features[1] != "sqft_living" {
		t.Errorf("Expected features [bedrooms sqft_living], got %v", ds.Features)
	}
	if ds.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", ds.Len())
	}
	if ds.Y[1] != 7.25 {
		t.Errorf("Expected second price 7.25, got %v", ds.Y[1])
	}
	if ds.X.At(1, 1) != 2400 {
		t.Errorf("Expected sqft_living 2400, got %v", ds.X.At(1, 1))
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"header only", "bedrooms,price\n"},
		{"only target", "price\n1\n"},
		{"bad number", "bedrooms,price\nthree,1\n"},
		{"ragged row", "bedrooms,price\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.data)); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestReadCSVNoTarget(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("bedrooms,sqft_living\n1,2\n"))
	if !errors.Is(err, ErrNoTarget) {
		t.Errorf("Expected ErrNoTarget, got %v", err)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "houses.csv")
	os.WriteFile(path, []byte("a,price\n1,2\n3,4\n"), 0644)

	ds, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if ds.Len() != 2 {
		t.Errorf("Expected 2 rows, got %d", ds.Len())
	}

	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv")); !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

package pricing

import (
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name       string
		prediction float64
		expected   string
	}{
		{"zero", 0, "$0"},
		{"small", 0.0123, "$1,230"},
		{"typical", 4.5, "$450,000"},
		{"millions", 12.34567, "$1,234,567"},
		{"rounds up", 1.000006, "$100,001"},
		{"rounds down", 1.000004, "$100,000"},
		{"negative", -2.5, "$-250,000"},
		{"exactly thousand", 0.01, "$1,000"},
		{"tiny positive", 0.000001, "$0"},
		{"tiny negative", -0.000001, "$-0"},
		{"negative zero", math.Copysign(0, -1), "$-0"},
		{"half dollar ties to even", 0.000005, "$0"},
		{"negative half dollar", -0.000015, "$-2"},
		{"rounds to minus one", -0.0000149, "$-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.prediction)
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{4.5, 4.5},
		{12.34567, 12.35},
		{12.344, 12.34},
		{-3.14159, -3.14},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Round(tt.input); got != tt.expected {
			t.Errorf("Round(%v): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestDollars(t *testing.T) {
	if got := Dollars(6.5); got != 650000 {
		t.Errorf("Expected 650000, got %v", got)
	}
}

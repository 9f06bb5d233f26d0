package domain

import (
	"math"
	"testing"
)

func TestRoundScore(t *testing.T) {
	tests := []struct {
		name     string
		bid      int
		won      int
		expected float64
	}{
		{"exact bid", 3, 3, 3.0},
		{"two extra tricks", 3, 5, 3.2},
		{"broken bid", 4, 2, -4.0},
		{"broken by one", 5, 4, -5.0},
		{"minimum bid made", 1, 1, 1.0},
		{"maximum overtricks", 1, 13, 2.2},
		{"maximum bid made", 8, 8, 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundScore(tt.bid, tt.won)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("RoundScore(%d, %d) = %v, want %v", tt.bid, tt.won, got, tt.expected)
			}
		})
	}
}

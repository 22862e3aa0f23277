package backtrack

import (
	"testing"

	"github.com/matzehuels/perfectmaze/pkg/errors"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", Iterative, false},
		{"iterative", Iterative, false},
		{"Recursive", Recursive, false},
		{" recursive ", Recursive, false},
		{"bfs", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrategy(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidStrategy) {
					t.Errorf("ParseStrategy(%q) error = %v, want %s", tt.in, err, errors.ErrCodeInvalidStrategy)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseStrategy(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(99), NewRand(99)
	for i := 0; i < 10; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestNewSeedInRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		if s := NewSeed(); s > MaxSeed {
			t.Fatalf("NewSeed() = %d, above MaxSeed", s)
		}
	}
}

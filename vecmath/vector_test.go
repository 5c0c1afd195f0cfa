package vecmath

import (
	"math"
	"testing"
)

func TestMinimumImage(t *testing.T) {
	tests := []struct {
		name   string
		d      float64
		length float64
		want   float64
	}{
		{"interior small gap unaffected", 0.5, 16, 0.5},
		{"wrap shortens large positive gap", 15.6, 16, -0.4},
		{"wrap shortens large negative gap", -15.6, 16, 0.4},
		{"exact half length either candidate", 8, 16, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinimumImage(tt.d, tt.length)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MinimumImage(%v, %v) = %v, want %v", tt.d, tt.length, got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		x      float64
		length float64
		want   float64
	}{
		{"already inside", 8, 16, 8},
		{"crosses positive edge once", 16.4, 16, 0.4},
		{"crosses negative edge once", -0.4, 16, 15.6},
		{"at zero", 0, 16, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.x, tt.length)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Wrap(%v, %v) = %v, want %v", tt.x, tt.length, got, tt.want)
			}
		})
	}
}

func TestMinimumDistance(t *testing.T) {
	lengths := Vector2{X: 16, Y: 16}

	// Two points near opposite edges of the domain are close through the seam.
	p := Vector2{X: 0.5, Y: 8}
	q := Vector2{X: 15.6, Y: 8}

	got := MinimumDistance(lengths, p, q)
	want := 0.9 // wraps to |0.5 - 15.6 + 16| = 0.9

	if math.Abs(got-want) > 1e-9 {
		t.Errorf("MinimumDistance = %v, want %v", got, want)
	}

	// Symmetric.
	if got2 := MinimumDistance(lengths, q, p); math.Abs(got2-got) > 1e-9 {
		t.Errorf("MinimumDistance not symmetric: %v vs %v", got, got2)
	}

	// Never exceeds straight-line (no-wrap) distance.
	straight := q.Sub(p).Len()
	if got > straight+1e-9 {
		t.Errorf("MinimumDistance = %v exceeds straight-line distance %v", got, straight)
	}
}

package raster_test

import (
	"math"
	"testing"

	"github.com/rikosato/plinresize/raster"
)

func TestWeightsPartitionOfUnity(t *testing.T) {
	algorithms := []raster.Algorithm{raster.Nearest, raster.Linear, raster.PLin}
	for _, alg := range algorithms {
		kernel := raster.KernelFor(alg)
		for n := 0.0; n <= 1.0; n += 0.05 {
			w := kernel(n)
			if sum := w[0] + w[1]; math.Abs(sum-1) > 1e-6 {
				t.Errorf("algorithm %v, n=%.2f: weights sum to %v, want 1", alg, n, sum)
			}
			w2 := raster.Outer(w, w)
			if sum := w2.Sum(); math.Abs(sum-1) > 1e-6 {
				t.Errorf("algorithm %v, n=%.2f: 2D weights sum to %v, want 1", alg, n, sum)
			}
		}
	}
}

func TestNearestWeights(t *testing.T) {
	tests := []struct {
		n    float64
		want [2]float64
	}{
		{0, [2]float64{1, 0}},
		{0.49, [2]float64{1, 0}},
		{0.5, [2]float64{0, 1}},
		{0.99, [2]float64{0, 1}},
	}
	for _, tt := range tests {
		if got := raster.NearestWeights(tt.n); got != tt.want {
			t.Errorf("NearestWeights(%v) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestLinearWeights(t *testing.T) {
	tests := []struct {
		n    float64
		want [2]float64
	}{
		{0, [2]float64{1, 0}},
		{0.25, [2]float64{0.75, 0.25}},
		{1, [2]float64{0, 1}},
	}
	for _, tt := range tests {
		if got := raster.LinearWeights(tt.n); got != tt.want {
			t.Errorf("LinearWeights(%v) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestPLinWeightsSCurve(t *testing.T) {
	// p-lin must stay flatter than linear near the endpoints (nearest-like)
	// and cross linear somewhere in the middle (S-curve), while still
	// landing on the same endpoints.
	w0 := raster.PLinWeights(0)
	if w0 != [2]float64{1, 0} {
		t.Fatalf("PLinWeights(0) = %v, want [1 0]", w0)
	}
	w1 := raster.PLinWeights(1)
	if math.Abs(w1[1]-1) > 1e-9 {
		t.Fatalf("PLinWeights(1)[1] = %v, want 1", w1[1])
	}

	near := raster.PLinWeights(0.1)
	if near[1] >= 0.1 {
		t.Errorf("PLinWeights(0.1)[1] = %v, want < linear's 0.1 (flatter near the sample centre)", near[1])
	}

	mid := raster.PLinWeights(0.5)
	if math.Abs(mid[1]-0.5) > 1e-9 {
		t.Errorf("PLinWeights(0.5)[1] = %v, want 0.5 (symmetric tie at the midpoint)", mid[1])
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		s        float64
		wantBase int
		wantN    float64
	}{
		{2.25, 2, 0.25},
		{0, 0, 0},
		{-0.25, -1, 0.75},
		{-2.0, -2, 0},
	}
	for _, tt := range tests {
		base, n := raster.Split(tt.s)
		if base != tt.wantBase || math.Abs(n-tt.wantN) > 1e-9 {
			t.Errorf("Split(%v) = (%d, %v), want (%d, %v)", tt.s, base, n, tt.wantBase, tt.wantN)
		}
	}
}

func TestOuter(t *testing.T) {
	got := raster.Outer([2]float64{0.75, 0.25}, [2]float64{0.5, 0.5})
	want := raster.Weights2{W00: 0.375, W01: 0.375, W10: 0.125, W11: 0.125}
	if got != want {
		t.Errorf("Outer(...) = %+v, want %+v", got, want)
	}
}

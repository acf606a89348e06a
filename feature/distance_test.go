package feature

import (
	"errors"
	"math"
	"testing"

	"github.com/visionkit/cbir"
)

func TestSSD(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{4, 2, 1}

	// (1-4)^2 + 0 + (3-1)^2 = 13
	d, err := SSD(a, b)
	if err != nil {
		t.Fatalf("SSD failed: %v", err)
	}
	if d != 13 {
		t.Fatalf("SSD = %v, want 13", d)
	}

	// Symmetric.
	rev, err := SSD(b, a)
	if err != nil {
		t.Fatalf("SSD failed: %v", err)
	}
	if rev != d {
		t.Fatalf("SSD not symmetric: %v vs %v", d, rev)
	}

	// Zero exactly on equal vectors.
	if self, _ := SSD(a, a); self != 0 {
		t.Fatalf("SSD(a,a) = %v, want 0", self)
	}
}

func TestSSD_DimensionMismatch(t *testing.T) {
	_, err := SSD([]float32{1, 2}, []float32{1, 2, 3})
	if err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
	var dm *cbir.ErrDimensionMismatch
	if !errors.As(err, &dm) {
		t.Fatalf("error %v is not an ErrDimensionMismatch", err)
	}
	if dm.ExpectedCols != 2 || dm.ActualCols != 3 {
		t.Fatalf("mismatch shape = %d vs %d, want 2 vs 3", dm.ExpectedCols, dm.ActualCols)
	}
}

func TestCosineDistance(t *testing.T) {
	// Identical direction -> distance 0.
	d, err := CosineDistance([]float32{1, 0}, []float32{2, 0})
	if err != nil {
		t.Fatalf("CosineDistance failed: %v", err)
	}
	if math.Abs(d) > 1e-9 {
		t.Fatalf("CosineDistance(parallel) = %v, want 0", d)
	}

	// Orthogonal -> distance 1.
	d, err = CosineDistance([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("CosineDistance failed: %v", err)
	}
	if d != 1 {
		t.Fatalf("CosineDistance(orthogonal) = %v, want 1", d)
	}
}

func TestCosineDistance_ZeroVectorGuard(t *testing.T) {
	_, err := CosineDistance([]float32{0, 0}, []float32{1, 0})
	if !errors.Is(err, cbir.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for zero-magnitude input, got %v", err)
	}
}

func TestLookup_FirstMatchWins(t *testing.T) {
	records := []Record{
		{ID: "x", Vector: []float32{1}},
		{ID: "y", Vector: []float32{2}},
		{ID: "x", Vector: []float32{3}},
	}

	rec, ok := Lookup(records, "x")
	if !ok {
		t.Fatal("Lookup(x) reported not found")
	}
	if rec.Vector[0] != 1 {
		t.Fatalf("Lookup(x) returned vector %v, want the first appended [1]", rec.Vector)
	}

	if _, ok := Lookup(records, "z"); ok {
		t.Fatal("Lookup(z) unexpectedly found a record")
	}
}

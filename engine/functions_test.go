package engine

import (
	"math"
	"testing"

	"github.com/visionkit/cbir/feature"
)

func TestRegisterFeatureFunctionsAndUse(t *testing.T) {
	// Register globally before the first connection so the functions are
	// available.
	if err := RegisterFeatureFunctions(nil); err != nil {
		t.Fatalf("RegisterFeatureFunctions failed: %v", err)
	}
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	blob := func(vec []float32) []byte {
		b, err := feature.EncodeVector(vec)
		if err != nil {
			t.Fatalf("EncodeVector(%v) failed: %v", vec, err)
		}
		return b
	}

	// cbir_cosine: orthogonal -> distance 1.
	var dist float64
	if err := db.QueryRow(`SELECT cbir_cosine(?, ?)`, blob([]float32{1, 0}), blob([]float32{0, 1})).Scan(&dist); err != nil {
		t.Fatalf("cbir_cosine query failed: %v", err)
	}
	if dist != 1 {
		t.Fatalf("cbir_cosine(orthogonal) = %v, want 1", dist)
	}

	// cbir_cosine: identical -> distance 0.
	if err := db.QueryRow(`SELECT cbir_cosine(?, ?)`, blob([]float32{1, 2}), blob([]float32{1, 2})).Scan(&dist); err != nil {
		t.Fatalf("cbir_cosine query failed: %v", err)
	}
	if math.Abs(dist) > 1e-9 {
		t.Fatalf("cbir_cosine(identical) = %v, want 0", dist)
	}

	// cbir_ssd between (0,0) and (3,4) -> 25.
	if err := db.QueryRow(`SELECT cbir_ssd(?, ?)`, blob([]float32{0, 0}), blob([]float32{3, 4})).Scan(&dist); err != nil {
		t.Fatalf("cbir_ssd query failed: %v", err)
	}
	if math.Abs(dist-25) > 1e-9 {
		t.Fatalf("cbir_ssd = %v, want 25", dist)
	}

	// cbir_intersect: per-bin minima summed.
	if err := db.QueryRow(`SELECT cbir_intersect(?, ?)`,
		blob([]float32{0.5, 0.25}), blob([]float32{0.25, 0.5})).Scan(&dist); err != nil {
		t.Fatalf("cbir_intersect query failed: %v", err)
	}
	if math.Abs(dist-0.5) > 1e-9 {
		t.Fatalf("cbir_intersect = %v, want 0.5", dist)
	}
}

func TestFeatureFunctions_NullOnUnscorable(t *testing.T) {
	if err := RegisterFeatureFunctions(nil); err != nil {
		t.Fatalf("RegisterFeatureFunctions failed: %v", err)
	}
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	aBlob, _ := feature.EncodeVector([]float32{1, 2, 3})
	shortBlob, _ := feature.EncodeVector([]float32{1})
	zeroBlob, _ := feature.EncodeVector([]float32{0, 0, 0})

	for name, query := range map[string][]interface{}{
		"length mismatch": {aBlob, shortBlob},
		"zero magnitude":  {aBlob, zeroBlob},
		"null argument":   {aBlob, nil},
	} {
		var out interface{}
		if err := db.QueryRow(`SELECT cbir_cosine(?, ?)`, query...).Scan(&out); err != nil {
			t.Fatalf("cbir_cosine (%s) query failed: %v", name, err)
		}
		if out != nil {
			t.Fatalf("cbir_cosine (%s) = %v, want NULL", name, out)
		}
	}
}

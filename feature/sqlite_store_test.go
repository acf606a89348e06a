package feature

import (
	"context"
	"math"
	"testing"

	"github.com/visionkit/cbir/engine"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	if err := engine.RegisterFeatureFunctions(nil); err != nil {
		t.Fatalf("RegisterFeatureFunctions failed: %v", err)
	}
	db, err := engine.Open(":memory:")
	if err != nil {
		t.Fatalf("engine.Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	return store
}

func TestSQLiteStore_AddLoadLookup(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	recs := []Record{
		{ID: "a.jpg", Vector: []float32{1, 0}},
		{ID: "b.jpg", Vector: []float32{0, 1}},
		{ID: "a.jpg", Vector: []float32{5, 5}}, // duplicate id, later insert
	}
	if err := store.Add(ctx, recs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d records, want 3 (duplicates preserved)", len(loaded))
	}

	// First-match-wins on duplicate identifiers.
	rec, ok, err := store.LookupID(ctx, "a.jpg")
	if err != nil {
		t.Fatalf("LookupID failed: %v", err)
	}
	if !ok {
		t.Fatal("LookupID(a.jpg) reported not found")
	}
	if rec.Vector[0] != 1 || rec.Vector[1] != 0 {
		t.Fatalf("LookupID(a.jpg) vector = %v, want the first inserted [1 0]", rec.Vector)
	}

	if _, ok, err := store.LookupID(ctx, "missing.jpg"); err != nil || ok {
		t.Fatalf("LookupID(missing.jpg) = ok=%v err=%v, want not found", ok, err)
	}
}

func TestSQLiteStore_SearchCosine(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, []Record{
		{ID: "east.jpg", Vector: []float32{1, 0}},
		{ID: "north.jpg", Vector: []float32{0, 1}},
		{ID: "diag.jpg", Vector: []float32{1, 1}},
		{ID: "self.jpg", Vector: []float32{2, 0}},
		{ID: "null.jpg", Vector: []float32{0, 0}}, // unscorable, filtered out
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ids, dists, err := store.SearchCosine(ctx, []float32{2, 0}, "self.jpg", 10)
	if err != nil {
		t.Fatalf("SearchCosine failed: %v", err)
	}

	want := []string{"east.jpg", "diag.jpg", "north.jpg"}
	if len(ids) != len(want) {
		t.Fatalf("SearchCosine returned %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("rank %d = %s, want %s (all: %v)", i, ids[i], want[i], ids)
		}
	}
	if math.Abs(dists[0]) > 1e-6 {
		t.Fatalf("nearest distance = %v, want ~0", dists[0])
	}
	if math.Abs(dists[2]-1) > 1e-6 {
		t.Fatalf("farthest distance = %v, want ~1", dists[2])
	}
}

package engine

import (
	"database/sql"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"

	sqlite "modernc.org/sqlite"
)

// RegisterFeatureFunctions registers cbir_cosine, cbir_ssd and
// cbir_intersect with the driver so they are available on new connections
// opened after this call. Note: existing open connections will not see new
// functions.
//
// All three take two vector BLOBs (see feature.EncodeVector). They return
// NULL instead of failing when the inputs cannot be scored against each
// other (NULL argument, length mismatch, or for cbir_cosine a
// zero-magnitude vector), so ranked scans can filter unusable rows with
// `IS NOT NULL` instead of aborting.
func RegisterFeatureFunctions(_ *sql.DB) error {
	// Idempotent registration; the driver rejects duplicates but we ignore
	// that silently here.
	_ = sqlite.RegisterDeterministicScalarFunction("cbir_cosine", 2, cbirCosineImpl)
	_ = sqlite.RegisterDeterministicScalarFunction("cbir_ssd", 2, cbirSSDImpl)
	_ = sqlite.RegisterDeterministicScalarFunction("cbir_intersect", 2, cbirIntersectImpl)
	return nil
}

func asVector(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return decodeVector(v)
	default:
		return nil, fmt.Errorf("cbir: unsupported argument type %T for vector; want BLOB", arg)
	}
}

func vectorArgs(name string, args []driver.Value) (a, b []float32, err error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	if a, err = asVector(args[0]); err != nil {
		return nil, nil, err
	}
	if b, err = asVector(args[1]); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// cbirCosineImpl returns the cosine distance (1 - similarity) between two
// vector BLOBs, or NULL when they cannot be compared.
func cbirCosineImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := vectorArgs("cbir_cosine", args)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil || len(a) != len(b) {
		return nil, nil
	}
	var dot, na2, nb2 float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return nil, nil
	}
	return 1 - dot/(math.Sqrt(na2)*math.Sqrt(nb2)), nil
}

// cbirSSDImpl returns the sum of squared differences between two vector
// BLOBs, or NULL when they cannot be compared.
func cbirSSDImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := vectorArgs("cbir_ssd", args)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil || len(a) != len(b) {
		return nil, nil
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum, nil
}

// cbirIntersectImpl returns the histogram intersection (sum of per-bin
// minima) of two flattened histogram BLOBs, or NULL when they cannot be
// compared.
func cbirIntersectImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := vectorArgs("cbir_intersect", args)
	if err != nil {
		return nil, err
	}
	if a == nil || b == nil || len(a) != len(b) {
		return nil, nil
	}
	var sum float64
	for i := range a {
		if a[i] < b[i] {
			sum += float64(a[i])
		} else {
			sum += float64(b[i])
		}
	}
	return sum, nil
}

// Local minimal decode helper to avoid import cycles in tests.
func decodeVector(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("cbir: invalid vector blob length %d", len(b))
	}
	n := len(b) / 4
	v := make([]float32, n)
	for i := 0; i < n; i++ {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

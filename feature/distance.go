package feature

import (
	"fmt"
	"math"

	"github.com/visionkit/cbir"
)

// SSD computes the sum of squared differences between two vectors: lower
// means more similar, zero exactly when the vectors are element-wise equal.
// A length mismatch is reported as a *cbir.ErrDimensionMismatch.
func SSD(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("feature: ssd: %w",
			cbir.NewDimensionMismatch(1, len(a), 1, len(b)))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum, nil
}

// CosineDistance computes 1 - dot(a,b)/(|a|*|b|): lower means more similar.
// It returns an error on a length mismatch, on empty input, and when either
// vector has zero magnitude (the ratio would be non-finite).
func CosineDistance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("feature: cosine distance: %w",
			cbir.NewDimensionMismatch(1, len(a), 1, len(b)))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("feature: cosine distance on empty vectors: %w", cbir.ErrInvalidParameter)
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
		return 0, fmt.Errorf("feature: cosine distance with zero-magnitude vector: %w", cbir.ErrInvalidParameter)
	}
	return 1 - dot/(math.Sqrt(na2)*math.Sqrt(nb2)), nil
}

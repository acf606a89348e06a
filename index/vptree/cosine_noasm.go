//go:build !arm64

package vptree

import "github.com/viant/vec/search"

// On non-arm64 platforms the library exports the precomputed-magnitude
// variant under the Neon-suffixed name only.
func cosineDistanceWithMagnitude(a search.Float32s, b []float32, m1, m2 float32) float32 {
	return a.CosineDistanceWithMagnitudesNeon(b, m1, m2)
}

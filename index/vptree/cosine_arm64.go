//go:build arm64

package vptree

import "github.com/viant/vec/search"

func cosineDistanceWithMagnitude(a search.Float32s, b []float32, m1, m2 float32) float32 {
	return a.CosineDistanceWithMagnitude(b, m1, m2)
}

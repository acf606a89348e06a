package histogram

import (
	"fmt"

	"github.com/visionkit/cbir"
)

// Histogram is a dense 1-D or 2-D table of non-negative float32 counts.
// A 1-D histogram has Rows == 1. Once a builder has normalized a histogram
// it is treated as immutable.
type Histogram struct {
	Rows, Cols int
	Bins       []float32
}

// New allocates a zeroed rows×cols histogram.
func New(rows, cols int) *Histogram {
	return &Histogram{
		Rows: rows,
		Cols: cols,
		Bins: make([]float32, rows*cols),
	}
}

// At returns the count at (row, col).
func (h *Histogram) At(row, col int) float32 {
	return h.Bins[row*h.Cols+col]
}

// Inc increments the count at (row, col).
func (h *Histogram) Inc(row, col int) {
	h.Bins[row*h.Cols+col]++
}

// Total is the summed mass of all bins.
func (h *Histogram) Total() float64 {
	var sum float64
	for _, v := range h.Bins {
		sum += float64(v)
	}
	return sum
}

// scale divides every bin by the given divisor.
func (h *Histogram) scale(divisor float64) {
	if divisor == 0 {
		return
	}
	inv := float32(1.0 / divisor)
	for i := range h.Bins {
		h.Bins[i] *= inv
	}
}

// normalizeMinMax rescales the bins to [0, 1]. A constant histogram
// becomes all zero.
func (h *Histogram) normalizeMinMax() {
	if len(h.Bins) == 0 {
		return
	}
	min, max := h.Bins[0], h.Bins[0]
	for _, v := range h.Bins[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		for i := range h.Bins {
			h.Bins[i] = 0
		}
		return
	}
	span := max - min
	for i := range h.Bins {
		h.Bins[i] = (h.Bins[i] - min) / span
	}
}

// Intersect computes the histogram intersection of a and b: the sum over
// all bins of the per-bin minimum. Higher means more similar. The two
// histograms must have identical dimensions; a mismatch is reported as a
// *cbir.ErrDimensionMismatch.
func Intersect(a, b *Histogram) (float64, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return 0, fmt.Errorf("histogram: intersect: %w",
			cbir.NewDimensionMismatch(a.Rows, a.Cols, b.Rows, b.Cols))
	}
	var sum float64
	for i := range a.Bins {
		if a.Bins[i] < b.Bins[i] {
			sum += float64(a.Bins[i])
		} else {
			sum += float64(b.Bins[i])
		}
	}
	return sum, nil
}

// clampBin confines a quantized index to [0, n-1]. All builders clamp
// uniformly rather than dropping out-of-range samples.
func clampBin(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

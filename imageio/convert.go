package imageio

import (
	"image"
	"math"
)

// RGB8 returns the 8-bit RGB components of the pixel at (x, y).
func RGB8(img image.Image, x, y int) (r, g, b uint8) {
	r16, g16, b16, _ := img.At(x, y).RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8)
}

// Pixels flattens an image into row-major 3-channel samples, the input
// form used by the k-means clusterer.
func Pixels(img image.Image) [][3]uint8 {
	bounds := img.Bounds()
	out := make([][3]uint8, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := RGB8(img, x, y)
			out = append(out, [3]uint8{r, g, b})
		}
	}
	return out
}

// Gray returns the luma of the pixel at (x, y) in [0, 255], using the
// Rec. 601 weights.
func Gray(img image.Image, x, y int) float32 {
	r, g, b := RGB8(img, x, y)
	return 0.299*float32(r) + 0.587*float32(g) + 0.114*float32(b)
}

// HSV converts 8-bit RGB to hue in [0, 360), saturation in [0, 1] and
// value in [0, 1]. Hue is 0 for achromatic pixels.
func HSV(r, g, b uint8) (h, s, v float64) {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	delta := max - min

	v = max
	if max > 0 {
		s = delta / max
	}
	if delta == 0 {
		return 0, s, v
	}

	switch max {
	case rf:
		h = 60 * math.Mod((gf-bf)/delta, 6)
	case gf:
		h = 60 * ((bf-rf)/delta + 2)
	default:
		h = 60 * ((rf-gf)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// Sobel 3x3 derivative kernels.
var (
	sobelX = [3][3]float32{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float32{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// GradientMagnitude computes the Euclidean gradient magnitude of the image
// luma from horizontal and vertical Sobel derivatives, clamped to the 8-bit
// range and pre-scaled to [0, 1]. The returned field is row-major with the
// same dimensions as the image; border pixels use replicated edges.
func GradientMagnitude(img image.Image) [][]float32 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	luma := make([][]float32, h)
	for y := 0; y < h; y++ {
		luma[y] = make([]float32, w)
		for x := 0; x < w; x++ {
			luma[y][x] = Gray(img, bounds.Min.X+x, bounds.Min.Y+y)
		}
	}

	clampIdx := func(v, hi int) int {
		if v < 0 {
			return 0
		}
		if v > hi {
			return hi
		}
		return v
	}

	out := make([][]float32, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float32, w)
		for x := 0; x < w; x++ {
			var gx, gy float32
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := luma[clampIdx(y+ky, h-1)][clampIdx(x+kx, w-1)]
					gx += sobelX[ky+1][kx+1] * v
					gy += sobelY[ky+1][kx+1] * v
				}
			}
			mag := float32(math.Sqrt(float64(gx*gx + gy*gy)))
			if mag > 255 {
				mag = 255
			}
			out[y][x] = mag / 255.0
		}
	}
	return out
}

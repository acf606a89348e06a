package histogram

import (
	"fmt"
	"image"
	"math"

	"github.com/visionkit/cbir"
	"github.com/visionkit/cbir/imageio"
)

func checkBins(name string, bins ...int) error {
	for _, b := range bins {
		if b < 1 {
			return fmt.Errorf("histogram: %s: bin count %d: %w", name, b, cbir.ErrInvalidParameter)
		}
	}
	return nil
}

// Chromaticity builds a size×size histogram over the r and g chromaticity
// ratios r = R/(R+G+B), g = G/(R+G+B), with the denominator floored to 1 on
// all-black pixels. The histogram is normalized by the pixel count, so its
// total mass is 1 for any non-empty image.
func Chromaticity(img image.Image, size int) (*Histogram, error) {
	if err := checkBins("chromaticity", size); err != nil {
		return nil, err
	}

	h := New(size, size)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r8, g8, b8 := imageio.RGB8(img, x, y)
			sum := float64(r8) + float64(g8) + float64(b8)
			if sum == 0 {
				sum = 1
			}
			r := float64(r8) / sum
			g := float64(g8) / sum

			rIdx := clampBin(int(r*float64(size-1)+0.5), size)
			gIdx := clampBin(int(g*float64(size-1)+0.5), size)
			h.Inc(rIdx, gIdx)
		}
	}

	h.scale(float64(bounds.Dx() * bounds.Dy()))
	return h, nil
}

// HueSaturation builds an hBins×sBins histogram over hue and saturation,
// min-max normalized to [0, 1].
func HueSaturation(img image.Image, hBins, sBins int) (*Histogram, error) {
	if err := checkBins("hue-saturation", hBins, sBins); err != nil {
		return nil, err
	}

	h := New(hBins, sBins)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r8, g8, b8 := imageio.RGB8(img, x, y)
			hue, sat, _ := imageio.HSV(r8, g8, b8)

			hIdx := clampBin(int(hue/360.0*float64(hBins)), hBins)
			sIdx := clampBin(int(sat*float64(sBins)), sBins)
			h.Inc(hIdx, sIdx)
		}
	}

	h.normalizeMinMax()
	return h, nil
}

// Color builds a bins×bins full-channel color histogram: every pixel
// contributes its (blue, green), (green, red) and (red, blue) channel pairs.
// Min-max normalized to [0, 1].
func Color(img image.Image, bins int) (*Histogram, error) {
	if err := checkBins("color", bins); err != nil {
		return nil, err
	}

	h := New(bins, bins)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r8, g8, b8 := imageio.RGB8(img, x, y)

			rIdx := clampBin(int(float64(r8)*float64(bins-1)/255.0), bins)
			gIdx := clampBin(int(float64(g8)*float64(bins-1)/255.0), bins)
			bIdx := clampBin(int(float64(b8)*float64(bins-1)/255.0), bins)

			h.Inc(bIdx, gIdx)
			h.Inc(gIdx, rIdx)
			h.Inc(rIdx, bIdx)
		}
	}

	h.normalizeMinMax()
	return h, nil
}

// Texture builds a 1-D histogram of the image's Sobel gradient magnitude
// field (pre-scaled to [0, 1]). Min-max normalized.
func Texture(img image.Image, bins int) (*Histogram, error) {
	if err := checkBins("texture", bins); err != nil {
		return nil, err
	}
	return TextureField(imageio.GradientMagnitude(img), bins)
}

// TextureField builds the texture histogram directly from a scalar field
// whose values lie in [0, 1]. Values outside clamp into the edge bins.
func TextureField(field [][]float32, bins int) (*Histogram, error) {
	if err := checkBins("texture", bins); err != nil {
		return nil, err
	}

	h := New(1, bins)
	for _, row := range field {
		for _, v := range row {
			idx := clampBin(int(math.Floor(float64(v)*float64(bins))), bins)
			h.Inc(0, idx)
		}
	}

	h.normalizeMinMax()
	return h, nil
}

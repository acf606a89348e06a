package feature

import (
	"fmt"
	"image"

	"github.com/visionkit/cbir"
	"github.com/visionkit/cbir/imageio"
)

// PatchSize is the side length of the baseline feature patch.
const PatchSize = 7

// PatchVector extracts the baseline descriptor: the grayscale values of the
// PatchSize x PatchSize block centered on the image, flattened row-major.
// Images smaller than the patch are rejected with cbir.ErrInvalidParameter.
func PatchVector(img image.Image) ([]float32, error) {
	bounds := img.Bounds()
	if bounds.Dx() < PatchSize || bounds.Dy() < PatchSize {
		return nil, fmt.Errorf("feature: image %dx%d smaller than %dx%d patch: %w",
			bounds.Dx(), bounds.Dy(), PatchSize, PatchSize, cbir.ErrInvalidParameter)
	}

	cx := bounds.Min.X + bounds.Dx()/2
	cy := bounds.Min.Y + bounds.Dy()/2
	half := PatchSize / 2

	out := make([]float32, 0, PatchSize*PatchSize)
	for y := cy - half; y < cy-half+PatchSize; y++ {
		for x := cx - half; x < cx-half+PatchSize; x++ {
			out = append(out, imageio.Gray(img, x, y))
		}
	}
	return out, nil
}

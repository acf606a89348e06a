package feature

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/visionkit/cbir"
)

func TestPatchVector_SizeAndValues(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 21, 21))
	for y := 0; y < 21; y++ {
		for x := 0; x < 21; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 10)})
		}
	}

	vec, err := PatchVector(img)
	if err != nil {
		t.Fatalf("PatchVector failed: %v", err)
	}
	if len(vec) != PatchSize*PatchSize {
		t.Fatalf("vector length = %d, want %d", len(vec), PatchSize*PatchSize)
	}

	// The patch is centered: columns 7..13 of a 21-wide image, so the first
	// row of the patch reads lumas 70,80,...,130.
	for i := 0; i < PatchSize; i++ {
		want := float32((7 + i) * 10)
		if diff := vec[i] - want; diff > 0.5 || diff < -0.5 {
			t.Fatalf("vec[%d] = %v, want ~%v", i, vec[i], want)
		}
	}
}

func TestPatchVector_SelfDistanceZero(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 32, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x * y) % 256)})
		}
	}

	vec, err := PatchVector(img)
	if err != nil {
		t.Fatalf("PatchVector failed: %v", err)
	}
	if d, _ := SSD(vec, vec); d != 0 {
		t.Fatalf("self distance = %v, want 0", d)
	}
}

func TestPatchVector_TooSmall(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 6, 10))

	_, err := PatchVector(img)
	if !errors.Is(err, cbir.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for undersized image, got %v", err)
	}
}

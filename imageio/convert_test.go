package imageio

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	img.SetRGBA(1, 0, color.RGBA{40, 50, 60, 255})
	img.SetRGBA(0, 1, color.RGBA{70, 80, 90, 255})
	img.SetRGBA(1, 1, color.RGBA{100, 110, 120, 255})

	px := Pixels(img)
	require.Len(t, px, 4)
	assert.Equal(t, [3]uint8{10, 20, 30}, px[0])
	assert.Equal(t, [3]uint8{40, 50, 60}, px[1])
	assert.Equal(t, [3]uint8{70, 80, 90}, px[2])
	assert.Equal(t, [3]uint8{100, 110, 120}, px[3])
}

func TestGray(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	assert.InDelta(t, 255.0, float64(Gray(img, 0, 0)), 0.01)

	img.SetRGBA(0, 0, color.RGBA{100, 100, 100, 255})
	assert.InDelta(t, 100.0, float64(Gray(img, 0, 0)), 0.01)
}

func TestHSV(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b uint8
		h, s, v float64
	}{
		{"red", 255, 0, 0, 0, 1, 1},
		{"green", 0, 255, 0, 120, 1, 1},
		{"blue", 0, 0, 255, 240, 1, 1},
		{"white", 255, 255, 255, 0, 0, 1},
		{"black", 0, 0, 0, 0, 0, 0},
		{"gray", 128, 128, 128, 0, 0, 128.0 / 255.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, s, v := HSV(tc.r, tc.g, tc.b)
			assert.InDelta(t, tc.h, h, 1e-9)
			assert.InDelta(t, tc.s, s, 1e-9)
			assert.InDelta(t, tc.v, v, 1e-9)
		})
	}
}

func TestHSV_HueRange(t *testing.T) {
	for r := 0; r < 256; r += 51 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 51 {
				h, s, v := HSV(uint8(r), uint8(g), uint8(b))
				assert.GreaterOrEqual(t, h, 0.0)
				assert.Less(t, h, 360.0)
				assert.GreaterOrEqual(t, s, 0.0)
				assert.LessOrEqual(t, s, 1.0)
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
		}
	}
}

func TestGradientMagnitude_Flat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.SetRGBA(x, y, color.RGBA{90, 90, 90, 255})
		}
	}

	field := GradientMagnitude(img)
	require.Len(t, field, 5)
	for _, row := range field {
		require.Len(t, row, 5)
		for _, v := range row {
			assert.Zero(t, v)
		}
	}
}

func TestGradientMagnitude_VerticalEdge(t *testing.T) {
	// Left half black, right half white. The two columns straddling the
	// edge see the full step response; flat interiors stay at zero.
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= 4 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}

	field := GradientMagnitude(img)
	assert.Zero(t, field[4][1])
	assert.Zero(t, field[4][6])
	assert.InDelta(t, 1.0, float64(field[4][3]), 0.01)
	assert.InDelta(t, 1.0, float64(field[4][4]), 0.01)
}

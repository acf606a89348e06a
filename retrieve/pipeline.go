package retrieve

import (
	"image"

	"github.com/visionkit/cbir/histogram"
)

// Default feature dimensions. The chromaticity and hue-saturation
// histograms are coarse; the color and texture histograms keep the full
// 8-bit range.
const (
	ChromaticityBins = 30
	HueBins          = 30
	SaturationBins   = 30
	ColorBins        = 256
	TextureBins      = 256
)

// pipeline declares the feature set and ranking direction of one mode.
type pipeline struct {
	// extract builds the histogram features of an image, or is nil for
	// modes that score on embedding vectors alone.
	extract func(img image.Image) ([]*histogram.Histogram, error)
	// embedding marks modes that need a vector from the embedding store.
	embedding bool
	// ascending ranks smaller scores first (distances); similarities
	// rank descending.
	ascending bool
}

func extractChromaticity(img image.Image) ([]*histogram.Histogram, error) {
	h, err := histogram.Chromaticity(img, ChromaticityBins)
	if err != nil {
		return nil, err
	}
	return []*histogram.Histogram{h}, nil
}

func extractHueSaturation(img image.Image) ([]*histogram.Histogram, error) {
	h, err := histogram.HueSaturation(img, HueBins, SaturationBins)
	if err != nil {
		return nil, err
	}
	return []*histogram.Histogram{h}, nil
}

func extractBoth(img image.Image) ([]*histogram.Histogram, error) {
	rg, err := extractChromaticity(img)
	if err != nil {
		return nil, err
	}
	hs, err := extractHueSaturation(img)
	if err != nil {
		return nil, err
	}
	return append(rg, hs...), nil
}

func extractColorTexture(img image.Image) ([]*histogram.Histogram, error) {
	c, err := histogram.Color(img, ColorBins)
	if err != nil {
		return nil, err
	}
	t, err := histogram.Texture(img, TextureBins)
	if err != nil {
		return nil, err
	}
	return []*histogram.Histogram{c, t}, nil
}

var pipelines = map[Mode]pipeline{
	Chromaticity: {extract: extractChromaticity},
	HSV:          {extract: extractHueSaturation},
	Both:         {extract: extractBoth},
	ColorTexture: {extract: extractColorTexture},
	Embedding:    {embedding: true, ascending: true},
	Combined:     {extract: extractColorTexture, embedding: true, ascending: true},
}

package retrieve

import (
	"fmt"

	"github.com/visionkit/cbir"
)

// Mode selects the feature set and ranking direction used by a search.
type Mode int

const (
	// Chromaticity ranks by intersection of rg-chromaticity histograms.
	Chromaticity Mode = iota
	// HSV ranks by intersection of hue-saturation histograms.
	HSV
	// Both sums the chromaticity and hue-saturation intersections.
	Both
	// ColorTexture sums color and gradient-magnitude intersections.
	ColorTexture
	// Embedding ranks by cosine distance over stored embedding vectors.
	Embedding
	// Combined sums cosine distance with inverted color and texture
	// intersections.
	Combined
)

var modeNames = map[Mode]string{
	Chromaticity: "chromaticity",
	HSV:          "hsv",
	Both:         "both",
	ColorTexture: "colortexture",
	Embedding:    "embedding",
	Combined:     "combined",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode maps a selector string to its Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("retrieve: unknown mode %q: %w", s, cbir.ErrInvalidParameter)
}

// ModeNames lists the accepted mode selectors in declaration order.
func ModeNames() []string {
	names := make([]string, 0, len(modeNames))
	for m := Chromaticity; m <= Combined; m++ {
		names = append(names, modeNames[m])
	}
	return names
}

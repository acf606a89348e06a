package imageio

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "github.com/spakin/netpbm"  // register PPM/PGM/PBM decoding
	_ "golang.org/x/image/tiff"   // register TIFF decoding

	"github.com/visionkit/cbir"
)

// imageExtensions lists the substrings that mark a directory entry as an
// image. Matching is by substring, not suffix, mirroring how the corpus
// directories are laid out (e.g. "pic.0012.jpg", "pic.0230.tif").
var imageExtensions = []string{".jpg", ".png", ".ppm", ".tif"}

// Load opens and decodes a single image. A missing file or an undecodable
// payload is reported as cbir.ErrResourceUnavailable.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, cbir.ErrResourceUnavailable)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %v: %w", path, err, cbir.ErrResourceUnavailable)
	}
	return img, nil
}

// IsImageName reports whether a directory entry name passes the corpus
// extension filter.
func IsImageName(name string) bool {
	for _, ext := range imageExtensions {
		if strings.Contains(name, ext) {
			return true
		}
	}
	return false
}

// ScanDir lists the image files in dir, non-recursively. Subdirectories and
// entries that fail the extension filter are ignored. The returned paths are
// joined with dir and sorted by name. An unopenable directory is reported as
// cbir.ErrResourceUnavailable.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("imageio: read dir %s: %w", dir, cbir.ErrResourceUnavailable)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !IsImageName(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Identifier returns the identifier under which an image participates in a
// corpus: its base filename. Target self-exclusion and feature-store lookups
// are keyed by this value rather than by raw path equality.
func Identifier(path string) string {
	return filepath.Base(path)
}

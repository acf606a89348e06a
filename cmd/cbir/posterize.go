package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/visionkit/cbir/imageio"
	"github.com/visionkit/cbir/kmeans"
)

var (
	posterizeK   int
	posterizeOut string
)

var posterizeCmd = &cobra.Command{
	Use:   "posterize IMAGE",
	Short: "Quantize an image to K colors with k-means clustering",
	Long: `Posterize clusters the image's pixels into K groups, replaces every
pixel with its cluster mean and writes the result as a JPEG.`,
	Example: `  # Reduce to 8 colors
  cbir posterize photo.png -k 8

  # Choose the output path
  cbir posterize photo.png -k 4 -o flat.jpg`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if posterizeK < 1 {
			return fmt.Errorf("cluster count must be at least 1, got %d", posterizeK)
		}
		return nil
	},
	RunE: runPosterize,
}

func init() {
	posterizeCmd.Flags().IntVarP(&posterizeK, "clusters", "k", 8, "Number of colors to keep")
	posterizeCmd.Flags().StringVarP(&posterizeOut, "out", "o", "", "Output JPEG path (default IMAGE.posterized.jpg)")
}

func runPosterize(cmd *cobra.Command, args []string) error {
	src, err := imageio.Load(args[0])
	if err != nil {
		return err
	}

	pixels := imageio.Pixels(src)
	quantized, err := kmeans.Quantize(pixels, posterizeK)
	if err != nil {
		return err
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for i, px := range quantized {
		x := i % bounds.Dx()
		y := i / bounds.Dx()
		dst.SetRGBA(x, y, color.RGBA{px[0], px[1], px[2], 255})
	}

	out := posterizeOut
	if out == "" {
		base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		out = base + ".posterized.jpg"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, dst, nil); err != nil {
		return fmt.Errorf("encoding %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (%d colors)\n", out, posterizeK)
	return nil
}

package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/visionkit/cbir/feature"
	"github.com/visionkit/cbir/imageio"
	"github.com/visionkit/cbir/retrieve"
)

var (
	baselineTopN int
	baselineCSV  string
	baselineDir  string
)

var baselineCmd = &cobra.Command{
	Use:   "baseline TARGET",
	Short: "Match raw pixel patches by sum of squared differences",
	Long: `Baseline compares the target's center 7x7 grayscale patch against a
corpus by sum of squared differences, lower scores ranking first. The
corpus comes from a CSV feature file, or is computed on the fly when a
directory is given instead.`,
	Example: `  # Match against a precomputed feature file
  cbir baseline target.jpg -f features.csv -n 5

  # Compute corpus patches on the fly
  cbir baseline target.jpg -d ./corpus`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if baselineTopN < 1 {
			return fmt.Errorf("top-n must be at least 1, got %d", baselineTopN)
		}
		if baselineDir == "" && baselineCSV == "" {
			return fmt.Errorf("one of --file or --dir is required")
		}
		return nil
	},
	RunE: runBaseline,
}

func init() {
	baselineCmd.Flags().IntVarP(&baselineTopN, "top-n", "n", 3, "Number of matches to print")
	baselineCmd.Flags().StringVarP(&baselineCSV, "file", "f", "", "CSV feature file")
	baselineCmd.Flags().StringVarP(&baselineDir, "dir", "d", "", "Directory to compute corpus patches from")
	baselineCmd.MarkFlagsMutuallyExclusive("file", "dir")
}

func runBaseline(cmd *cobra.Command, args []string) error {
	target := args[0]
	img, err := imageio.Load(target)
	if err != nil {
		return err
	}
	targetVec, err := feature.PatchVector(img)
	if err != nil {
		return err
	}

	var records []feature.Record
	if baselineDir != "" {
		paths, err := imageio.ScanDir(baselineDir)
		if err != nil {
			return err
		}
		for _, path := range paths {
			src, err := imageio.Load(path)
			if err != nil {
				slog.Warn("skipping undecodable image", "path", path, "error", err)
				continue
			}
			vec, err := feature.PatchVector(src)
			if err != nil {
				slog.Warn("skipping image without a patch vector", "path", path, "error", err)
				continue
			}
			records = append(records, feature.Record{ID: imageio.Identifier(path), Vector: vec})
		}
	} else {
		if records, err = feature.NewFileStore(baselineCSV).Load(); err != nil {
			return err
		}
	}

	selfID := imageio.Identifier(target)
	var matches []retrieve.Match
	for _, rec := range records {
		if rec.ID == selfID {
			continue
		}
		dist, err := feature.SSD(targetVec, rec.Vector)
		if err != nil {
			slog.Warn("skipping incomparable record", "id", rec.ID, "error", err)
			continue
		}
		matches = append(matches, retrieve.Match{ID: rec.ID, Score: dist})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score < matches[j].Score })
	if len(matches) > baselineTopN {
		matches = matches[:baselineTopN]
	}
	printMatches(matches)
	return nil
}

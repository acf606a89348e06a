package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/visionkit/cbir/feature"
	"github.com/visionkit/cbir/retrieve"
)

var (
	histmatchDir  string
	histmatchMode string
	histmatchTopN int
	histmatchCSV  string

	histmatchParsedMode retrieve.Mode
)

var histmatchCmd = &cobra.Command{
	Use:   "histmatch TARGET",
	Short: "Histogram-based retrieval in one of six modes",
	Long: `Histmatch ranks the images of a corpus directory against the target
using histogram intersection or embedding distance, depending on mode:

  chromaticity   rg-chromaticity histogram intersection
  hsv            hue-saturation histogram intersection
  both           chromaticity and hue-saturation summed
  colortexture   color and gradient-texture histograms summed
  embedding      cosine distance over stored embedding vectors
  combined       color + texture + embedding, summed unweighted

The embedding and combined modes need a CSV embedding file (--file).`,
	Example: `  # Hue-saturation retrieval, top 5
  cbir histmatch target.jpg -d ./corpus -m hsv -n 5

  # Combined retrieval with precomputed embeddings
  cbir histmatch target.jpg -d ./corpus -m combined -f embeddings.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateHistmatchFlags,
	RunE:    runHistmatch,
}

func validateHistmatchFlags(cmd *cobra.Command, args []string) error {
	mode, err := retrieve.ParseMode(histmatchMode)
	if err != nil {
		return fmt.Errorf("mode must be one of %s", strings.Join(retrieve.ModeNames(), ", "))
	}
	histmatchParsedMode = mode
	if histmatchTopN < 1 {
		return fmt.Errorf("top-n must be at least 1, got %d", histmatchTopN)
	}
	// The embedding mode scores stored vectors only; every other mode
	// scans the corpus directory.
	if mode != retrieve.Embedding && histmatchDir == "" {
		return fmt.Errorf("--dir is required for mode %s", mode)
	}
	if (mode == retrieve.Embedding || mode == retrieve.Combined) && histmatchCSV == "" {
		return fmt.Errorf("--file is required for mode %s", mode)
	}
	return nil
}

func init() {
	histmatchCmd.Flags().StringVarP(&histmatchDir, "dir", "d", "", "Directory of corpus images")
	histmatchCmd.Flags().StringVarP(&histmatchMode, "mode", "m", "chromaticity", "Retrieval mode")
	histmatchCmd.Flags().IntVarP(&histmatchTopN, "top-n", "n", 3, "Number of matches to print")
	histmatchCmd.Flags().StringVarP(&histmatchCSV, "file", "f", "", "CSV embedding file (embedding and combined modes)")
}

func runHistmatch(cmd *cobra.Command, args []string) error {
	opts := []retrieve.Option{
		retrieve.WithLogger(slog.Default()),
		retrieve.WithCorpusDir(histmatchDir),
	}
	if histmatchCSV != "" {
		opts = append(opts, retrieve.WithEmbeddingStore(feature.NewFileStore(histmatchCSV)))
	}

	driver := retrieve.NewDriver(opts...)
	matches, err := driver.Search(cmd.Context(), args[0], histmatchParsedMode, histmatchTopN)
	if err != nil {
		return err
	}
	printMatches(matches)
	return nil
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/visionkit/cbir/feature"
	"github.com/visionkit/cbir/retrieve"
)

var (
	searchDir  string
	searchCSV  string
	searchTopN int
)

var searchCmd = &cobra.Command{
	Use:   "search TARGET",
	Short: "Combined color, texture and embedding retrieval",
	Long: `Search ranks a corpus directory against the target by summing the
embedding cosine distance with the inverted color and texture histogram
intersections. Corpus entries without a stored embedding are skipped.`,
	Example: `  cbir search pic.0893.jpg -d ./corpus -f embeddings.csv -n 5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if searchTopN < 1 {
			return fmt.Errorf("top-n must be at least 1, got %d", searchTopN)
		}
		return nil
	},
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchDir, "dir", "d", "", "Directory of corpus images")
	searchCmd.Flags().StringVarP(&searchCSV, "file", "f", "", "CSV embedding file")
	searchCmd.Flags().IntVarP(&searchTopN, "top-n", "n", 3, "Number of matches to print")
	_ = searchCmd.MarkFlagRequired("dir")
	_ = searchCmd.MarkFlagRequired("file")
}

func runSearch(cmd *cobra.Command, args []string) error {
	driver := retrieve.NewDriver(
		retrieve.WithLogger(slog.Default()),
		retrieve.WithCorpusDir(searchDir),
		retrieve.WithEmbeddingStore(feature.NewFileStore(searchCSV)),
	)
	matches, err := driver.Search(cmd.Context(), args[0], retrieve.Combined, searchTopN)
	if err != nil {
		return err
	}
	printMatches(matches)
	return nil
}

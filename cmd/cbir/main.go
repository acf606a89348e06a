package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/visionkit/cbir/retrieve"
)

var version = "0.1.0"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cbir",
	Short: "Content-based image retrieval toolkit",
	Long: `cbir ranks a corpus of images by visual similarity to a target image.

It supports raw pixel-patch matching, several histogram features
(chromaticity, hue-saturation, full color, gradient texture), retrieval
over precomputed deep-network embeddings, and a combined mode summing
color, texture and embedding scores. Features can be extracted into a
CSV file or a SQLite database for reuse across runs.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cbir version %s\n", version)
		fmt.Printf("Go version: %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(baselineCmd)
	rootCmd.AddCommand(histmatchCmd)
	rootCmd.AddCommand(posterizeCmd)
	rootCmd.AddCommand(embedmatchCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.SetVersionTemplate(`{{printf "%s version %s" .Name .Version}}
`)
}

func printMatches(matches []retrieve.Match) {
	for _, m := range matches {
		fmt.Printf("%s: %g\n", m.ID, m.Score)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

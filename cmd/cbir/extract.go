package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/visionkit/cbir/engine"
	"github.com/visionkit/cbir/feature"
	"github.com/visionkit/cbir/imageio"
)

var (
	extractDir string
	extractOut string
	extractDB  string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract patch features for every image in a directory",
	Long: `Extract computes the center 7x7 grayscale patch vector of every image
in a directory and appends one record per image to a CSV feature file,
optionally mirroring the records into a SQLite database.`,
	Example: `  # Append features for ./corpus to features.csv
  cbir extract -d ./corpus

  # Write to a different file and a SQLite database
  cbir extract -d ./corpus -o patch.csv --db features.db`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(extractDir); err != nil {
			return fmt.Errorf("corpus directory %s: %w", extractDir, err)
		}
		return nil
	},
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractDir, "dir", "d", "", "Directory of corpus images")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "features.csv", "CSV feature file to append to")
	extractCmd.Flags().StringVar(&extractDB, "db", "", "Optional SQLite database to mirror records into")
	_ = extractCmd.MarkFlagRequired("dir")
}

func runExtract(cmd *cobra.Command, args []string) error {
	paths, err := imageio.ScanDir(extractDir)
	if err != nil {
		return err
	}

	store := feature.NewFileStore(extractOut)
	var records []feature.Record
	for _, path := range paths {
		img, err := imageio.Load(path)
		if err != nil {
			slog.Warn("skipping undecodable image", "path", path, "error", err)
			continue
		}
		vec, err := feature.PatchVector(img)
		if err != nil {
			slog.Warn("skipping image without a patch vector", "path", path, "error", err)
			continue
		}
		rec := feature.Record{ID: imageio.Identifier(path), Vector: vec}
		if err := store.Append(rec); err != nil {
			return err
		}
		records = append(records, rec)
		slog.Debug("extracted", "id", rec.ID)
	}

	if extractDB != "" {
		db, err := engine.Open(extractDB)
		if err != nil {
			return err
		}
		defer db.Close()
		sqlStore, err := feature.NewSQLiteStore(db)
		if err != nil {
			return err
		}
		if err := sqlStore.Add(cmd.Context(), records); err != nil {
			return err
		}
	}

	fmt.Printf("Extracted features for %d of %d images into %s\n", len(records), len(paths), extractOut)
	return nil
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/visionkit/cbir/engine"
	"github.com/visionkit/cbir/feature"
	"github.com/visionkit/cbir/imageio"
	"github.com/visionkit/cbir/index"
	"github.com/visionkit/cbir/index/bruteforce"
	"github.com/visionkit/cbir/index/vptree"
	"github.com/visionkit/cbir/retrieve"
)

var (
	embedmatchCSV   string
	embedmatchDB    string
	embedmatchTopN  int
	embedmatchIndex string
)

var embedmatchCmd = &cobra.Command{
	Use:   "embedmatch TARGET",
	Short: "Cosine retrieval over precomputed embedding vectors",
	Long: `Embedmatch ranks a corpus by cosine distance between the target's
embedding vector and every stored vector. Embeddings come from a CSV
feature file or a SQLite database; the target is identified by its base
filename and must have a stored vector.

With --index the CSV records are loaded into an in-memory kNN index
(brute-force scan or vantage-point tree) instead of being scored one by
one; with --db the ranked scan runs inside SQLite.`,
	Example: `  # Linear scan over a CSV file
  cbir embedmatch pic.0893.jpg -f embeddings.csv -n 5

  # Vantage-point tree index
  cbir embedmatch pic.0893.jpg -f embeddings.csv --index vptree

  # Ranked scan inside a SQLite database
  cbir embedmatch pic.0893.jpg --db features.db`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if embedmatchTopN < 1 {
			return fmt.Errorf("top-n must be at least 1, got %d", embedmatchTopN)
		}
		if embedmatchCSV == "" && embedmatchDB == "" {
			return fmt.Errorf("one of --file or --db is required")
		}
		switch embedmatchIndex {
		case "", "brute", "vptree":
		default:
			return fmt.Errorf("index must be brute or vptree, got %q", embedmatchIndex)
		}
		if embedmatchIndex != "" && embedmatchDB != "" {
			return fmt.Errorf("--index applies to CSV corpora only")
		}
		return nil
	},
	RunE: runEmbedmatch,
}

func init() {
	embedmatchCmd.Flags().StringVarP(&embedmatchCSV, "file", "f", "", "CSV embedding file")
	embedmatchCmd.Flags().StringVar(&embedmatchDB, "db", "", "SQLite feature database")
	embedmatchCmd.Flags().IntVarP(&embedmatchTopN, "top-n", "n", 3, "Number of matches to print")
	embedmatchCmd.Flags().StringVar(&embedmatchIndex, "index", "", "Optional kNN index: brute or vptree")
	embedmatchCmd.MarkFlagsMutuallyExclusive("file", "db")
}

func runEmbedmatch(cmd *cobra.Command, args []string) error {
	if embedmatchDB != "" {
		return embedmatchSQLite(cmd, args[0])
	}
	if embedmatchIndex != "" {
		return embedmatchIndexed(args[0])
	}

	driver := retrieve.NewDriver(
		retrieve.WithLogger(slog.Default()),
		retrieve.WithEmbeddingStore(feature.NewFileStore(embedmatchCSV)),
	)
	matches, err := driver.Search(cmd.Context(), args[0], retrieve.Embedding, embedmatchTopN)
	if err != nil {
		return err
	}
	printMatches(matches)
	return nil
}

func embedmatchSQLite(cmd *cobra.Command, target string) error {
	db, err := engine.Open(embedmatchDB)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := engine.RegisterFeatureFunctions(db); err != nil {
		return err
	}
	store, err := feature.NewSQLiteStore(db)
	if err != nil {
		return err
	}

	selfID := imageio.Identifier(target)
	rec, ok, err := store.LookupID(cmd.Context(), selfID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no embedding for %s in %s", selfID, embedmatchDB)
	}

	ids, dists, err := store.SearchCosine(cmd.Context(), rec.Vector, selfID, embedmatchTopN)
	if err != nil {
		return err
	}
	matches := make([]retrieve.Match, len(ids))
	for i := range ids {
		matches[i] = retrieve.Match{ID: ids[i], Score: dists[i]}
	}
	printMatches(matches)
	return nil
}

func embedmatchIndexed(target string) error {
	records, err := feature.NewFileStore(embedmatchCSV).Load()
	if err != nil {
		return err
	}

	selfID := imageio.Identifier(target)
	rec, ok := feature.Lookup(records, selfID)
	if !ok {
		return fmt.Errorf("no embedding for %s in %s", selfID, embedmatchCSV)
	}

	ids := make([]string, len(records))
	vectors := make([][]float32, len(records))
	for i, r := range records {
		ids[i] = r.ID
		vectors[i] = r.Vector
	}

	var idx index.Index
	if embedmatchIndex == "vptree" {
		idx = &vptree.Index{}
	} else {
		idx = &bruteforce.Index{}
	}
	if err := idx.Build(ids, vectors); err != nil {
		return err
	}

	// The target is its own nearest neighbor; query one extra and drop it.
	foundIDs, dists, err := idx.Query(rec.Vector, embedmatchTopN+1)
	if err != nil {
		return err
	}
	var matches []retrieve.Match
	for i, id := range foundIDs {
		if id == selfID {
			continue
		}
		matches = append(matches, retrieve.Match{ID: id, Score: dists[i]})
	}
	if len(matches) > embedmatchTopN {
		matches = matches[:embedmatchTopN]
	}
	printMatches(matches)
	return nil
}

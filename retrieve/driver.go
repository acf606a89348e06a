package retrieve

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sort"

	"github.com/visionkit/cbir"
	"github.com/visionkit/cbir/feature"
	"github.com/visionkit/cbir/histogram"
	"github.com/visionkit/cbir/imageio"
)

// Match is one ranked result.
type Match struct {
	ID    string
	Score float64
}

// Driver scans a corpus and ranks it against a target image.
type Driver struct {
	logger    *slog.Logger
	corpusDir string
	store     *feature.FileStore
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for per-entry skip warnings.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithCorpusDir sets the directory scanned by the histogram modes.
func WithCorpusDir(dir string) Option {
	return func(d *Driver) { d.corpusDir = dir }
}

// WithEmbeddingStore sets the store consulted by the embedding modes.
func WithEmbeddingStore(s *feature.FileStore) Option {
	return func(d *Driver) { d.store = s }
}

// NewDriver returns a Driver with the given options applied.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Search ranks the corpus against the image at target and returns the
// topN best matches in rank order. The target itself, identified by its
// base filename, is never part of the result. Corpus entries that fail
// to decode or score are logged and skipped.
func (d *Driver) Search(ctx context.Context, target string, mode Mode, topN int) ([]Match, error) {
	if topN < 1 {
		return nil, fmt.Errorf("retrieve: topN must be at least 1, got %d: %w", topN, cbir.ErrInvalidParameter)
	}
	p, ok := pipelines[mode]
	if !ok {
		return nil, fmt.Errorf("retrieve: unknown mode %v: %w", mode, cbir.ErrInvalidParameter)
	}

	selfID := imageio.Identifier(target)

	var targetHists []*histogram.Histogram
	if p.extract != nil {
		img, err := imageio.Load(target)
		if err != nil {
			return nil, err
		}
		if targetHists, err = p.extract(img); err != nil {
			return nil, fmt.Errorf("retrieve: target %s: %w", target, err)
		}
	}

	var records []feature.Record
	var targetVec []float32
	if p.embedding {
		if d.store == nil {
			return nil, fmt.Errorf("retrieve: mode %v needs an embedding store: %w", mode, cbir.ErrInvalidParameter)
		}
		var err error
		if records, err = d.store.Load(); err != nil {
			return nil, err
		}
		rec, ok := feature.Lookup(records, selfID)
		if !ok {
			return nil, fmt.Errorf("retrieve: no embedding for %s in %s: %w", selfID, d.store.Path(), cbir.ErrResourceUnavailable)
		}
		targetVec = rec.Vector
	}

	var matches []Match
	var err error
	if p.extract != nil {
		matches, err = d.scanDir(ctx, p, selfID, targetHists, targetVec, records)
	} else {
		matches, err = d.scanStore(ctx, selfID, targetVec, records)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if p.ascending {
			return matches[i].Score < matches[j].Score
		}
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches, nil
}

// scanDir scores every image in the corpus directory. When records is
// non-nil the histogram intersections are inverted and a cosine term is
// added, so all components agree on ascending order.
func (d *Driver) scanDir(ctx context.Context, p pipeline, selfID string, targetHists []*histogram.Histogram, targetVec []float32, records []feature.Record) ([]Match, error) {
	paths, err := imageio.ScanDir(d.corpusDir)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		id := imageio.Identifier(path)
		if id == selfID {
			continue
		}

		img, err := imageio.Load(path)
		if err != nil {
			d.logger.Warn("skipping undecodable corpus entry", "path", path, "error", err)
			continue
		}
		score, err := d.scoreImage(p, img, targetHists)
		if err != nil {
			d.logger.Warn("skipping unscorable corpus entry", "path", path, "error", err)
			continue
		}

		if p.embedding {
			rec, ok := feature.Lookup(records, id)
			if !ok {
				d.logger.Warn("skipping corpus entry without embedding", "id", id)
				continue
			}
			dist, err := feature.CosineDistance(targetVec, rec.Vector)
			if err != nil {
				d.logger.Warn("skipping unscorable embedding", "id", id, "error", err)
				continue
			}
			score += dist
		}
		matches = append(matches, Match{ID: id, Score: score})
	}
	return matches, nil
}

func (d *Driver) scoreImage(p pipeline, img image.Image, targetHists []*histogram.Histogram) (float64, error) {
	hists, err := p.extract(img)
	if err != nil {
		return 0, err
	}
	var score float64
	for i, h := range hists {
		sim, err := histogram.Intersect(targetHists[i], h)
		if err != nil {
			return 0, err
		}
		if p.ascending {
			score += 1 - sim
		} else {
			score += sim
		}
	}
	return score, nil
}

// scanStore scores every record of the embedding store by cosine
// distance to the target vector.
func (d *Driver) scanStore(ctx context.Context, selfID string, targetVec []float32, records []feature.Record) ([]Match, error) {
	var matches []Match
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rec.ID == selfID {
			continue
		}
		dist, err := feature.CosineDistance(targetVec, rec.Vector)
		if err != nil {
			d.logger.Warn("skipping unscorable embedding", "id", rec.ID, "error", err)
			continue
		}
		matches = append(matches, Match{ID: rec.ID, Score: dist})
	}
	return matches, nil
}

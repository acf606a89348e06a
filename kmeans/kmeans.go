package kmeans

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/visionkit/cbir"
)

// Pixel is a 3-component color sample with 8-bit channels.
type Pixel = [3]uint8

// Defaults for the E-M loop.
const (
	DefaultMaxIterations = 10
	DefaultStopThresh    = 0
)

type config struct {
	maxIterations int
	stopThresh    int
	rng           *rand.Rand
}

// Option customizes a Cluster call.
type Option func(*config)

// WithMaxIterations caps the number of E-M iterations.
func WithMaxIterations(n int) Option {
	return func(c *config) { c.maxIterations = n }
}

// WithStopThresh sets the early-stop threshold: the loop terminates once the
// summed squared shift of all means in one update step is at or below it.
func WithStopThresh(t int) Option {
	return func(c *config) { c.stopThresh = t }
}

// WithRand supplies the random source used to pick the comb-sampling offset.
// The offset is the only source of non-determinism; callers that need
// reproducible clusterings must provide a seeded source.
func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rng = r }
}

// ssd is the squared per-channel distance between two samples.
func ssd(a, b Pixel) int {
	d0 := int(a[0]) - int(b[0])
	d1 := int(a[1]) - int(b[1])
	d2 := int(a[2]) - int(b[2])
	return d0*d0 + d1*d1 + d2*d2
}

// Cluster partitions data into k clusters and returns the k cluster means
// together with one label per input sample, each label in [0, k).
//
// k must satisfy 1 <= k <= len(data); anything else is reported as
// cbir.ErrInvalidParameter.
func Cluster(data []Pixel, k int, opts ...Option) (means []Pixel, labels []int, err error) {
	means, labels, _, err = run(data, k, opts...)
	return means, labels, err
}

// run is Cluster plus the number of E-M iterations actually executed,
// which the convergence tests inspect.
func run(data []Pixel, k int, opts ...Option) (means []Pixel, labels []int, iterations int, err error) {
	if k < 1 || k > len(data) {
		return nil, nil, 0, fmt.Errorf("kmeans: k=%d out of range for %d samples: %w",
			k, len(data), cbir.ErrInvalidParameter)
	}

	cfg := config{
		maxIterations: DefaultMaxIterations,
		stopThresh:    DefaultStopThresh,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	n := len(data)

	// Comb sampling: a random offset inside the remainder gap, then every
	// n/k-th sample from there.
	delta := n / k
	gap := n % k
	if gap < 1 {
		gap = 1
	}
	offset := cfg.rng.Intn(gap)

	means = make([]Pixel, k)
	for i := 0; i < k; i++ {
		means[i] = data[(offset+i*delta)%n]
	}

	labels = make([]int, n)
	sums := make([][3]int, k)
	counts := make([]int, k)

	for iterations = 0; iterations < cfg.maxIterations; iterations++ {
		// Classify: nearest mean by SSD, ties keep the lowest index.
		for j, p := range data {
			best := ssd(means[0], p)
			bestIdx := 0
			for c := 1; c < k; c++ {
				if d := ssd(means[c], p); d < best {
					best = d
					bestIdx = c
				}
			}
			labels[j] = bestIdx
		}

		// Update: integer-truncated per-channel averages.
		for c := range sums {
			sums[c] = [3]int{}
			counts[c] = 0
		}
		for j, p := range data {
			c := labels[j]
			sums[c][0] += int(p[0])
			sums[c][1] += int(p[1])
			sums[c][2] += int(p[2])
			counts[c]++
		}

		shift := 0
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// An empty cluster keeps its previous mean.
				continue
			}
			next := Pixel{
				uint8(sums[c][0] / counts[c]),
				uint8(sums[c][1] / counts[c]),
				uint8(sums[c][2] / counts[c]),
			}
			shift += ssd(next, means[c])
			means[c] = next
		}

		if shift <= cfg.stopThresh {
			iterations++
			break
		}
	}

	return means, labels, iterations, nil
}

// Quantize relabels every sample with its cluster mean, producing the
// posterized pixel sequence. It is a convenience over Cluster for the
// color-quantization path.
func Quantize(data []Pixel, k int, opts ...Option) ([]Pixel, error) {
	means, labels, err := Cluster(data, k, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]Pixel, len(data))
	for i, label := range labels {
		out[i] = means[label]
	}
	return out, nil
}

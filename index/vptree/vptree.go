package vptree

import (
	"fmt"
	"math"
	"sort"

	"github.com/viant/vec/search"

	"github.com/visionkit/cbir/index/bruteforce"
)

// Index implements a cosine kNN index using a VP-tree to prune search.
//
// The tree is organized over chord distance between normalized vectors,
// sqrt(2 * cosineDistance), which is a true metric (plain Euclidean
// distance on the unit sphere) and therefore safe to prune with the
// triangle inequality. Chord distance is monotone in cosine distance, so
// the ranking is identical to a brute-force cosine scan; reported scores
// are converted back to cosine distances.
type Index struct {
	ids  []string
	vecs [][]float32
	mags []float32
	dim  int
	root *node
}

type node struct {
	idx   int // index into ids/vecs
	thr   float64
	left  *node
	right *node
}

// Build constructs the VP-tree and caches magnitudes. Entries with zero
// magnitude are retained for serialization but left out of the tree, so
// Query never returns them.
func (i *Index) Build(ids []string, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("vptree: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	i.ids = append([]string(nil), ids...)
	i.vecs = append([][]float32(nil), vectors...)
	i.mags = make([]float32, len(vectors))
	i.root = nil
	if len(vectors) == 0 {
		i.dim = 0
		return nil
	}
	i.dim = len(vectors[0])
	var idxs []int
	for j := range vectors {
		if len(vectors[j]) != i.dim {
			return fmt.Errorf("vptree: inconsistent vector dims %d vs %d", len(vectors[j]), i.dim)
		}
		i.mags[j] = search.Float32s(vectors[j]).Magnitude()
		if i.mags[j] != 0 {
			idxs = append(idxs, j)
		}
	}
	i.root = i.buildVP(idxs)
	return nil
}

// chord converts a cosine distance to chord distance on the unit sphere.
func chord(cosDist float64) float64 {
	if cosDist < 0 {
		cosDist = 0
	}
	return math.Sqrt(2 * cosDist)
}

func (i *Index) chordDist(a, b int) float64 {
	d := float64(cosineDistanceWithMagnitude(search.Float32s(i.vecs[a]), i.vecs[b], i.mags[a], i.mags[b]))
	return chord(d)
}

func (i *Index) buildVP(idxs []int) *node {
	if len(idxs) == 0 {
		return nil
	}
	// The last element serves as the vantage point; no extra randomness.
	vp := idxs[len(idxs)-1]
	idxs = idxs[:len(idxs)-1]
	if len(idxs) == 0 {
		return &node{idx: vp}
	}

	dists := make([]float64, len(idxs))
	for k, j := range idxs {
		dists[k] = i.chordDist(vp, j)
	}

	order := make([]int, len(idxs))
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })

	mid := len(dists) / 2
	thr := dists[order[mid]]
	left := make([]int, 0, mid+1)
	right := make([]int, 0, len(idxs)-(mid+1))
	for rank, k := range order {
		if rank <= mid {
			left = append(left, idxs[k])
		} else {
			right = append(right, idxs[k])
		}
	}
	return &node{
		idx:   vp,
		thr:   thr,
		left:  i.buildVP(left),
		right: i.buildVP(right),
	}
}

// Query returns up to k entries by ascending cosine distance, pruning
// subtrees via the vantage-point bound.
func (i *Index) Query(query []float32, k int) ([]string, []float64, error) {
	if k <= 0 || i.dim == 0 || i.root == nil {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("vptree: query dim %d != index dim %d", len(query), i.dim)
	}
	q := search.Float32s(query)
	qm := q.Magnitude()
	if qm == 0 {
		return nil, nil, nil
	}

	type cand struct {
		idx  int
		dist float64 // chord distance
	}
	var found []cand
	bound := 2.0 // chord distance never exceeds 2

	worst := func() int {
		w := 0
		for t := 1; t < len(found); t++ {
			if found[t].dist > found[w].dist {
				w = t
			}
		}
		return w
	}

	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		d := chord(float64(cosineDistanceWithMagnitude(q, i.vecs[n.idx], qm, i.mags[n.idx])))
		if len(found) < k {
			found = append(found, cand{idx: n.idx, dist: d})
			if len(found) == k {
				bound = found[worst()].dist
			}
		} else if d < bound {
			found[worst()] = cand{idx: n.idx, dist: d}
			bound = found[worst()].dist
		}
		// Triangle-inequality pruning; visit the likelier half first.
		if d < n.thr {
			if d-bound <= n.thr {
				walk(n.left)
			}
			if d+bound >= n.thr {
				walk(n.right)
			}
		} else {
			if d+bound >= n.thr {
				walk(n.right)
			}
			if d-bound <= n.thr {
				walk(n.left)
			}
		}
	}
	walk(i.root)

	sort.SliceStable(found, func(a, b int) bool { return found[a].dist < found[b].dist })
	if k > len(found) {
		k = len(found)
	}
	ids := make([]string, k)
	dists := make([]float64, k)
	for n := 0; n < k; n++ {
		ids[n] = i.ids[found[n].idx]
		dists[n] = found[n].dist * found[n].dist / 2 // back to cosine distance
	}
	return ids, dists, nil
}

// MarshalBinary uses the brute-force format for persistence.
func (i *Index) MarshalBinary() ([]byte, error) {
	bf := &bruteforce.Index{}
	if err := bf.Build(i.ids, i.vecs); err != nil {
		return nil, err
	}
	return bf.MarshalBinary()
}

// UnmarshalBinary loads the brute-force format and rebuilds the VP-tree.
func (i *Index) UnmarshalBinary(data []byte) error {
	ids, vecs, err := bruteforce.DecodeEntries(data)
	if err != nil {
		return err
	}
	return i.Build(ids, vecs)
}

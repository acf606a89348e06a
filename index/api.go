package index

// Index is a kNN index over identified embedding vectors.
type Index interface {
	// Build constructs the index from the given ids and vectors.
	// ids and vectors must have the same length and all vectors the same
	// dimension.
	Build(ids []string, vectors [][]float32) error

	// Query runs a kNN search with the provided query vector and returns
	// up to k matches as parallel slices of ids and cosine distances,
	// ascending (lower distance means more similar). Entries that cannot
	// be scored (zero magnitude) are omitted; k <= 0 yields no matches.
	Query(query []float32, k int) (ids []string, distances []float64, err error)

	// MarshalBinary serializes the index into a byte slice.
	MarshalBinary() ([]byte, error)

	// UnmarshalBinary reconstructs the index from a serialized byte slice.
	UnmarshalBinary(data []byte) error
}

// Package cbir provides the shared error taxonomy for the content-based
// image retrieval toolkit. The numeric primitives live in the kmeans,
// histogram, and feature packages; corpus ranking lives in retrieve; the
// cbir command under cmd/cbir wires them into the retrieval programs.
package cbir

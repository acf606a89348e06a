// Package index defines a minimal abstraction for the kNN indexes used by
// the embedding-retrieval path: built from (identifier, vector) pairs,
// queried for the k nearest catalog entries by cosine distance, and
// serialized for reuse across invocations. Implementations in this module
// are a brute-force baseline and a VP-tree.
package index

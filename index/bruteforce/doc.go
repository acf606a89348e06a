// Package bruteforce provides a simple embedding index that answers kNN
// queries by scanning all vectors and scoring via cosine distance. It
// supports a compact binary format for persistence.
package bruteforce

// Package vptree provides a vantage-point tree over cosine distance that
// prunes kNN search on larger embedding corpora. It persists in the
// brute-force binary format and rebuilds the tree on load.
package vptree

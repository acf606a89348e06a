// Package kmeans implements Lloyd's algorithm over 3-channel pixel samples.
// It is used for color quantization (posterization): cluster the pixels of
// an image into K representative colors and relabel every pixel with its
// cluster mean. Initialization uses comb sampling with a random offset,
// which keeps startup cheap while still varying the result run to run.
package kmeans

// Package histogram reduces images (or derived per-pixel scalar fields)
// into dense normalized frequency tables and compares them with histogram
// intersection. Two normalization schemes appear: the chromaticity builder
// divides by the pixel count, every other builder min-max scales to [0, 1].
// Histograms built under different schemes are not distance-comparable.
package histogram

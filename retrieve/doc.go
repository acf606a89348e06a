// Package retrieve ranks a corpus of images against a target image.
//
// A Driver runs one of six retrieval modes. Each mode is described by a
// pipeline that names the histogram features to build and whether lower
// or higher scores rank first; the driver itself only scans, scores,
// sorts and truncates. The target never matches itself: candidates with
// the target's base-filename identifier are excluded.
package retrieve

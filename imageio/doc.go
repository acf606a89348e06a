// Package imageio provides the image input layer for the retrieval
// pipelines: decoding (JPEG, PNG, PPM, TIFF), non-recursive corpus
// directory scanning with the extension filter, and the small pixel-level
// conversions (8-bit RGB access, HSV, Sobel gradient magnitude) that the
// histogram builders are defined over.
package imageio

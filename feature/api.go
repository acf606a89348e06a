package feature

// Record pairs an image identifier (its base filename) with the numeric
// descriptor extracted for it. Records are created at extraction time and
// read-only afterward.
type Record struct {
	// ID is the identifier of the catalog image, e.g. "pic.0012.jpg".
	ID string

	// Vector is the ordered descriptor. Its meaning depends on the
	// extraction path: a flattened grayscale patch for the baseline
	// matcher, or an externally computed deep-network embedding.
	Vector []float32
}

// Lookup scans records in order and returns the first one whose ID equals
// id. The corpus format does not enforce uniqueness on append, so the same
// identifier may occur more than once; first match wins.
func Lookup(records []Record, id string) (Record, bool) {
	for _, rec := range records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

package feature

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/visionkit/cbir"
)

// FileStore is the flat corpus format shared by the extraction and matching
// programs: one record per line, `identifier,v0,v1,...,vk`. Append never
// deduplicates, so the same identifier may occur on several lines; Lookup
// over the loaded records returns the first.
type FileStore struct {
	path string
}

// NewFileStore returns a store over the given CSV path. The file is opened
// lazily by Load and Append.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the underlying file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the whole file into memory. A missing or unreadable file is
// reported as cbir.ErrResourceUnavailable; a malformed line aborts the load.
func (s *FileStore) Load() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("feature: open %s: %w", s.path, cbir.ErrResourceUnavailable)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // vector lengths may differ between extractors

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("feature: parse %s: %w", s.path, err)
	}

	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("feature: %s line %d: want identifier and at least one value", s.path, i+1)
		}
		vec := make([]float32, 0, len(row)-1)
		for _, field := range row[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("feature: %s line %d: %w", s.path, i+1, err)
			}
			vec = append(vec, float32(v))
		}
		records = append(records, Record{ID: row[0], Vector: vec})
	}
	return records, nil
}

// Append writes one record to the end of the file, creating it if needed.
// No uniqueness check is performed.
func (s *FileStore) Append(rec Record) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("feature: open %s for append: %w", s.path, cbir.ErrResourceUnavailable)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := make([]string, 0, len(rec.Vector)+1)
	row = append(row, rec.ID)
	for _, v := range rec.Vector {
		row = append(row, strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("feature: append to %s: %w", s.path, err)
	}
	w.Flush()
	return w.Error()
}

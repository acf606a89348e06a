package feature

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteStore keeps feature records in a SQLite features table, with
// vectors stored as BLOBs via EncodeVector. Ranked scans are pushed into
// SQL using the cbir_cosine scalar function, which must have been
// registered with the driver (see the engine package) before the first
// connection is opened.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed store. It ensures the features
// schema exists in the provided database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("feature: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts records in one transaction. Record.ID must be non-empty.
// Duplicate identifiers are inserted as-is.
func (s *SQLiteStore) Add(ctx context.Context, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO features(id, vector) VALUES(?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range recs {
		if rec.ID == "" {
			return fmt.Errorf("feature: Record.ID must be set in Add")
		}
		blob, err := EncodeVector(rec.Vector)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, blob); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Load returns every record in insertion order.
func (s *SQLiteStore) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, vector FROM features ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var blob []byte
		if err := rows.Scan(&rec.ID, &blob); err != nil {
			return nil, err
		}
		if rec.Vector, err = DecodeVector(blob); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// LookupID returns the earliest-inserted record with the given identifier,
// preserving the first-match-wins duplicate semantics of the CSV format.
func (s *SQLiteStore) LookupID(ctx context.Context, id string) (Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT vector FROM features WHERE id = ? ORDER BY rowid LIMIT 1`, id)

	var blob []byte
	switch err := row.Scan(&blob); err {
	case nil:
	case sql.ErrNoRows:
		return Record{}, false, nil
	default:
		return Record{}, false, err
	}

	vec, err := DecodeVector(blob)
	if err != nil {
		return Record{}, false, err
	}
	return Record{ID: id, Vector: vec}, true, nil
}

// SearchCosine ranks the stored records by cosine distance to the query,
// ascending, excluding excludeID, and returns up to k (id, distance) pairs.
// Rows whose vector has zero magnitude or a mismatched length rank as NULL
// and are filtered out.
func (s *SQLiteStore) SearchCosine(ctx context.Context, query []float32, excludeID string, k int) ([]string, []float64, error) {
	if k <= 0 {
		return nil, nil, nil
	}
	blob, err := EncodeVector(query)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, dist FROM (
    SELECT id, rowid AS rid, cbir_cosine(vector, ?) AS dist
    FROM features
    WHERE id <> ?
)
WHERE dist IS NOT NULL
ORDER BY dist ASC, rid ASC
LIMIT ?`, blob, excludeID, k)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var ids []string
	var dists []float64
	for rows.Next() {
		var id string
		var dist float64
		if err := rows.Scan(&id, &dist); err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		dists = append(dists, dist)
	}
	return ids, dists, rows.Err()
}

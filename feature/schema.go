package feature

import (
	"database/sql"
)

// The features table deliberately has no PRIMARY KEY on id: the CSV corpus
// format never deduplicated on append, and the store preserves those
// first-match-wins semantics (Lookup orders by rowid).
const featuresSchema = `
CREATE TABLE IF NOT EXISTS features (
    id     TEXT NOT NULL,
    vector BLOB NOT NULL
);
`

// EnsureSchema creates the features table in the provided database if it
// does not already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(featuresSchema)
	return err
}

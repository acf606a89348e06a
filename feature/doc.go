// Package feature defines the feature-vector layer of the toolkit:
//   - Record model (identifier + float32 vector)
//   - baseline 7x7 center-patch extraction
//   - SSD and cosine distance between vectors
//   - little-endian float32 BLOB encoding for SQLite storage
//   - FileStore: the append-only CSV corpus format
//   - SQLiteStore: durable storage with SQL-side ranking
package feature

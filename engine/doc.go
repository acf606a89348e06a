// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections and registering the scalar
// SQL functions (cbir_cosine, cbir_ssd, cbir_intersect) that let the
// feature store rank vector BLOBs inside SQLite. It intentionally keeps a
// thin surface so other packages can share the same driver instance.
package engine

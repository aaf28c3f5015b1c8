// Package repositories implements SQLite persistence for the track catalog.
//
// [CatalogRepository] stores a whole [catalog.Catalog] at once: tracks, categories and the ordered membership
// between them. A save replaces whatever was stored before, inside a single transaction.
//
// Sequence numbers record catalog order independent of IDs and creation timestamps.
// [NextSequence] increments per-table counters kept in dedicated sequence tables.
package repositories

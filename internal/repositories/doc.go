// Package repositories implements SQLite persistence for local upload receipts.
//
// The backend owns all video data; the client only remembers what it uploaded so
// `vtx uploads list` can show history across runs.
//
// Key Implementations:
//   - [UploadRepository] : receipts keyed by UUID, with lookups by backend video ID and uploader
//
// Sequence numbers give stable, human-readable ordering (upload #1, #2, ...) independent of UUIDs and timestamps.
// The [NextSequence] function atomically increments per-table counters in dedicated sequence tables.
// Deletes are soft: deleted_at is stamped and queries exclude those rows.
package repositories

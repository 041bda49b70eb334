// Package store provides SQLite-backed caching for rendered frames.
//
// A frame row records the canonical tree serialization and its digest for
// one (composition, frame) pair. Because rendering is deterministic, a row
// is immutable once written: re-rendering the same frame must reproduce the
// same bytes, so duplicate writes are resolved with ON CONFLICT DO NOTHING
// and Verify can audit a database by recomputing digests at any time.
//
// The primary key is (composition_id, frame), never a timestamp or write
// order. Readers must not depend on insertion order; ListFrames returns
// rows ordered by frame number.
//
// Database configuration:
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// Digests are computed in internal/scene using RFC 8785 canonical JSON and
// SHA-256 with domain separation.
package store

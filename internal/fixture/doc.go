// Package fixture provides durable storage for rendered placeholder
// values, so test suites can share one canonical fixture per type shape
// instead of re-rendering.
//
// Fixtures are content-addressed: the row ID is the hash of the type name
// and the canonical JSON body, and writes are idempotent. Uses SQLite with
// WAL mode for concurrent read access.
package fixture

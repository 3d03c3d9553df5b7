// Package snapshot stores the cached language ranking and decides when it
// must be recomputed.
//
// # Overview
//
// A [Snapshot] is the ranked, colorized summary of a user's language shares
// together with the time it was computed. Exactly one snapshot exists per
// deployment; it lives under a fixed document identity in a [Store].
//
// Several backends are provided:
//
//   - [MongoStore]: one document in a MongoDB collection (default)
//   - [RedisStore]: one JSON value under a Redis key
//   - [SQLiteStore]: one row in a local SQLite database
//   - [FileStore]: one JSON file on disk
//   - [MemoryStore]: process-local, for tests and the CLI
//
// All backends use last-writer-wins overwrite semantics.
//
// # Gate
//
// [Gate] wraps a Store with the freshness rule: a snapshot older than the
// configured maximum age (one hour by default) is recomputed through a
// [Refresher] and written back. Concurrent requests that observe the same
// stale snapshot share a single refresh.
//
//	gate := snapshot.NewGate(store, svc, snapshot.WithLogger(logger))
//	snap, refreshed, err := gate.Snapshot(ctx)
package snapshot

// Package kvstore is the client's persistent key-value surface: a small,
// origin-scoped store that survives restarts and holds the access token and
// the serialized theme settings.
//
// Two implementations are provided:
//
//   - SQLiteStore: a single "kv" table in a local SQLite file (pure-Go
//     modernc.org/sqlite driver), schema applied with embedded goose
//     migrations by Open.
//   - MemoryStore: a mutex-guarded map for tests and ephemeral runs.
//
// Both return values synchronously and never perform network I/O, which is
// what lets the preference container read its record before the first
// prompt is drawn.
package kvstore

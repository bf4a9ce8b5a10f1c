// Package store provides durable backends for parley's three collections:
// the session directory, the per-session message logs, and the per-recipient
// notification queues.
//
// Two implementations of the domain store interfaces are included:
//   - FileStore: JSON files on disk, one per collection, written atomically
//     via a temp file and rename. A passphrase-sealed variant encrypts the
//     files at rest.
//   - SQLiteStore: one table per collection with the records held in a JSON
//     column.
//
// Every method is an atomic read-modify-write of a single logical key,
// serialised by internal locking (FileStore) or by the database (SQLiteStore).
// Writes to different collections are independent; operations that touch more
// than one collection commit key by key, in the order the caller issues them.
package store

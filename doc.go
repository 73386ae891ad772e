// Package litebind is a resource-safety layer over embedded SQLite.
//
// SQL execution belongs to the engine; what this package owns is the
// lifetime bookkeeping around it: which handles are open, which dependent
// objects (row iterators, change-tracking sessions) are alive against each
// handle, and how destructive whole-database operations are performed
// without pulling pages out from under a live cursor.
//
// The three pillars:
//
//   - Database: one engine connection plus a registry of dependents. The
//     handle is "busy" while any Rows iterator is unconsumed; busy blocks
//     session creation and the replace protocol. Close invalidates every
//     dependent before releasing the connection.
//
//   - Session: records row-level changes against attached tables and
//     snapshots them as changesets. Sessions hold non-owning back-references
//     to their handle and never outlive it.
//
//   - Replace protocol: Deserialize (adopt a serialized image) and
//     BackupFrom (copy another live handle) both stage and then transplant
//     via the engine's page copy, never patching the target in place.
//
// Changesets and serialized snapshots cross the C boundary as Buffer values
// owned by the engine's allocator; close them when done.
//
// Errors are split three ways: TypeError for caller misuse and StateError
// for lifecycle violations, both raised before the engine is touched, and
// EngineError for failures SQLite itself reports, passed through verbatim.
package litebind

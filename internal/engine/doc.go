// Package engine is the cgo shim over the SQLite C library.
//
// Everything the binding layer asks of SQLite crosses this package: opening
// and closing connections, statement preparation and stepping, whole-database
// serialization, the online backup API, change-tracking sessions, and
// changeset transforms. Nothing above this package touches C.
//
// The shim links against the system libsqlite3 and requires a build with the
// session extension compiled in (SQLITE_ENABLE_SESSION and
// SQLITE_ENABLE_PREUPDATE_HOOK). Stock distribution packages of libsqlite3
// generally qualify; a build without the extension fails at link time, not at
// runtime.
//
// Memory discipline: buffers produced by SQLite (serialized snapshots,
// changesets) are owned by SQLite's allocator and surface here as *Buffer,
// which releases through sqlite3_free. They must never be handed to Go's or
// C's general-purpose free.
//
// This package performs no argument validation beyond what the C API needs;
// caller-misuse and lifecycle checks belong to the public litebind package.
package engine

package engine

/*
#cgo CFLAGS: -DSQLITE_ENABLE_SESSION -DSQLITE_ENABLE_PREUPDATE_HOOK
#cgo LDFLAGS: -lsqlite3

#include <sqlite3.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"
)

// Conn is one open SQLite connection.
//
// A Conn is not safe for concurrent use; the binding layer serializes access
// per its single-owner model. The zero value is not usable; obtain a Conn
// from Open.
type Conn struct {
	db *C.sqlite3
}

// Open connects to the database at location, creating a file-backed database
// if none exists. URI filenames (file:...?...) and ":memory:" are accepted.
func Open(location string) (*Conn, error) {
	zLoc := C.CString(location)
	defer C.free(unsafe.Pointer(zLoc))

	var db *C.sqlite3
	flags := C.int(C.SQLITE_OPEN_READWRITE | C.SQLITE_OPEN_CREATE | C.SQLITE_OPEN_URI)
	rc := C.sqlite3_open_v2(zLoc, &db, flags, nil)
	if rc != C.SQLITE_OK {
		// Per the C API, a handle may be returned even on failure and must
		// still be closed to free the error state.
		if db != nil {
			err := lastError(db)
			C.sqlite3_close(db)
			return nil, err
		}
		return nil, errForCode(rc)
	}

	C.sqlite3_extended_result_codes(db, 1)
	return &Conn{db: db}, nil
}

// Close releases the connection. All statements, sessions, and backups
// derived from it must be finalized first; SQLITE_BUSY is reported otherwise.
func (c *Conn) Close() error {
	if c.db == nil {
		return nil
	}
	rc := C.sqlite3_close(c.db)
	if rc != C.SQLITE_OK {
		return lastError(c.db)
	}
	c.db = nil
	return nil
}

// Exec runs one or more SQL statements to completion, discarding any rows.
func (c *Conn) Exec(sql string) error {
	zSQL := C.CString(sql)
	defer C.free(unsafe.Pointer(zSQL))

	var zErr *C.char
	rc := C.sqlite3_exec(c.db, zSQL, nil, nil, &zErr)
	if rc != C.SQLITE_OK {
		err := &Error{Code: int(C.sqlite3_extended_errcode(c.db))}
		if zErr != nil {
			err.Message = C.GoString(zErr)
			C.sqlite3_free(unsafe.Pointer(zErr))
		} else {
			err.Message = C.GoString(C.sqlite3_errmsg(c.db))
		}
		return err
	}
	return nil
}

// BusyTimeout installs SQLite's built-in busy handler with the given
// millisecond budget. Zero or negative clears the handler.
func (c *Conn) BusyTimeout(ms int) error {
	if rc := C.sqlite3_busy_timeout(c.db, C.int(ms)); rc != C.SQLITE_OK {
		return lastError(c.db)
	}
	return nil
}

// Changes reports the number of rows changed by the most recent statement.
func (c *Conn) Changes() int64 {
	return int64(C.sqlite3_changes64(c.db))
}

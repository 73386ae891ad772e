package engine

/*
#include <sqlite3.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"
)

// Session is one sqlite3session change-tracking object, scoped to a single
// schema of its connection. Lifecycle (who may call what, and when) is
// enforced by the binding layer; this type only carries the native handle.
type Session struct {
	conn *Conn
	sess *C.sqlite3_session
}

// CreateSession asks SQLite for a new session attached to the named schema
// of this connection.
func (c *Conn) CreateSession(schema string) (*Session, error) {
	zSchema := C.CString(schema)
	defer C.free(unsafe.Pointer(zSchema))

	var sess *C.sqlite3_session
	rc := C.sqlite3session_create(c.db, zSchema, &sess)
	if rc != C.SQLITE_OK {
		return nil, lastError(c.db)
	}
	return &Session{conn: c, sess: sess}, nil
}

// Attach adds the named table to the session's tracked set. The empty string
// attaches all tables, present and future. Attaching is additive; a name
// that matches no table is accepted and tracks nothing.
func (s *Session) Attach(table string) error {
	var zTable *C.char
	if table != "" {
		zTable = C.CString(table)
		defer C.free(unsafe.Pointer(zTable))
	}
	if rc := C.sqlite3session_attach(s.sess, zTable); rc != C.SQLITE_OK {
		return lastError(s.conn.db)
	}
	return nil
}

// Enable starts or stops recording. Accumulated changes survive a disable.
func (s *Session) Enable(on bool) {
	flag := C.int(0)
	if on {
		flag = 1
	}
	C.sqlite3session_enable(s.sess, flag)
}

// Changeset snapshots every change recorded since the session was created.
// A session that recorded nothing yields (nil, nil).
func (s *Session) Changeset() (*Buffer, error) {
	var n C.int
	var p unsafe.Pointer
	rc := C.sqlite3session_changeset(s.sess, &n, &p)
	if rc != C.SQLITE_OK {
		return nil, lastError(s.conn.db)
	}
	if p == nil || n == 0 {
		if p != nil {
			C.sqlite3_free(p)
		}
		return nil, nil
	}
	return newBuffer(p, int64(n)), nil
}

// Diff loads the session with the changes that would transform table in
// fromSchema into the same-named table of the session's own schema. The
// table must be attached first and both tables must share a compatible
// primary-key shape; SQLite reports anything else through the returned error.
func (s *Session) Diff(fromSchema, table string) error {
	zFrom := C.CString(fromSchema)
	defer C.free(unsafe.Pointer(zFrom))
	zTable := C.CString(table)
	defer C.free(unsafe.Pointer(zTable))

	var zErr *C.char
	rc := C.sqlite3session_diff(s.sess, zFrom, zTable, &zErr)
	if rc != C.SQLITE_OK {
		err := &Error{Code: int(rc)}
		if zErr != nil {
			err.Message = C.GoString(zErr)
			C.sqlite3_free(unsafe.Pointer(zErr))
		} else {
			err.Message = C.GoString(C.sqlite3_errstr(rc))
		}
		return err
	}
	if zErr != nil {
		C.sqlite3_free(unsafe.Pointer(zErr))
	}
	return nil
}

// Delete releases the native session object. Safe to call more than once.
// Must happen before the owning connection closes.
func (s *Session) Delete() {
	if s.sess == nil {
		return
	}
	C.sqlite3session_delete(s.sess)
	s.sess = nil
}

package engine

/*
#include <sqlite3.h>

// The apply API requires a conflict handler; OMIT is SQLite's baseline
// resolution (skip the conflicting change, keep going).
static int lb_conflict_omit(void *ctx, int eConflict, sqlite3_changeset_iter *it) {
	(void)ctx;
	(void)eConflict;
	(void)it;
	return SQLITE_CHANGESET_OMIT;
}

static int lb_changeset_apply(sqlite3 *db, int n, void *p) {
	return sqlite3changeset_apply(db, n, p, NULL, lb_conflict_omit, NULL);
}
*/
import "C"

import (
	"unsafe"
)

// ApplyChangeset replays the recorded changes in data against this
// connection, in changeset order, resolving conflicts by omission. An empty
// changeset is a no-op.
func (c *Conn) ApplyChangeset(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	rc := C.lb_changeset_apply(c.db, C.int(len(data)), unsafe.Pointer(&data[0]))
	if rc != C.SQLITE_OK {
		return lastError(c.db)
	}
	return nil
}

// InvertChangeset produces the changeset that exactly undoes data. It is a
// pure buffer transform; no connection is involved. Inverting the empty
// changeset yields the empty buffer.
func InvertChangeset(data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return newBuffer(nil, 0), nil
	}
	var n C.int
	var p unsafe.Pointer
	rc := C.sqlite3changeset_invert(C.int(len(data)), unsafe.Pointer(&data[0]), &n, &p)
	if rc != C.SQLITE_OK {
		return nil, errForCode(rc)
	}
	return newBuffer(p, int64(n)), nil
}

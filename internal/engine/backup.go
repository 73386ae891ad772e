package engine

/*
#include <sqlite3.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"
)

// Backup drives SQLite's online backup API from src's srcName schema into
// dst's dstName schema, fully drained in one call. On success the
// destination schema's prior content is gone. On failure the destination is
// left in whatever state the engine's stepped copy reached; no rollback is
// attempted here.
func Backup(dst *Conn, dstName string, src *Conn, srcName string) error {
	zDst := C.CString(dstName)
	defer C.free(unsafe.Pointer(zDst))
	zSrc := C.CString(srcName)
	defer C.free(unsafe.Pointer(zSrc))

	b := C.sqlite3_backup_init(dst.db, zDst, src.db, zSrc)
	if b == nil {
		return lastError(dst.db)
	}

	// -1 pages per step: copy everything before returning. The engine's
	// pause/resume capability is deliberately not exposed at this layer.
	rc := C.sqlite3_backup_step(b, -1)
	fin := C.sqlite3_backup_finish(b)

	if rc != C.SQLITE_DONE {
		// Source-side read errors (e.g. a corrupt adopted image) are
		// reported on the step code, not on the destination handle.
		return errForCode(rc)
	}
	if fin != C.SQLITE_OK {
		return lastError(dst.db)
	}
	return nil
}

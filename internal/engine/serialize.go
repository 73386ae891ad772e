package engine

/*
#include <sqlite3.h>
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"unsafe"
)

// Serialize copies the named schema's page store into a single
// engine-allocated buffer. An empty database yields an empty buffer.
func (c *Conn) Serialize(schema string) (*Buffer, error) {
	zSchema := C.CString(schema)
	defer C.free(unsafe.Pointer(zSchema))

	var size C.sqlite3_int64
	p := C.sqlite3_serialize(c.db, zSchema, &size, 0)
	if p == nil {
		if size <= 0 {
			// Nothing has ever been written to this schema; the serialized
			// form is the empty byte string, not a failure.
			return newBuffer(nil, 0), nil
		}
		return nil, lastError(c.db)
	}
	return newBuffer(unsafe.Pointer(p), int64(size)), nil
}

// Deserialize disconnects the named schema and reopens it as an in-memory
// database whose content is data. The bytes are copied into SQLite's
// allocator and handed over with FREEONCLOSE, so the resulting database owns
// its page store and may grow it (RESIZEABLE).
//
// SQLite validates the image lazily: adopting garbage succeeds and the
// corruption surfaces on first page access (SQLITE_NOTADB / SQLITE_CORRUPT).
func (c *Conn) Deserialize(schema string, data []byte) error {
	zSchema := C.CString(schema)
	defer C.free(unsafe.Pointer(zSchema))

	var p *C.uchar
	n := len(data)
	if n > 0 {
		raw := C.sqlite3_malloc64(C.sqlite3_uint64(n))
		if raw == nil {
			return errForCode(C.SQLITE_NOMEM)
		}
		C.memcpy(raw, unsafe.Pointer(&data[0]), C.size_t(n))
		p = (*C.uchar)(raw)
	}

	flags := C.uint(C.SQLITE_DESERIALIZE_FREEONCLOSE | C.SQLITE_DESERIALIZE_RESIZEABLE)
	rc := C.sqlite3_deserialize(c.db, zSchema, p, C.sqlite3_int64(n), C.sqlite3_int64(n), flags)
	if rc != C.SQLITE_OK {
		// On failure SQLite has already freed p (FREEONCLOSE applies even on
		// the error path), so only the error needs reporting.
		return lastError(c.db)
	}
	return nil
}

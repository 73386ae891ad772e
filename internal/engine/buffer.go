package engine

/*
#include <sqlite3.h>
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// Buffer wraps a byte range allocated by SQLite's allocator.
//
// The bytes are owned by SQLite and must be released through sqlite3_free,
// which Release does. A finalizer backstops leaked buffers, but callers are
// expected to Release deterministically; Bytes must not be used after
// Release.
type Buffer struct {
	ptr  unsafe.Pointer
	size int64
}

// newBuffer adopts a sqlite3_malloc'd range. ptr may be nil with size 0 for
// the empty buffer.
func newBuffer(ptr unsafe.Pointer, size int64) *Buffer {
	b := &Buffer{ptr: ptr, size: size}
	if ptr != nil {
		runtime.SetFinalizer(b, (*Buffer).Release)
	}
	return b
}

// Len reports the buffer length in bytes.
func (b *Buffer) Len() int {
	return int(b.size)
}

// Bytes exposes the engine-owned bytes without copying. The slice aliases C
// memory and is invalidated by Release.
func (b *Buffer) Bytes() []byte {
	if b.ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.ptr), b.size)
}

// Release frees the underlying range through SQLite's allocator. Safe to
// call more than once.
func (b *Buffer) Release() {
	if b.ptr == nil {
		return
	}
	C.sqlite3_free(b.ptr)
	b.ptr = nil
	b.size = 0
	runtime.SetFinalizer(b, nil)
}

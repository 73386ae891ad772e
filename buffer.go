package litebind

import (
	"github.com/roach88/litebind/internal/engine"
)

// Buffer holds bytes allocated by the engine's own allocator: a serialized
// snapshot or a changeset. The bytes cross the C boundary without copying,
// so a Buffer must be closed when done; Close routes the release through the
// engine's matching free function, never the host allocator.
//
// Bytes must not be used after Close. Close is idempotent.
type Buffer struct {
	buf *engine.Buffer
}

// newBuffer wraps an engine-owned allocation. A nil engine buffer is not
// permitted; the no-changes case is represented by a nil *Buffer instead.
func newBuffer(b *engine.Buffer) *Buffer {
	return &Buffer{buf: b}
}

// Bytes exposes the engine-owned bytes without copying.
func (b *Buffer) Bytes() []byte {
	if b.buf == nil {
		return nil
	}
	return b.buf.Bytes()
}

// Len reports the buffer length in bytes.
func (b *Buffer) Len() int {
	if b.buf == nil {
		return 0
	}
	return b.buf.Len()
}

// Close releases the bytes back to the engine's allocator.
func (b *Buffer) Close() error {
	if b.buf != nil {
		b.buf.Release()
	}
	return nil
}

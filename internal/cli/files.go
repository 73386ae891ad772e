package cli

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/roach88/litebind"
)

// xzMagic is the 6-byte header of an xz stream, used to auto-detect
// compressed snapshot and changeset files on the read side.
var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// openDatabase opens a database for a command, applying the configured busy
// timeout, and arranges for it to close when the command finishes.
func openDatabase(opts *RootOptions, path string) (*litebind.Database, func(), error) {
	db, err := litebind.Open(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, fmt.Sprintf("cannot open %s", path), err)
	}
	if ms := opts.Config.BusyTimeoutMS; ms > 0 {
		if err := db.SetBusyTimeout(ms); err != nil {
			db.Close()
			return nil, nil, WrapExitError(ExitCommandError, "cannot set busy timeout", err)
		}
	}
	return db, func() { db.Close() }, nil
}

// writeOutput writes data to path atomically, xz-compressing first when
// compress is set. The atomic rename means a crashed command never leaves a
// truncated snapshot behind.
func writeOutput(path string, data []byte, compress bool) error {
	if compress {
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("xz compress: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("xz close: %w", err)
		}
		data = buf.Bytes()
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// readInput reads a snapshot or changeset file, transparently decompressing
// xz streams detected by magic.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(data, xzMagic) {
		return data, nil
	}
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("xz reader: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("xz decompress: %w", err)
	}
	return out, nil
}

// digest returns the hex BLAKE3 checksum of data. Digests are always taken
// over the uncompressed bytes, so --xz does not change them.
func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

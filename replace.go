package litebind

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/litebind/internal/engine"
)

// The replace protocol: both Deserialize and BackupFrom make the target
// schema's entire content and schema identical to a source, discarding
// everything previously there. Neither patches the target's live pages in
// place; Deserialize stages the buffer into a throwaway in-memory handle and
// transplants from there with the same page-copy the direct backup uses.

// Deserialize replaces the named schema of this handle ("" means "main")
// with the database image in data.
//
// A nil buffer is caller misuse. An empty non-nil buffer is valid and
// yields an empty schema. A buffer the engine rejects (bad header, truncated
// page store) fails with an EngineError at transplant time; an image that is
// "valid enough to open" but internally damaged is accepted here and
// surfaces errors on later queries, which is the engine's own tolerance and
// not second-guessed at this layer.
func (db *Database) Deserialize(data []byte, schema string) error {
	if data == nil {
		return &TypeError{Message: "expected a byte buffer holding a serialized database"}
	}
	if err := db.requireOpen(); err != nil {
		return err
	}
	if err := db.requireNotBusy(); err != nil {
		return err
	}

	scratch, err := engine.Open(scratchURI())
	if err != nil {
		return wrapEngine(err)
	}
	// The scratch handle is discarded whether or not the transplant worked.
	defer scratch.Close()

	if err := scratch.Deserialize("main", data); err != nil {
		return wrapEngine(err)
	}
	return wrapEngine(engine.Backup(db.conn, schemaName(schema), scratch, "main"))
}

// BackupFrom replaces the named schema of this handle ("" means "main")
// with the content of src's srcSchema, via the engine's page-level copy,
// drained to completion in one call.
//
// A busy source is permitted (the copy reads an engine-internal snapshot),
// but a busy target is refused, and the target handle must not be the
// source. On a mid-copy engine failure the target schema is left in an
// engine-defined, possibly partial state; this layer does not roll back, and
// callers should re-derive a failed target from its source.
func (db *Database) BackupFrom(src *Database, dstSchema, srcSchema string) error {
	if src == nil {
		return &TypeError{Message: "expected a database handle to copy from"}
	}
	if !src.open {
		return &TypeError{Message: "the source database has been closed"}
	}
	if src == db {
		return &TypeError{Message: "cannot back up a database into itself"}
	}
	if err := db.requireOpen(); err != nil {
		return err
	}
	if err := db.requireNotBusy(); err != nil {
		return err
	}
	return wrapEngine(engine.Backup(db.conn, schemaName(dstSchema), src.conn, schemaName(srcSchema)))
}

// scratchURI names a private in-memory database for staging. Each replace
// gets its own, so concurrent replaces on independent handles never share
// scratch state.
func scratchURI() string {
	return fmt.Sprintf("file:stage-%s?mode=memory&cache=private", uuid.Must(uuid.NewV7()))
}

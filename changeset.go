package litebind

import (
	"github.com/roach88/litebind/internal/engine"
)

// ApplyChangeset replays the row-level changes in data against this handle,
// in changeset order. Conflicting changes (a row already modified
// incompatibly) are resolved by the engine's default policy: the
// conflicting change is omitted and application continues; no custom
// conflict callbacks are exposed at this layer.
//
// A nil buffer is caller misuse; an empty changeset is a no-op.
func (db *Database) ApplyChangeset(data []byte) error {
	if data == nil {
		return &TypeError{Message: "expected a byte buffer holding a changeset"}
	}
	if err := db.requireOpen(); err != nil {
		return err
	}
	return wrapEngine(db.conn.ApplyChangeset(data))
}

// InvertChangeset produces the changeset whose application exactly undoes
// data, when applied to a database in the state data was captured from. It
// is a pure buffer transform and needs no live handle. Inverting an empty
// changeset yields an empty buffer.
func InvertChangeset(data []byte) (*Buffer, error) {
	if data == nil {
		return nil, &TypeError{Message: "expected a byte buffer holding a changeset"}
	}
	buf, err := engine.InvertChangeset(data)
	if err != nil {
		return nil, wrapEngine(err)
	}
	return newBuffer(buf), nil
}

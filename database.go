package litebind

import (
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/litebind/internal/engine"
)

// Database is one open handle to the engine.
//
// A Database owns its engine connection and a registry of dependents:
// unconsumed Rows iterators and live Sessions. The handle is "busy" while
// any iterator is unconsumed; busy blocks session creation and the replace
// protocol (Deserialize, BackupFrom into this handle), because replacing a
// page store out from under an open cursor is unsafe regardless of
// threading.
//
// A Database is mutably owned by exactly one logical owner at a time and is
// not safe for concurrent use from multiple goroutines.
type Database struct {
	conn     *engine.Conn
	location string
	open     bool

	iterators map[*Rows]struct{}
	sessions  map[uint64]*Session
	lastID    uint64
}

// Open connects to a file-backed or in-memory database. location accepts a
// plain path, ":memory:", or a file: URI. The returned handle is open with
// an empty dependent set.
func Open(location string) (*Database, error) {
	if location == "" {
		return nil, &ConnectionError{Location: location, Err: &TypeError{Message: "expected a non-empty database location"}}
	}
	conn, err := engine.Open(location)
	if err != nil {
		return nil, &ConnectionError{Location: location, Err: wrapEngine(err)}
	}
	return &Database{
		conn:      conn,
		location:  location,
		open:      true,
		iterators: make(map[*Rows]struct{}),
		sessions:  make(map[uint64]*Session),
	}, nil
}

// Location returns the location string the handle was opened with.
func (db *Database) Location() string {
	return db.location
}

// IsOpen reports whether the handle is still open.
func (db *Database) IsOpen() bool {
	return db.open
}

// Busy reports whether any iterator over this handle is unconsumed.
func (db *Database) Busy() bool {
	return len(db.iterators) > 0
}

// Close tears the handle down. Dependents go first: open iterators are
// finalized, then every live session is invalidated in ascending id order,
// and only then is the engine connection released. Closing a closed handle
// is a no-op.
func (db *Database) Close() error {
	if !db.open {
		return nil
	}

	for rows := range db.iterators {
		rows.invalidate()
	}
	db.iterators = make(map[*Rows]struct{})

	ids := make([]uint64, 0, len(db.sessions))
	for id := range db.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		db.sessions[id].invalidate()
	}
	db.sessions = make(map[uint64]*Session)

	db.open = false
	return wrapEngine(db.conn.Close())
}

// Exec runs SQL to completion, discarding any result rows. Without args the
// string may hold multiple statements; with args it must be a single
// statement with ?-style parameters.
func (db *Database) Exec(sql string, args ...any) error {
	if err := db.requireOpen(); err != nil {
		return err
	}
	if len(args) == 0 {
		return wrapEngine(db.conn.Exec(sql))
	}

	stmt, err := db.conn.Prepare(sql)
	if err != nil {
		return wrapEngine(err)
	}
	defer stmt.Finalize()
	if err := stmt.Bind(args...); err != nil {
		return wrapEngine(err)
	}
	for {
		row, err := stmt.Step()
		if err != nil {
			return wrapEngine(err)
		}
		if !row {
			return nil
		}
	}
}

// Query prepares and starts a statement, returning an iterator over its
// rows. The handle counts as busy until the iterator is exhausted or closed.
func (db *Database) Query(sql string, args ...any) (*Rows, error) {
	if err := db.requireOpen(); err != nil {
		return nil, err
	}
	stmt, err := db.conn.Prepare(sql)
	if err != nil {
		return nil, wrapEngine(err)
	}
	if len(args) > 0 {
		if err := stmt.Bind(args...); err != nil {
			stmt.Finalize()
			return nil, wrapEngine(err)
		}
	}

	cols := make([]string, stmt.ColumnCount())
	for i := range cols {
		cols[i] = stmt.ColumnName(i)
	}
	rows := &Rows{db: db, stmt: stmt, columns: cols}
	db.iterators[rows] = struct{}{}
	return rows, nil
}

// Serialize snapshots the named schema ("" means "main") into a single
// engine-owned buffer. An empty database serializes to an empty buffer.
// Serialization is a read and is permitted while the handle is busy.
func (db *Database) Serialize(schema string) (*Buffer, error) {
	if err := db.requireOpen(); err != nil {
		return nil, err
	}
	buf, err := db.conn.Serialize(schemaName(schema))
	if err != nil {
		return nil, wrapEngine(err)
	}
	return newBuffer(buf), nil
}

// SetBusyTimeout installs the engine's built-in lock-wait handler with the
// given millisecond budget. Lock waits that still time out surface as
// EngineError; no retry happens at this layer.
func (db *Database) SetBusyTimeout(ms int) error {
	if err := db.requireOpen(); err != nil {
		return err
	}
	return wrapEngine(db.conn.BusyTimeout(ms))
}

// requireOpen guards every operation that touches the engine.
func (db *Database) requireOpen() error {
	if !db.open {
		return errClosed()
	}
	return nil
}

// requireNotBusy guards operations that would replace or extend state an
// open cursor may be reading.
func (db *Database) requireNotBusy() error {
	if db.Busy() {
		return errBusy()
	}
	return nil
}

// releaseIterator drops a finished iterator from the dependent registry.
func (db *Database) releaseIterator(rows *Rows) {
	delete(db.iterators, rows)
}

// releaseSession drops a closed session from the dependent registry.
func (db *Database) releaseSession(id uint64) {
	delete(db.sessions, id)
}

// nextSessionID hands out monotonic session ids, used only for deterministic
// teardown ordering.
func (db *Database) nextSessionID() uint64 {
	db.lastID++
	return db.lastID
}

// schemaName applies the "main" default to an absent schema argument.
func schemaName(schema string) string {
	if schema == "" {
		return "main"
	}
	return normalizeName(schema)
}

// normalizeName NFC-normalizes a caller-supplied identifier before it
// crosses the C boundary, so differently-composed spellings of the same
// table or schema name compare equal on the engine side.
func normalizeName(name string) string {
	return norm.NFC.String(name)
}

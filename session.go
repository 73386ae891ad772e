package litebind

import (
	"github.com/roach88/litebind/internal/engine"
)

// Session is a change-tracking object recording row-level mutations against
// one or more tables of its owning handle.
//
// The session holds only a non-owning back-reference to the Database; if the
// handle is closed first, the session is forcibly invalidated before the
// handle's own connection is released, and every later call fails with the
// closed-session state error.
type Session struct {
	db    *Database
	sess  *engine.Session
	id    uint64
	alive bool
}

// CreateSession creates a change-tracking session scoped to the named schema
// of this handle ("" means "main"). The handle must be open and not busy.
// The new session tracks nothing until Attach.
func (db *Database) CreateSession(schema string) (*Session, error) {
	if err := db.requireOpen(); err != nil {
		return nil, err
	}
	if err := db.requireNotBusy(); err != nil {
		return nil, err
	}
	sess, err := db.conn.CreateSession(schemaName(schema))
	if err != nil {
		return nil, wrapEngine(err)
	}
	s := &Session{db: db, sess: sess, id: db.nextSessionID(), alive: true}
	db.sessions[s.id] = s
	return s, nil
}

// Attach adds table to the tracked set; the empty string attaches all
// tables, present and future. Calls are additive, never replacing, and a
// name matching no table is accepted and simply tracks nothing, matching
// the engine's own permissiveness. Attaching mid-transaction is
// allowed; only the owning handle's open state is required.
func (s *Session) Attach(table string) error {
	if err := s.require(); err != nil {
		return err
	}
	if table != "" {
		table = normalizeName(table)
	}
	return wrapEngine(s.sess.Attach(table))
}

// AttachAll attaches every table, present and future.
func (s *Session) AttachAll() error {
	return s.Attach("")
}

// Enable starts or stops recording. Disabling keeps accumulated changes.
func (s *Session) Enable(on bool) error {
	if err := s.require(); err != nil {
		return err
	}
	s.sess.Enable(on)
	return nil
}

// Changeset snapshots everything recorded since the session was created as
// an engine-owned buffer. A session with nothing recorded returns
// (nil, nil), the explicit no-changes result, never a zero-length buffer.
// Callable repeatedly; each call reflects cumulative changes to date.
func (s *Session) Changeset() (*Buffer, error) {
	if err := s.require(); err != nil {
		return nil, err
	}
	buf, err := s.sess.Changeset()
	if err != nil {
		return nil, wrapEngine(err)
	}
	if buf == nil {
		return nil, nil
	}
	return newBuffer(buf), nil
}

// Diff records into the session the changes that would transform table in
// fromSchema into the same-named table of the session's own schema. The
// table must be attached first. Both tables need a compatible primary-key
// shape; the engine reports anything else.
func (s *Session) Diff(fromSchema, table string) error {
	if err := s.require(); err != nil {
		return err
	}
	return wrapEngine(s.sess.Diff(schemaName(fromSchema), normalizeName(table)))
}

// Close releases the native session and unregisters from the owning handle.
// Idempotent; Closed is absorbing, and every other operation afterwards
// fails with the closed-session state error.
func (s *Session) Close() error {
	if !s.alive {
		return nil
	}
	s.db.releaseSession(s.id)
	s.invalidate()
	return nil
}

// require guards every session operation: the session must be alive and the
// owning handle open. Busy is deliberately not checked; attach and friends
// may run mid-transaction.
func (s *Session) require() error {
	if !s.alive {
		return errSessionClosed()
	}
	if !s.db.open {
		return errClosed()
	}
	return nil
}

// invalidate releases the native reference without touching the owner's
// registry; the two callers are Close (which unregisters first) and the
// handle's own teardown (which clears the registry wholesale).
func (s *Session) invalidate() {
	if !s.alive {
		return
	}
	s.alive = false
	s.sess.Delete()
}

package litebind

import (
	"github.com/roach88/litebind/internal/engine"
)

// Rows iterates the result of Database.Query.
//
// A Rows is a registered dependent of its handle: the handle stays busy
// until the iterator is exhausted (Next returns false) or explicitly closed.
// Abandoning an iterator without closing it pins the busy flag, which is
// exactly the hazard the flag exists to report.
type Rows struct {
	db      *Database
	stmt    *engine.Stmt
	columns []string
	current []any
	done    bool
	err     error
}

// Columns returns the result column names.
func (r *Rows) Columns() []string {
	return r.columns
}

// Next advances to the next row, reporting false at the end of the result
// set or on error. The iterator releases itself from the handle as soon as
// it finishes.
func (r *Rows) Next() bool {
	if r.done {
		return false
	}
	row, err := r.stmt.Step()
	if err != nil {
		r.err = wrapEngine(err)
		r.release()
		return false
	}
	if !row {
		r.release()
		return false
	}

	r.current = make([]any, len(r.columns))
	for i := range r.columns {
		switch r.stmt.ColumnType(i) {
		case engine.TypeInteger:
			r.current[i] = r.stmt.ColumnInt64(i)
		case engine.TypeFloat:
			r.current[i] = r.stmt.ColumnFloat(i)
		case engine.TypeText:
			r.current[i] = r.stmt.ColumnText(i)
		case engine.TypeBlob:
			r.current[i] = r.stmt.ColumnBlob(i)
		default:
			r.current[i] = nil
		}
	}
	return true
}

// Row returns the current row's values, one per column: int64, float64,
// string, []byte, or nil. Valid only after a true Next.
func (r *Rows) Row() []any {
	return r.current
}

// Err returns the error that stopped iteration, if any.
func (r *Rows) Err() error {
	return r.err
}

// Close releases the iterator explicitly. Idempotent; safe after
// exhaustion.
func (r *Rows) Close() error {
	r.release()
	return nil
}

// release finalizes the statement and unregisters from the handle.
func (r *Rows) release() {
	if r.done {
		return
	}
	r.done = true
	r.current = nil
	r.stmt.Finalize()
	r.db.releaseIterator(r)
}

// invalidate is the handle-teardown path: same cleanup as release, but the
// registry is being cleared wholesale by the caller.
func (r *Rows) invalidate() {
	if r.done {
		return
	}
	r.done = true
	r.current = nil
	r.err = errClosed()
	r.stmt.Finalize()
}

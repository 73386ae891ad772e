package engine

/*
#include <sqlite3.h>
#include <stdlib.h>

// SQLITE_TRANSIENT is a cast of -1 and cannot be spelled from Go; these
// helpers bind with a private copy of the data.
static int lb_bind_text(sqlite3_stmt *stmt, int i, const char *p, int n) {
	return sqlite3_bind_text(stmt, i, p, n, SQLITE_TRANSIENT);
}

static int lb_bind_blob(sqlite3_stmt *stmt, int i, const void *p, int n) {
	return sqlite3_bind_blob(stmt, i, p, n, SQLITE_TRANSIENT);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Stmt is one prepared statement.
type Stmt struct {
	conn *Conn
	stmt *C.sqlite3_stmt
}

// Column datatypes as reported by sqlite3_column_type.
const (
	TypeInteger = int(C.SQLITE_INTEGER)
	TypeFloat   = int(C.SQLITE_FLOAT)
	TypeText    = int(C.SQLITE_TEXT)
	TypeBlob    = int(C.SQLITE_BLOB)
	TypeNull    = int(C.SQLITE_NULL)
)

// Prepare compiles a single SQL statement. Trailing SQL after the first
// statement is rejected by SQLite.
func (c *Conn) Prepare(sql string) (*Stmt, error) {
	zSQL := C.CString(sql)
	defer C.free(unsafe.Pointer(zSQL))

	var stmt *C.sqlite3_stmt
	rc := C.sqlite3_prepare_v2(c.db, zSQL, -1, &stmt, nil)
	if rc != C.SQLITE_OK {
		return nil, lastError(c.db)
	}
	return &Stmt{conn: c, stmt: stmt}, nil
}

// Bind binds args to the statement's parameters, 1-based, in order.
// Supported Go types: nil, bool, int, int64, float64, string, []byte.
func (s *Stmt) Bind(args ...any) error {
	for i, arg := range args {
		idx := C.int(i + 1)
		var rc C.int
		switch v := arg.(type) {
		case nil:
			rc = C.sqlite3_bind_null(s.stmt, idx)
		case bool:
			n := int64(0)
			if v {
				n = 1
			}
			rc = C.sqlite3_bind_int64(s.stmt, idx, C.sqlite3_int64(n))
		case int:
			rc = C.sqlite3_bind_int64(s.stmt, idx, C.sqlite3_int64(v))
		case int64:
			rc = C.sqlite3_bind_int64(s.stmt, idx, C.sqlite3_int64(v))
		case float64:
			rc = C.sqlite3_bind_double(s.stmt, idx, C.double(v))
		case string:
			z := C.CString(v)
			rc = C.lb_bind_text(s.stmt, idx, z, C.int(len(v)))
			C.free(unsafe.Pointer(z))
		case []byte:
			if len(v) == 0 {
				rc = C.lb_bind_blob(s.stmt, idx, unsafe.Pointer(&placeholderByte), 0)
			} else {
				rc = C.lb_bind_blob(s.stmt, idx, unsafe.Pointer(&v[0]), C.int(len(v)))
			}
		default:
			return fmt.Errorf("unsupported bind type %T at parameter %d", arg, i+1)
		}
		if rc != C.SQLITE_OK {
			return lastError(s.conn.db)
		}
	}
	return nil
}

// placeholderByte gives zero-length blob binds a valid non-nil address.
var placeholderByte byte

// Step advances the statement. It reports true when a row is available,
// false on completion.
func (s *Stmt) Step() (bool, error) {
	switch rc := C.sqlite3_step(s.stmt); rc {
	case C.SQLITE_ROW:
		return true, nil
	case C.SQLITE_DONE:
		return false, nil
	default:
		return false, lastError(s.conn.db)
	}
}

// Finalize destroys the statement. Safe to call more than once.
func (s *Stmt) Finalize() error {
	if s.stmt == nil {
		return nil
	}
	rc := C.sqlite3_finalize(s.stmt)
	s.stmt = nil
	if rc != C.SQLITE_OK {
		return lastError(s.conn.db)
	}
	return nil
}

// ColumnCount reports the number of result columns.
func (s *Stmt) ColumnCount() int {
	return int(C.sqlite3_column_count(s.stmt))
}

// ColumnName reports the name of result column i (0-based).
func (s *Stmt) ColumnName(i int) string {
	return C.GoString(C.sqlite3_column_name(s.stmt, C.int(i)))
}

// ColumnType reports the datatype of column i in the current row.
func (s *Stmt) ColumnType(i int) int {
	return int(C.sqlite3_column_type(s.stmt, C.int(i)))
}

// ColumnInt64 reads column i of the current row as an integer.
func (s *Stmt) ColumnInt64(i int) int64 {
	return int64(C.sqlite3_column_int64(s.stmt, C.int(i)))
}

// ColumnFloat reads column i of the current row as a float.
func (s *Stmt) ColumnFloat(i int) float64 {
	return float64(C.sqlite3_column_double(s.stmt, C.int(i)))
}

// ColumnText reads column i of the current row as text. A zero-length text
// value and NULL both come back as "", distinguished by ColumnType.
func (s *Stmt) ColumnText(i int) string {
	p := C.sqlite3_column_text(s.stmt, C.int(i))
	if p == nil {
		return ""
	}
	n := C.sqlite3_column_bytes(s.stmt, C.int(i))
	return C.GoStringN((*C.char)(unsafe.Pointer(p)), n)
}

// ColumnBlob reads column i of the current row as a copied byte slice.
// NULL comes back nil; a zero-length blob comes back as an empty slice.
func (s *Stmt) ColumnBlob(i int) []byte {
	p := C.sqlite3_column_blob(s.stmt, C.int(i))
	n := C.sqlite3_column_bytes(s.stmt, C.int(i))
	if p == nil {
		if C.sqlite3_column_type(s.stmt, C.int(i)) == C.SQLITE_NULL {
			return nil
		}
		return []byte{}
	}
	return C.GoBytes(p, n)
}

package engine

/*
#include <sqlite3.h>
*/
import "C"

import (
	"errors"
	"fmt"
)

// Error is a failure reported by SQLite itself.
//
// Code is the (extended) SQLite result code; Message is sqlite3_errmsg text
// passed through verbatim. The binding layer converts these into its public
// EngineError without reinterpreting either field.
type Error struct {
	Code    int
	Message string
}

// Result codes this package inspects by name. The full set lives in the
// SQLite headers; these are only the ones callers branch on.
const (
	CodeOK       = int(C.SQLITE_OK)
	CodeError    = int(C.SQLITE_ERROR)
	CodeBusy     = int(C.SQLITE_BUSY)
	CodeNotADB   = int(C.SQLITE_NOTADB)
	CodeCorrupt  = int(C.SQLITE_CORRUPT)
	CodeNoMem    = int(C.SQLITE_NOMEM)
	CodeMisuse   = int(C.SQLITE_MISUSE)
	CodeReadOnly = int(C.SQLITE_READONLY)
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sqlite: %s (code %d)", e.Message, e.Code)
}

// PrimaryCode strips the extended-result-code bits, leaving the primary code.
func (e *Error) PrimaryCode() int {
	return e.Code & 0xff
}

// IsCorruptError reports whether err is a SQLite corruption or not-a-database
// failure, in wrapped form or not.
func IsCorruptError(err error) bool {
	var ee *Error
	if !errors.As(err, &ee) {
		return false
	}
	p := ee.PrimaryCode()
	return p == CodeCorrupt || p == CodeNotADB
}

// errForCode builds an Error from a bare result code, using SQLite's generic
// English text for that code. Used when no connection is available for a
// better message.
func errForCode(rc C.int) *Error {
	return &Error{Code: int(rc), Message: C.GoString(C.sqlite3_errstr(rc))}
}

// lastError reads the most recent error from a connection.
func lastError(db *C.sqlite3) *Error {
	return &Error{
		Code:    int(C.sqlite3_extended_errcode(db)),
		Message: C.GoString(C.sqlite3_errmsg(db)),
	}
}

package litebind

import (
	"errors"
	"fmt"

	"github.com/roach88/litebind/internal/engine"
)

// TypeError reports caller misuse: a nil buffer, a nil or closed source
// handle, or any other argument problem detectable before the engine is
// touched. A TypeError never leaves a database partially mutated.
type TypeError struct {
	Message string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return e.Message
}

// StateErrorCode categorizes lifecycle precondition failures.
type StateErrorCode string

const (
	// ErrCodeDatabaseClosed indicates an operation on a closed handle.
	ErrCodeDatabaseClosed StateErrorCode = "DATABASE_CLOSED"

	// ErrCodeDatabaseBusy indicates an operation blocked by an unconsumed
	// iterator over the handle.
	ErrCodeDatabaseBusy StateErrorCode = "DATABASE_BUSY"

	// ErrCodeSessionClosed indicates an operation on a closed session.
	ErrCodeSessionClosed StateErrorCode = "SESSION_CLOSED"
)

// StateError reports a lifecycle precondition failure on a handle or
// session. Like TypeError it is detected before any engine invocation.
type StateError struct {
	Code    StateErrorCode
	Message string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ConnectionError reports a failure to open a database handle.
type ConnectionError struct {
	Location string
	Err      error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot open database %q: %v", e.Location, e.Err)
}

// Unwrap returns the underlying open failure.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// EngineError reports a failure inside SQLite itself: a corrupt buffer, a
// constraint violation, an I/O or lock failure. Code is the extended SQLite
// result code and Message is the engine's own text, passed through without
// reinterpretation.
type EngineError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("sqlite: %s (code %d)", e.Message, e.Code)
}

// errClosed builds the canonical closed-handle error.
func errClosed() *StateError {
	return &StateError{Code: ErrCodeDatabaseClosed, Message: "the database is closed"}
}

// errBusy builds the canonical busy-handle error.
func errBusy() *StateError {
	return &StateError{Code: ErrCodeDatabaseBusy, Message: "the database is busy: unconsumed iterators are open"}
}

// errSessionClosed builds the canonical closed-session error.
func errSessionClosed() *StateError {
	return &StateError{Code: ErrCodeSessionClosed, Message: "the session has been closed"}
}

// wrapEngine converts an internal engine error into the public EngineError.
// Non-engine errors pass through unchanged.
func wrapEngine(err error) error {
	if err == nil {
		return nil
	}
	var ee *engine.Error
	if errors.As(err, &ee) {
		return &EngineError{Code: ee.Code, Message: ee.Message}
	}
	return err
}

// IsClosed reports whether err is the closed-database state error.
// Uses errors.As to handle wrapped errors.
func IsClosed(err error) bool {
	var se *StateError
	return errors.As(err, &se) && se.Code == ErrCodeDatabaseClosed
}

// IsBusy reports whether err is the busy-database state error.
func IsBusy(err error) bool {
	var se *StateError
	return errors.As(err, &se) && se.Code == ErrCodeDatabaseBusy
}

// IsSessionClosed reports whether err is the closed-session state error.
func IsSessionClosed(err error) bool {
	var se *StateError
	return errors.As(err, &se) && se.Code == ErrCodeSessionClosed
}

// IsTypeError reports whether err is a caller-misuse error.
func IsTypeError(err error) bool {
	var te *TypeError
	return errors.As(err, &te)
}

// IsEngineError reports whether err originated inside SQLite.
func IsEngineError(err error) bool {
	var ee *EngineError
	return errors.As(err, &ee)
}

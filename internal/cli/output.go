package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // operation failure (corrupt snapshot, checksum mismatch, ...)
	ExitCommandError = 2 // command error (missing files, bad flags, ...)
)

// ExitError carries a specific exit code out of a command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Printer renders command results as text or JSON on one writer.
type Printer struct {
	Format string
	Out    io.Writer
}

// jsonResponse is the envelope for --format json output.
type jsonResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// Result emits a command result: data as indented JSON, or the text form
// produced by render.
func (p *Printer) Result(data any, render func(io.Writer)) error {
	if p.Format == "json" {
		enc := json.NewEncoder(p.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonResponse{Status: "ok", Data: data})
	}
	render(p.Out)
	return nil
}

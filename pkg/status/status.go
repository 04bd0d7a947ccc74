// Package status defines the stable error codes surfaced across the
// library boundary and the error values that carry them.
package status

import (
	"errors"
	"fmt"
)

// Code is a stable numeric error code. Values are part of the external
// contract and must not be reordered.
type Code int32

const (
	OK Code = iota
	OutOfMemory
	FopenFailed
	ReadFailed
	VertexIndexNotFound
	Parse
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case OutOfMemory:
		return "out of memory"
	case FopenFailed:
		return "could not open file"
	case ReadFailed:
		return "read failed"
	case VertexIndexNotFound:
		return "vertex index not found"
	case Parse:
		return "parse error"
	}
	return fmt.Sprintf("unknown code %d", int32(c))
}

// Error pairs a stable code with context. It implements error and
// supports errors.Is against the predefined sentinels by code.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error carrying the same code, so
// errors.Is(err, status.ErrParse) works on wrapped errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Errorf builds an Error with a formatted message. The %w verb is
// honored via fmt.Errorf before wrapping.
func Errorf(c Code, format string, args ...interface{}) *Error {
	return &Error{Code: c, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a code to an existing error.
func Wrap(c Code, err error) *Error {
	return &Error{Code: c, Err: err}
}

// Predefined sentinels, one per failure code.
var (
	ErrOutOfMemory         = &Error{Code: OutOfMemory}
	ErrFopenFailed         = &Error{Code: FopenFailed}
	ErrReadFailed          = &Error{Code: ReadFailed}
	ErrVertexIndexNotFound = &Error{Code: VertexIndexNotFound}
	ErrParse               = &Error{Code: Parse}
)

// CodeOf extracts the stable code from an error chain. A nil error
// maps to OK; errors without a code report false.
func CodeOf(err error) (Code, bool) {
	if err == nil {
		return OK, true
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code, true
	}
	return OK, false
}

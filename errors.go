package outline

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Kind is a marker interface implemented by the error categories of the tracing pipeline.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// The error categories reported by the pipeline.
var (
	// ErrInputNotFound is reported when the source path does not exist or cannot be opened.
	ErrInputNotFound Kind = kind{s: "input not found"}
	// ErrDecode is reported when the source is not a supported raster image.
	ErrDecode Kind = kind{s: "decode failure"}
	// ErrInvalidInput is reported on precondition violations between pipeline stages.
	ErrInvalidInput Kind = kind{s: "invalid input"}
	// ErrOutputWrite is reported when the destination cannot be created or written.
	ErrOutputWrite Kind = kind{s: "output write failure"}
)

// Error carries an error kind, an optional cause and an optional message.
// errors.Is and errors.As match both the kind and the wrapped cause.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// newError creates an error of kind k with a formatted message.
func newError(k Kind, format string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(format, args...)}
}

// wrapError creates an error of kind k wrapping err.
func wrapError(k Kind, err error, format string, args ...any) *Error {
	return &Error{kind: k, err: errors.Wrap(err, k.Error()), msg: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}
		return "unknown error"
	}
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target matches the kind or the wrapped cause.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	return e.err != nil && errors.Is(e.err, target)
}

// As enables type assertions against the kind or the wrapped cause.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	return e.err != nil && errors.As(e.err, target)
}

// Kind returns the error category.
func (e *Error) Kind() Kind { return e.kind }

// Package apperr defines the domain error taxonomy shared by services
// and the HTTP layer. Services return *Error values; the HTTP layer
// maps each Kind to a status code without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind int

const (
	// Internal is an unexpected or storage failure. Its detail must not
	// be leaked to clients.
	Internal Kind = iota
	// NotFound means a referenced entity is absent.
	NotFound
	// InsufficientStock means a product cannot cover a requested quantity.
	InsufficientStock
	// InvalidState means an illegal status transition was attempted.
	InvalidState
	// Forbidden means an ownership or role check denied the operation.
	Forbidden
	// InvalidArgument means the input was malformed.
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case InsufficientStock:
		return "insufficient_stock"
	case InvalidState:
		return "invalid_state"
	case Forbidden:
		return "forbidden"
	case InvalidArgument:
		return "invalid_argument"
	}
	return "internal"
}

// Error is a classified domain error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a classified error with a fixed message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf returns a classified error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err. Unclassified errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the client-safe message for err. Internal errors get
// a generic message so storage detail never reaches the caller.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Msg
	}
	return "Server error"
}

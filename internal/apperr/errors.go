// Package apperr defines the user-facing error taxonomy shared by the state,
// auth and service layers.
//
// Every error carries a short message that is safe to show to the user and
// a kind that callers match with errors.Is:
//
//	if errors.Is(err, apperr.ErrInvalidState) { ... }
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("conflict")
	ErrAuth         = errors.New("authentication failed")
	ErrStorage      = errors.New("storage error")
)

// Error is a classified error with a user-visible message.
type Error struct {
	kind  error
	msg   string
	cause error
}

// Error returns the user-visible message.
func (e *Error) Error() string {
	return e.msg
}

// Kind returns the kind sentinel (ErrValidation, ErrNotFound, ...).
func (e *Error) Kind() error {
	return e.kind
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

// New creates an error of the given kind.
func New(kind error, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Wrap creates an error of the given kind that keeps cause in the chain.
func Wrap(kind error, msg string, cause error) error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

// Validation reports malformed, empty or negative input.
func Validation(format string, args ...any) error {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound reports a referenced entity that no longer exists.
func NotFound(format string, args ...any) error {
	return New(ErrNotFound, fmt.Sprintf(format, args...))
}

// InvalidState reports a mutation attempted on a sold motorbike.
func InvalidState(format string, args ...any) error {
	return New(ErrInvalidState, fmt.Sprintf(format, args...))
}

// Conflict reports a duplicate, such as an email already registered.
func Conflict(format string, args ...any) error {
	return New(ErrConflict, fmt.Sprintf(format, args...))
}

// Auth reports bad or missing credentials. The message stays generic.
func Auth(msg string, cause error) error {
	return Wrap(ErrAuth, msg, cause)
}

// Storage wraps an unexpected persistence failure. The message includes the
// cause so the view can report it verbatim.
func Storage(cause error) error {
	return Wrap(ErrStorage, fmt.Sprintf("storage error: %v", cause), cause)
}

// KindOf returns the kind sentinel of err, or nil when err is not classified.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return nil
}

// KindName returns a short label for err's kind, used for metrics and logs.
func KindName(err error) string {
	switch KindOf(err) {
	case nil:
		if err == nil {
			return "ok"
		}
		return "internal"
	case ErrValidation:
		return "validation"
	case ErrNotFound:
		return "not_found"
	case ErrInvalidState:
		return "invalid_state"
	case ErrConflict:
		return "conflict"
	case ErrAuth:
		return "auth"
	case ErrStorage:
		return "storage"
	default:
		return "internal"
	}
}

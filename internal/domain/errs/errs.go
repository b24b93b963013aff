// Package errs defines the error kinds shared by the domain stores and the
// HTTP layer. Stores wrap concrete failures so callers can branch with
// errors.Is without knowing anything about PostgreSQL.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient privileges")
	ErrConflict        = errors.New("resource already exists")
	ErrNotFound        = errors.New("resource not found")
	ErrInfrastructure  = errors.New("storage unavailable")
)

// kindError ties a descriptive message (and optional cause) to one of the
// sentinel kinds above.
type kindError struct {
	kind  error
	msg   string
	cause error
}

func (e *kindError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *kindError) Is(target error) bool { return target == e.kind }

func (e *kindError) Unwrap() error { return e.cause }

// Validation returns an ErrValidation carrying a client-facing message.
func Validation(format string, args ...any) error {
	return &kindError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound returns an ErrNotFound for the named resource.
func NotFound(resource string) error {
	return &kindError{kind: ErrNotFound, msg: resource + " not found"}
}

// Conflict returns an ErrConflict carrying a client-facing message.
func Conflict(msg string) error {
	return &kindError{kind: ErrConflict, msg: msg}
}

// Infra wraps a storage failure for op. The cause is kept for logging and is
// never shown to clients.
func Infra(op string, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: ErrInfrastructure, msg: op, cause: err}
}

// Message returns the client-facing part of err. For infrastructure errors
// it returns a generic text so internals do not leak.
func Message(err error) string {
	var ke *kindError
	if errors.As(err, &ke) {
		if ke.kind == ErrInfrastructure {
			return "the server encountered a problem"
		}
		return ke.msg
	}
	return err.Error()
}

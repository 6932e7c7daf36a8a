package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers and for the HTTP layer.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindAlreadyExists
	KindInvalidCredentials
	KindDatabase
	KindInternal
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_error"
	case KindNotFound:
		return "resource_not_found"
	case KindAlreadyExists:
		return "resource_already_exists"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindDatabase:
		return "database_error"
	case KindInternal:
		return "internal_error"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown_error"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying cause for logs while the message stays the only
// caller-visible text.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error    { return New(KindValidation, message) }
func NotFound(message string) *Error      { return New(KindNotFound, message) }
func AlreadyExists(message string) *Error { return New(KindAlreadyExists, message) }
func Internal(message string) *Error      { return New(KindInternal, message) }

func InvalidCredentials(message string) *Error {
	return New(KindInvalidCredentials, message)
}

// Unauthorized deliberately carries no detail: token failures must be
// indistinguishable to the caller.
func Unauthorized() *Error {
	return New(KindUnauthorized, "unauthorized")
}

func Database(message string, err error) *Error {
	return Wrap(KindDatabase, message, err)
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Package apperr defines the application's error taxonomy. Every failure that
// reaches a client is classified into exactly one Kind, and the Kind alone
// decides the HTTP status code and the default client-facing message.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind int

// The zero value is Internal so that an unclassified error never turns into
// a client error by accident.
const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Default client-facing messages, one per kind.
const (
	MsgBadRequest   = "Invalid data provided"
	MsgUnauthorized = "Authorization required"
	MsgForbidden    = "You can only delete your own cards"
	MsgNotFound     = "Requested resource not found"
	MsgConflict     = "Resource already exists"
	MsgInternal     = "An error occurred on the server"
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// StatusCode maps the kind to its HTTP status code.
func (k Kind) StatusCode() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DefaultMessage returns the generic message for the kind.
func (k Kind) DefaultMessage() string {
	switch k {
	case KindBadRequest:
		return MsgBadRequest
	case KindUnauthorized:
		return MsgUnauthorized
	case KindForbidden:
		return MsgForbidden
	case KindNotFound:
		return MsgNotFound
	case KindConflict:
		return MsgConflict
	default:
		return MsgInternal
	}
}

// Error is a classified failure. Message is safe to show to clients;
// Err carries the underlying cause for logging only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode is a shortcut for e.Kind.StatusCode().
func (e *Error) StatusCode() int {
	return e.Kind.StatusCode()
}

// New creates an Error of the given kind. An empty message falls back to the
// kind's default message.
func New(kind Kind, message string) *Error {
	if message == "" {
		message = kind.DefaultMessage()
	}
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind that keeps err as its cause.
func Wrap(kind Kind, message string, err error) *Error {
	e := New(kind, message)
	e.Err = err
	return e
}

func BadRequest(message string) *Error   { return New(KindBadRequest, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func Internal(message string) *Error     { return New(KindInternal, message) }

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the kind of the first *Error in err's chain. Errors without
// a classification are reported as KindInternal with ok set to false.
func KindOf(err error) (kind Kind, ok bool) {
	if appErr, found := As(err); found {
		return appErr.Kind, true
	}
	return KindInternal, false
}

// IsKind reports whether err carries a classification of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

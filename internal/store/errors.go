package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/mesto-api/internal/domain"
)

// Code is a failure signal emitted by a store. Callers map codes to client
// errors; anything that is not a *store.Error is an internal failure.
type Code string

// Store failure codes.
const (
	// CodeCast means an identifier could not be parsed.
	CodeCast Code = "cast"

	// CodeValidation means a document failed the schema rules.
	CodeValidation Code = "validation"

	// CodeDuplicateKey means a write would break a uniqueness constraint.
	CodeDuplicateKey Code = "duplicate_key"
)

// Common store errors used across all store implementations.
var (
	// ErrMalformedID is wrapped by every CodeCast error.
	ErrMalformedID = errors.New("malformed identifier")

	// ErrDuplicate is wrapped by every CodeDuplicateKey error.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is wrapped by every CodeValidation error.
	ErrInvalidEntity = errors.New("invalid entity")
)

// Error is a coded store failure with enough context to build a client message.
type Error struct {
	Code   Code
	Entity string // "user", "card"
	Field  string // offending field, when known
	Value  string // offending value, set for CodeCast and CodeDuplicateKey
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error on %s", e.Code, e.Entity)
	if e.Field != "" {
		msg += " field " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewCastError reports an identifier that does not parse.
func NewCastError(entity, value string) *Error {
	return &Error{
		Code:   CodeCast,
		Entity: entity,
		Field:  "_id",
		Value:  value,
		Err:    ErrMalformedID,
	}
}

// NewValidationError reports a document that failed its schema rules.
func NewValidationError(entity string, err error) *Error {
	return &Error{
		Code:   CodeValidation,
		Entity: entity,
		Field:  domain.InvalidField(err),
		Err:    fmt.Errorf("%w: %w", ErrInvalidEntity, err),
	}
}

// NewDuplicateError reports a uniqueness violation on field with value.
func NewDuplicateError(entity, field, value string, err error) *Error {
	wrapped := ErrDuplicate
	if err != nil {
		wrapped = fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return &Error{
		Code:   CodeDuplicateKey,
		Entity: entity,
		Field:  field,
		Value:  value,
		Err:    wrapped,
	}
}

// AsError returns the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	if storeErr, ok := AsError(err); ok {
		return storeErr.Code, true
	}
	return "", false
}

// ParseID validates an identifier, returning a CodeCast error for entity when
// it is not a UUID. Uppercase, braced and unhyphenated forms are accepted, as
// PostgreSQL accepts them; the urn:uuid: form is not.
func ParseID(entity, id string) (uuid.UUID, error) {
	if len(id) > 9 && strings.EqualFold(id[:9], "urn:uuid:") {
		return uuid.Nil, NewCastError(entity, id)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, NewCastError(entity, id)
	}
	return parsed, nil
}

// CanonicalID parses id and returns its lowercase hyphenated form, the form
// every store returns.
func CanonicalID(entity, id string) (string, error) {
	parsed, err := ParseID(entity, id)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

package service

import (
	"errors"

	"github.com/phrazzld/mesto-api/internal/apperr"
)

// Common service errors - sentinel errors used across service implementations.
// Services return them wrapped in an *apperr.Error so the API layer can
// classify the failure, while callers can still match them with errors.Is.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrUserNotFound indicates no user has the requested ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrCardNotFound indicates no card has the requested ID.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidCredentials indicates a sign-in with an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Client-facing messages for the errors above.
const (
	MsgUserNotFound       = "user not found"
	MsgCardNotFound       = "card not found"
	MsgInvalidCredentials = "Incorrect email or password"
)

func userNotFound() error {
	return apperr.Wrap(apperr.KindNotFound, MsgUserNotFound, ErrUserNotFound)
}

func cardNotFound() error {
	return apperr.Wrap(apperr.KindNotFound, MsgCardNotFound, ErrCardNotFound)
}

func invalidCredentials() error {
	return apperr.Wrap(apperr.KindUnauthorized, MsgInvalidCredentials, ErrInvalidCredentials)
}

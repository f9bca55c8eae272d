package auth

import (
	"errors"
	"fmt"
)

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token cannot be trusted: malformed, signed
	// with another key or algorithm, missing its subject, or expired.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired. It wraps ErrInvalidToken.
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)

	// ErrMissingSecret indicates production was configured without a signing secret.
	ErrMissingSecret = errors.New("jwt secret is required in production")
)

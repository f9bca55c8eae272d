package auth

import (
	"context"
	"time"
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = 7 * 24 * time.Hour

// TokenService issues and verifies the signed bearer tokens that carry a
// caller's identity.
type TokenService interface {
	// Issue creates a signed token for subjectID, valid for TokenLifetime.
	Issue(ctx context.Context, subjectID string) (string, error)

	// Verify checks the token's signature and expiry and extracts its claims.
	// Every failure wraps ErrInvalidToken; expired tokens return ErrExpiredToken.
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the identity carried by a verified token.
type Claims struct {
	// SubjectID is the identifier of the user the token was issued for.
	SubjectID string

	IssuedAt  time.Time
	ExpiresAt time.Time
}

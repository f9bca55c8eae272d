package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSecret is a signing key for tests that is long enough for production.
const TestSecret = "test-jwt-secret-that-is-32-chars-long"

// NewTestJWTService creates a token service with a fixed key and clock.
func NewTestJWTService(secret string, timeFunc func() time.Time) TokenService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return newHMACJWTService([]byte(secret), timeFunc)
}

// RequireTestToken issues a token for subjectID signed with TestSecret at the
// current time.
func RequireTestToken(t *testing.T, subjectID string) string {
	t.Helper()
	token, err := NewTestJWTService(TestSecret, nil).Issue(context.Background(), subjectID)
	require.NoError(t, err, "Failed to issue test token")
	return token
}

// AuthHeaderForTesting returns an Authorization header value carrying a
// TestSecret token for subjectID.
func AuthHeaderForTesting(t *testing.T, subjectID string) string {
	t.Helper()
	return "Bearer " + RequireTestToken(t, subjectID)
}

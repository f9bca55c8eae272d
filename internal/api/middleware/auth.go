package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/service/auth"
)

// BearerPrefix must open the Authorization header, including the space.
const BearerPrefix = "Bearer "

// ErrorHandler writes the response for a failed request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	tokens      auth.TokenService
	handleError ErrorHandler
}

// NewAuthMiddleware creates a new AuthMiddleware. Rejections are written by
// handleError so they share the API's error format.
func NewAuthMiddleware(tokens auth.TokenService, handleError ErrorHandler) *AuthMiddleware {
	if tokens == nil || handleError == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("token service and error handler are required for AuthMiddleware")
	}
	return &AuthMiddleware{
		tokens:      tokens,
		handleError: handleError,
	}
}

// Authenticate validates the bearer token and adds the subject ID to the
// request context. Every rejection is the same 401; the cause is only logged.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), slog.Default())

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), BearerPrefix)
		if !ok {
			log.Debug("missing or malformed authorization header")
			m.handleError(w, r, apperr.Unauthorized(""))
			return
		}

		claims, err := m.tokens.Verify(r.Context(), token)
		if err != nil {
			log.Debug("token rejected", slog.String("error", redact.Error(err)))
			m.handleError(w, r, apperr.Wrap(apperr.KindUnauthorized, apperr.MsgUnauthorized, err))
			return
		}

		ctx := shared.WithUserID(r.Context(), claims.SubjectID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID extracts the caller's subject ID from the request context.
// Returns the ID and a boolean indicating if it was found.
func GetUserID(r *http.Request) (string, bool) {
	return shared.UserIDFromContext(r.Context())
}

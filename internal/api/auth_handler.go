package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/service"
	"github.com/phrazzld/mesto-api/internal/service/auth"
)

// TokenCookieName is the cookie that mirrors the signin token.
const TokenCookieName = "jwt"

// AuthHandler handles signup and signin.
type AuthHandler struct {
	users        service.UserService
	tokens       auth.TokenService
	secureCookie bool
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
// secureCookie marks the token cookie Secure, which production deployments
// behind TLS want.
func NewAuthHandler(
	users service.UserService,
	tokens auth.TokenService,
	secureCookie bool,
	logger *slog.Logger,
) *AuthHandler {
	if users == nil || tokens == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("user service and token service are required for AuthHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:        users,
		tokens:       tokens,
		secureCookie: secureCookie,
		logger:       logger.With(slog.String("component", "auth_handler")),
	}
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, apperr.Wrap(apperr.KindBadRequest, "Invalid request format", err))
		return
	}

	user, err := h.users.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, user)
}

// Signin handles POST /signin. Every failure, including a body that does not
// parse, is the same 401 so callers cannot tell which emails exist.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SigninRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("unreadable signin body", slog.String("error", redact.Error(err)))
		HandleAPIError(w, r, apperr.Wrap(apperr.KindUnauthorized, service.MsgInvalidCredentials, err))
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(r.Context(), user.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenLifetime.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	log.Debug("user signed in", slog.String("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}

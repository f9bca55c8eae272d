package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/service"
)

// UserHandler serves the /users routes.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if users == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("user service cannot be nil for UserHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// callerID returns the authenticated subject, or an Unauthorized error when
// the route was mounted without the auth middleware.
func callerID(r *http.Request) (string, error) {
	id, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		return "", apperr.Unauthorized("")
	}
	return id, nil
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, users)
}

// Get handles GET /users/{userId}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, user)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	subjectID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), subjectID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, user)
}

// UpdateProfile handles PATCH /users/me.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	subjectID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, apperr.Wrap(apperr.KindBadRequest, "Invalid request format", err))
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), subjectID, req.Name, req.About)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, user)
}

// UpdateAvatar handles PATCH /users/me/avatar.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	subjectID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateAvatarRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, apperr.Wrap(apperr.KindBadRequest, "Invalid request format", err))
		return
	}

	user, err := h.users.UpdateAvatar(r.Context(), subjectID, req.Avatar)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, user)
}

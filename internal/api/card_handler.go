package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/mesto-api/internal/api/shared"
	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
	"github.com/phrazzld/mesto-api/internal/service"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cards  service.CardService
	logger *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cards service.CardService, logger *slog.Logger) *CardHandler {
	if cards == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("card service cannot be nil for CardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CardHandler{
		cards:  cards,
		logger: logger.With(slog.String("component", "card_handler")),
	}
}

// List handles GET /cards.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.cards.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, cards)
}

// Create handles POST /cards. The caller becomes the owner.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	subjectID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		HandleAPIError(w, r, apperr.Wrap(apperr.KindBadRequest, "Invalid request format", err))
		return
	}

	card, err := h.cards.Create(r.Context(), subjectID, req.Name, req.Link)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusCreated, card)
}

// Delete handles DELETE /cards/{cardId}. Only the owner may delete a card.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	subjectID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	cardID := chi.URLParam(r, "cardId")
	card, err := h.cards.Delete(r.Context(), subjectID, cardID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("card deleted",
		slog.String("card_id", card.ID),
		slog.String("user_id", subjectID))
	shared.RespondWithData(w, r, http.StatusOK, card)
}

// Like handles PUT /cards/{cardId}/likes.
func (h *CardHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.cards.Like)
}

// Unlike handles DELETE /cards/{cardId}/likes.
func (h *CardHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.changeLike(w, r, h.cards.Unlike)
}

type likeOp func(ctx context.Context, subjectID, cardID string) (*domain.Card, error)

func (h *CardHandler) changeLike(w http.ResponseWriter, r *http.Request, op likeOp) {
	subjectID, err := callerID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	card, err := op(r.Context(), subjectID, chi.URLParam(r, "cardId"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithData(w, r, http.StatusOK, card)
}

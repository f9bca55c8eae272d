package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// CardService provides card-related operations.
type CardService interface {
	// List returns all cards.
	List(ctx context.Context) ([]domain.Card, error)

	// Create adds a card owned by ownerID.
	Create(ctx context.Context, ownerID, name, link string) (*domain.Card, error)

	// Delete removes a card owned by subjectID and returns it. A missing card
	// is NotFound; a card owned by someone else is Forbidden.
	Delete(ctx context.Context, subjectID, cardID string) (*domain.Card, error)

	// Like adds subjectID to the card's likes.
	Like(ctx context.Context, subjectID, cardID string) (*domain.Card, error)

	// Unlike removes subjectID from the card's likes.
	Unlike(ctx context.Context, subjectID, cardID string) (*domain.Card, error)
}

// CardServiceImpl implements the CardService interface
type CardServiceImpl struct {
	cardStore store.CardStore
	logger    *slog.Logger
}

var _ CardService = (*CardServiceImpl)(nil)

// NewCardService creates a new CardService
func NewCardService(cardStore store.CardStore, logger *slog.Logger) *CardServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CardServiceImpl{
		cardStore: cardStore,
		logger:    logger.With("component", "card_service"),
	}
}

// List returns every card.
func (s *CardServiceImpl) List(ctx context.Context) ([]domain.Card, error) {
	cards, err := s.cardStore.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// Create adds a new card.
func (s *CardServiceImpl) Create(ctx context.Context, ownerID, name, link string) (*domain.Card, error) {
	created, err := s.cardStore.Create(ctx, domain.NewCard(name, link, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.logger.Info("card created", "card_id", created.ID, "owner_id", ownerID)
	return created, nil
}

// Delete removes a card after checking that subjectID owns it.
func (s *CardServiceImpl) Delete(ctx context.Context, subjectID, cardID string) (*domain.Card, error) {
	card, err := s.cardStore.FindByID(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve card: %w", err)
	}
	if card == nil {
		return nil, cardNotFound()
	}

	if !card.IsOwnedBy(subjectID) {
		s.logger.Warn("attempt to delete card owned by another user",
			"card_id", cardID,
			"owner_id", card.Owner,
			"subject_id", subjectID)
		return nil, apperr.Wrap(apperr.KindForbidden, apperr.MsgForbidden, ErrNotOwned)
	}

	removed, err := s.cardStore.FindByIDAndRemove(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete card: %w", err)
	}
	if removed == nil {
		// Lost a race with a concurrent delete.
		return nil, cardNotFound()
	}

	s.logger.Info("card deleted", "card_id", cardID, "owner_id", subjectID)
	return removed, nil
}

// Like adds the caller's like.
func (s *CardServiceImpl) Like(ctx context.Context, subjectID, cardID string) (*domain.Card, error) {
	card, err := s.cardStore.AddLike(ctx, cardID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to like card: %w", err)
	}
	if card == nil {
		return nil, cardNotFound()
	}
	return card, nil
}

// Unlike removes the caller's like.
func (s *CardServiceImpl) Unlike(ctx context.Context, subjectID, cardID string) (*domain.Card, error) {
	card, err := s.cardStore.RemoveLike(ctx, cardID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to unlike card: %w", err)
	}
	if card == nil {
		return nil, cardNotFound()
	}
	return card, nil
}

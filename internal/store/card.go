package store

import (
	"context"

	"github.com/phrazzld/mesto-api/internal/domain"
)

// EntityCard names cards in store errors.
const EntityCard = "card"

// CardStore defines the interface for card data persistence.
// It follows the same absent and error conventions as UserStore.
type CardStore interface {
	// Find returns every card, oldest first.
	Find(ctx context.Context) ([]domain.Card, error)

	// FindByID returns the card with the given ID, or nil when absent.
	FindByID(ctx context.Context, id string) (*domain.Card, error)

	// Create validates and inserts a new card.
	Create(ctx context.Context, card *domain.Card) (*domain.Card, error)

	// AddLike adds userID to the card's like set and returns the updated card,
	// or nil when the card is absent. Adding an existing like changes nothing.
	AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error)

	// RemoveLike removes userID from the card's like set and returns the
	// updated card, or nil when the card is absent.
	RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error)

	// FindByIDAndRemove deletes the card in a single operation and returns the
	// removed record, or nil when nothing was removed.
	FindByIDAndRemove(ctx context.Context, id string) (*domain.Card, error)
}

package memory

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// CardStore is a store.CardStore backed by a map keyed by canonical card ID.
// Safe for concurrent use.
type CardStore struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Card
	order  []string
	owners *UserStore
	logger *slog.Logger
}

var _ store.CardStore = (*CardStore)(nil)

// CardOption configures a CardStore.
type CardOption func(*CardStore)

// WithOwners makes Create reject cards whose owner is not in users, matching
// the owner foreign key of the PostgreSQL schema.
func WithOwners(users *UserStore) CardOption {
	return func(s *CardStore) {
		s.owners = users
	}
}

// NewCardStore creates an empty CardStore.
func NewCardStore(logger *slog.Logger, opts ...CardOption) *CardStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CardStore{
		byID:   make(map[string]*domain.Card),
		logger: logger.With("component", "memory_card_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find implements store.CardStore.
func (s *CardStore) Find(ctx context.Context) ([]domain.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]domain.Card, 0, len(s.order))
	for _, id := range s.order {
		cards = append(cards, *s.byID[id].Clone())
	}
	return cards, nil
}

// FindByID implements store.CardStore.
func (s *CardStore) FindByID(ctx context.Context, id string) (*domain.Card, error) {
	id, err := store.CanonicalID(store.EntityCard, id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return c.Clone(), nil
}

// Create implements store.CardStore.
func (s *CardStore) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	id, err := store.CanonicalID(store.EntityCard, card.ID)
	if err != nil {
		return nil, err
	}
	if err := card.Validate(); err != nil {
		return nil, store.NewValidationError(store.EntityCard, err)
	}
	owner, err := store.CanonicalID(store.EntityUser, card.Owner)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.owners != nil && !s.owners.exists(owner) {
		return nil, &store.Error{
			Code:   store.CodeValidation,
			Entity: store.EntityCard,
			Err:    fmt.Errorf("%w: owner %s does not exist", store.ErrInvalidEntity, owner),
		}
	}

	stored := card.Clone()
	stored.ID = id
	stored.Owner = owner

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[id]; exists {
		return nil, store.NewDuplicateError(store.EntityCard, "_id", id, nil)
	}
	s.byID[id] = stored
	s.order = append(s.order, id)
	return stored.Clone(), nil
}

// AddLike implements store.CardStore.
func (s *CardStore) AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.mutateLikes(ctx, cardID, userID, (*domain.Card).AddLike)
}

// RemoveLike implements store.CardStore.
func (s *CardStore) RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.mutateLikes(ctx, cardID, userID, (*domain.Card).RemoveLike)
}

func (s *CardStore) mutateLikes(
	ctx context.Context,
	cardID, userID string,
	mutate func(*domain.Card, string),
) (*domain.Card, error) {
	cardID, err := store.CanonicalID(store.EntityCard, cardID)
	if err != nil {
		return nil, err
	}
	userID, err = store.CanonicalID(store.EntityUser, userID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[cardID]
	if !ok {
		return nil, nil
	}
	mutate(c, userID)
	return c.Clone(), nil
}

// FindByIDAndRemove implements store.CardStore.
func (s *CardStore) FindByIDAndRemove(ctx context.Context, id string) (*domain.Card, error) {
	id, err := store.CanonicalID(store.EntityCard, id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	s.logger.Debug("card removed", "card_id", id)
	return c, nil
}

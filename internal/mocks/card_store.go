package mocks

import (
	"context"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// MockCardStore implements store.CardStore for testing
type MockCardStore struct {
	FindFn              func(ctx context.Context) ([]domain.Card, error)
	FindByIDFn          func(ctx context.Context, id string) (*domain.Card, error)
	CreateFn            func(ctx context.Context, card *domain.Card) (*domain.Card, error)
	AddLikeFn           func(ctx context.Context, cardID, userID string) (*domain.Card, error)
	RemoveLikeFn        func(ctx context.Context, cardID, userID string) (*domain.Card, error)
	FindByIDAndRemoveFn func(ctx context.Context, id string) (*domain.Card, error)

	// Err is returned by methods whose function field is nil.
	Err error

	// RemoveCalls counts FindByIDAndRemove calls.
	RemoveCalls int
}

var _ store.CardStore = (*MockCardStore)(nil)

// Find implements the CardStore interface
func (m *MockCardStore) Find(ctx context.Context) ([]domain.Card, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx)
	}
	return []domain.Card{}, m.Err
}

// FindByID implements the CardStore interface
func (m *MockCardStore) FindByID(ctx context.Context, id string) (*domain.Card, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, m.Err
}

// Create implements the CardStore interface. By default it echoes the card.
func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, card)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return card, nil
}

// AddLike implements the CardStore interface
func (m *MockCardStore) AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	if m.AddLikeFn != nil {
		return m.AddLikeFn(ctx, cardID, userID)
	}
	return nil, m.Err
}

// RemoveLike implements the CardStore interface
func (m *MockCardStore) RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	if m.RemoveLikeFn != nil {
		return m.RemoveLikeFn(ctx, cardID, userID)
	}
	return nil, m.Err
}

// FindByIDAndRemove implements the CardStore interface
func (m *MockCardStore) FindByIDAndRemove(ctx context.Context, id string) (*domain.Card, error) {
	m.RemoveCalls++
	if m.FindByIDAndRemoveFn != nil {
		return m.FindByIDAndRemoveFn(ctx, id)
	}
	return nil, m.Err
}

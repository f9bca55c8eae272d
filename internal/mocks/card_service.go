package mocks

import (
	"context"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/service"
)

// MockCardService implements service.CardService for testing
type MockCardService struct {
	ListFn   func(ctx context.Context) ([]domain.Card, error)
	CreateFn func(ctx context.Context, ownerID, name, link string) (*domain.Card, error)
	DeleteFn func(ctx context.Context, subjectID, cardID string) (*domain.Card, error)
	LikeFn   func(ctx context.Context, subjectID, cardID string) (*domain.Card, error)
	UnlikeFn func(ctx context.Context, subjectID, cardID string) (*domain.Card, error)

	// Err is returned by methods whose function field is nil.
	Err error
}

var _ service.CardService = (*MockCardService)(nil)

// List implements the CardService interface
func (m *MockCardService) List(ctx context.Context) ([]domain.Card, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []domain.Card{}, m.Err
}

// Create implements the CardService interface
func (m *MockCardService) Create(ctx context.Context, ownerID, name, link string) (*domain.Card, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ownerID, name, link)
	}
	return nil, m.Err
}

// Delete implements the CardService interface
func (m *MockCardService) Delete(ctx context.Context, subjectID, cardID string) (*domain.Card, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, subjectID, cardID)
	}
	return nil, m.Err
}

// Like implements the CardService interface
func (m *MockCardService) Like(ctx context.Context, subjectID, cardID string) (*domain.Card, error) {
	if m.LikeFn != nil {
		return m.LikeFn(ctx, subjectID, cardID)
	}
	return nil, m.Err
}

// Unlike implements the CardService interface
func (m *MockCardService) Unlike(ctx context.Context, subjectID, cardID string) (*domain.Card, error) {
	if m.UnlikeFn != nil {
		return m.UnlikeFn(ctx, subjectID, cardID)
	}
	return nil, m.Err
}

package mocks

import (
	"context"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	FindFn              func(ctx context.Context) ([]domain.User, error)
	FindByIDFn          func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFn       func(ctx context.Context, email string) (*domain.User, error)
	CreateFn            func(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByIDAndUpdateFn func(
		ctx context.Context,
		id string,
		update domain.UserUpdate,
		opts store.UpdateOptions,
	) (*domain.User, error)

	// Err is returned by methods whose function field is nil.
	Err error

	// LastUpdateOptions records the options of the most recent FindByIDAndUpdate call.
	LastUpdateOptions store.UpdateOptions
}

var _ store.UserStore = (*MockUserStore)(nil)

// Find implements the UserStore interface
func (m *MockUserStore) Find(ctx context.Context) ([]domain.User, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx)
	}
	return []domain.User{}, m.Err
}

// FindByID implements the UserStore interface
func (m *MockUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, m.Err
}

// FindByEmail implements the UserStore interface
func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFn != nil {
		return m.FindByEmailFn(ctx, email)
	}
	return nil, m.Err
}

// Create implements the UserStore interface. By default it echoes the user.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return user, nil
}

// FindByIDAndUpdate implements the UserStore interface
func (m *MockUserStore) FindByIDAndUpdate(
	ctx context.Context,
	id string,
	update domain.UserUpdate,
	opts store.UpdateOptions,
) (*domain.User, error) {
	m.LastUpdateOptions = opts
	if m.FindByIDAndUpdateFn != nil {
		return m.FindByIDAndUpdateFn(ctx, id, update, opts)
	}
	return nil, m.Err
}

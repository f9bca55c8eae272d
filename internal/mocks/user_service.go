package mocks

import (
	"context"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/service"
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterFn      func(ctx context.Context, input service.RegisterInput) (*domain.User, error)
	AuthenticateFn  func(ctx context.Context, email, password string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]domain.User, error)
	GetFn           func(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfileFn func(ctx context.Context, subjectID string, name, about *string) (*domain.User, error)
	UpdateAvatarFn  func(ctx context.Context, subjectID, avatar string) (*domain.User, error)

	// Err is returned by methods whose function field is nil.
	Err error
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements the UserService interface
func (m *MockUserService) Register(ctx context.Context, input service.RegisterInput) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, input)
	}
	return nil, m.Err
}

// Authenticate implements the UserService interface
func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return nil, m.Err
}

// List implements the UserService interface
func (m *MockUserService) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []domain.User{}, m.Err
}

// Get implements the UserService interface
func (m *MockUserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	return nil, m.Err
}

// UpdateProfile implements the UserService interface
func (m *MockUserService) UpdateProfile(
	ctx context.Context,
	subjectID string,
	name, about *string,
) (*domain.User, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, subjectID, name, about)
	}
	return nil, m.Err
}

// UpdateAvatar implements the UserService interface
func (m *MockUserService) UpdateAvatar(ctx context.Context, subjectID, avatar string) (*domain.User, error) {
	if m.UpdateAvatarFn != nil {
		return m.UpdateAvatarFn(ctx, subjectID, avatar)
	}
	return nil, m.Err
}

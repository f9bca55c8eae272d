package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/phrazzld/mesto-api/internal/apperr"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"github.com/phrazzld/mesto-api/internal/store"
)

// profileUpdateOptions are used by every profile mutation: a missing user is
// created from the update plus defaults, and the update is validated.
var profileUpdateOptions = store.UpdateOptions{Upsert: true, RunValidators: true}

// RegisterInput is the data submitted at sign-up.
type RegisterInput struct {
	Name     string
	About    string
	Avatar   string
	Email    string
	Password string
}

// UserService provides user-related operations.
type UserService interface {
	// Register creates a user with a hashed password.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)

	// Authenticate returns the user whose email and password match. Every
	// mismatch is the same Unauthorized error.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// List returns all users.
	List(ctx context.Context) ([]domain.User, error)

	// Get returns the user with the given ID, or a NotFound error.
	Get(ctx context.Context, userID string) (*domain.User, error)

	// UpdateProfile changes the caller's name and/or about. Nil fields are
	// left untouched; a missing user is created.
	UpdateProfile(ctx context.Context, subjectID string, name, about *string) (*domain.User, error)

	// UpdateAvatar changes the caller's avatar; a missing user is created.
	UpdateAvatar(ctx context.Context, subjectID, avatar string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger

	// placeholderHash is compared against on sign-in for an unknown email so
	// the response takes as long as a wrong password.
	placeholderOnce sync.Once
	placeholderHash string
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger.With("component", "user_service"),
	}
}

// NormalizeEmail lowercases and trims an email so lookups match exactly.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user.
func (s *UserServiceImpl) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err.Error(), err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.NewUser(input.Name, input.About, input.Avatar, NormalizeEmail(input.Email), hash)
	created, err := s.userStore.Create(ctx, user)
	if err != nil {
		if code, ok := store.CodeOf(err); ok {
			s.logger.Debug("user rejected by store", "code", code)
		} else {
			s.logger.Error("failed to save user", "error", err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", created.ID)
	return created, nil
}

// Authenticate verifies an email and password pair.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalidCredentials()
	}

	user, err := s.userStore.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed to look up user by email", "error", err)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	if user == nil {
		s.logger.Debug("sign-in for unknown email")
		_ = s.hasher.Compare(s.timingHash(), password)
		return nil, invalidCredentials()
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("sign-in with wrong password", "user_id", user.ID)
		return nil, invalidCredentials()
	}

	return user, nil
}

// List returns every user.
func (s *UserServiceImpl) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userStore.Find(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Get retrieves a user by ID.
func (s *UserServiceImpl) Get(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return nil, userNotFound()
	}
	return user, nil
}

// UpdateProfile changes the caller's name and about.
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	subjectID string,
	name, about *string,
) (*domain.User, error) {
	return s.update(ctx, subjectID, domain.UserUpdate{Name: name, About: about})
}

// UpdateAvatar changes the caller's avatar.
func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, subjectID, avatar string) (*domain.User, error) {
	return s.update(ctx, subjectID, domain.UserUpdate{Avatar: &avatar})
}

func (s *UserServiceImpl) update(ctx context.Context, subjectID string, update domain.UserUpdate) (*domain.User, error) {
	user, err := s.userStore.FindByIDAndUpdate(ctx, subjectID, update, profileUpdateOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		// Only a store that ignores Upsert gets here.
		return nil, userNotFound()
	}

	s.logger.Debug("profile updated", "user_id", subjectID)
	return user, nil
}

// timingHash returns a hash of a throwaway password, computed once with the
// service's hasher so it has the same cost as stored hashes.
func (s *UserServiceImpl) timingHash() string {
	s.placeholderOnce.Do(func() {
		hash, err := s.hasher.Hash("signin-timing-placeholder")
		if err != nil {
			s.logger.Error("failed to hash sign-in placeholder", "error", err)
			return
		}
		s.placeholderHash = hash
	})
	return s.placeholderHash
}

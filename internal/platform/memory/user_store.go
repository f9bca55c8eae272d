package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
)

// UserStore is a store.UserStore backed by maps keyed by canonical user ID
// and by email. Safe for concurrent use.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
	order   []string
	logger  *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates an empty UserStore.
func NewUserStore(logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
		logger:  logger.With("component", "memory_user_store"),
	}
}

func copyUser(u *domain.User) *domain.User {
	cp := *u
	return &cp
}

// Find implements store.UserStore.
func (s *UserStore) Find(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.order))
	for _, id := range s.order {
		users = append(users, *s.byID[id])
	}
	return users, nil
}

// FindByID implements store.UserStore.
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	id, err := store.CanonicalID(store.EntityUser, id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

// FindByEmail implements store.UserStore.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	return copyUser(s.byID[id]), nil
}

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := store.CanonicalID(store.EntityUser, user.ID)
	if err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, store.NewValidationError(store.EntityUser, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := copyUser(user)
	stored.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[stored.Email]; exists {
		s.logger.Debug("rejecting duplicate email", "user_id", id)
		return nil, store.NewDuplicateError(store.EntityUser, "email", stored.Email, nil)
	}
	if _, exists := s.byID[id]; exists {
		return nil, store.NewDuplicateError(store.EntityUser, "_id", id, nil)
	}

	s.insertLocked(stored)
	return copyUser(stored), nil
}

// exists reports whether a user with the canonical id is stored.
func (s *UserStore) exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

func (s *UserStore) insertLocked(u *domain.User) {
	s.byID[u.ID] = u
	if u.Email != "" {
		s.byEmail[u.Email] = u.ID
	}
	s.order = append(s.order, u.ID)
}

// FindByIDAndUpdate implements store.UserStore.
func (s *UserStore) FindByIDAndUpdate(
	ctx context.Context,
	id string,
	update domain.UserUpdate,
	opts store.UpdateOptions,
) (*domain.User, error) {
	id, err := store.CanonicalID(store.EntityUser, id)
	if err != nil {
		return nil, err
	}
	if opts.RunValidators {
		if err := update.Validate(); err != nil {
			return nil, store.NewValidationError(store.EntityUser, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.byID[id]
	if !ok {
		if !opts.Upsert {
			return nil, nil
		}
		created := domain.NewUserFromUpdate(id, update)
		s.insertLocked(created)
		s.logger.Debug("user created by upsert", "user_id", id)
		return copyUser(created), nil
	}

	update.ApplyTo(existing)
	return copyUser(existing), nil
}

package store

import (
	"context"

	"github.com/phrazzld/mesto-api/internal/domain"
)

// EntityUser names users in store errors.
const EntityUser = "user"

// UpdateOptions controls FindByIDAndUpdate.
type UpdateOptions struct {
	// Upsert inserts a new record built from the update and the schema
	// defaults when no record has the given ID.
	Upsert bool

	// RunValidators checks the update against the schema before writing.
	RunValidators bool
}

// UserStore defines the interface for user data persistence.
//
// Lookups of a well-formed identifier that matches nothing return (nil, nil).
// A malformed identifier yields a *Error with CodeCast. Schema failures yield
// CodeValidation and uniqueness failures yield CodeDuplicateKey. Any other
// error is an infrastructure failure.
type UserStore interface {
	// Find returns every user.
	Find(ctx context.Context) ([]domain.User, error)

	// FindByID returns the user with the given ID, or nil when absent.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail returns the user with the given email, or nil when absent.
	// The email is matched exactly; callers normalize it first.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create validates and inserts a new user. A second user with the same
	// email fails with CodeDuplicateKey and leaves the first untouched.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByIDAndUpdate applies update to the user with the given ID and
	// returns the record after the update. With opts.Upsert set, a missing
	// user is created from the update plus defaults; otherwise a missing user
	// returns (nil, nil).
	FindByIDAndUpdate(
		ctx context.Context,
		id string,
		update domain.UserUpdate,
		opts UpdateOptions,
	) (*domain.User, error)
}

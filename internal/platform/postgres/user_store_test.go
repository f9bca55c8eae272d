package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewPostgresUserStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresUserStore(nil, nil) })
}

func TestPostgresUserStore_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		u := domain.NewUser("Jacques", "Explorer", "", "jc@example.com", "hash")

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Name, u.About, u.Avatar, u.Email, u.HashedPassword).
			WillReturnRows(userRow(u))

		created, err := s.Create(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, u, created)
	})

	t.Run("duplicate email carries the value", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		u := domain.NewUser("Jacques", "Explorer", "", "jc@example.com", "hash")

		pgErr := pgError(pgerrcode.UniqueViolation)
		pgErr.ConstraintName = "users_email_key"
		mock.ExpectQuery("INSERT INTO users").WillReturnError(pgErr)

		_, err := s.Create(ctx, u)
		storeErr, ok := store.AsError(err)
		require.True(t, ok)
		assert.Equal(t, store.CodeDuplicateKey, storeErr.Code)
		assert.Equal(t, "email", storeErr.Field)
		assert.Equal(t, "jc@example.com", storeErr.Value)
	})

	t.Run("invalid document never reaches the database", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		u := domain.NewUser("J", "Explorer", "", "jc@example.com", "hash")

		_, err := s.Create(ctx, u)
		code, ok := store.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, store.CodeValidation, code)
	})
}

func TestPostgresUserStore_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		u := domain.NewUserFromUpdate(uuid.NewString(), domain.UserUpdate{})

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs(u.ID).
			WillReturnRows(userRow(u))

		found, err := s.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u, found)
		assert.Empty(t, found.Email)
	})

	t.Run("absent", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("FROM users").WillReturnRows(sqlmock.NewRows(userRowColumns))

		found, err := s.FindByID(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("malformed id", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		_, err := s.FindByID(ctx, "42")
		code, ok := store.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, store.CodeCast, code)
	})

	t.Run("driver failure is not coded", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("FROM users").WillReturnError(errors.New("connection reset by peer"))

		_, err := s.FindByID(ctx, uuid.NewString())
		require.Error(t, err)
		_, ok := store.AsError(err)
		assert.False(t, ok)
	})
}

func TestPostgresUserStore_Find(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, nil)
	a := domain.NewUser("Alice", "", "", "a@example.com", "h1")
	b := domain.NewUser("Bob", "", "", "b@example.com", "h2")

	rows := sqlmock.NewRows(userRowColumns).
		AddRow(a.ID, a.Name, a.About, a.Avatar, a.Email, a.HashedPassword).
		AddRow(b.ID, b.Name, b.About, b.Avatar, b.Email, b.HashedPassword)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY created_at, id")).WillReturnRows(rows)

	users, err := s.Find(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "Bob", users[1].Name)
}

func TestPostgresUserStore_FindByIDAndUpdate(t *testing.T) {
	ctx := context.Background()
	upsert := store.UpdateOptions{Upsert: true, RunValidators: true}

	t.Run("upsert overwrites only updated columns", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		id := uuid.NewString()
		want := domain.NewUserFromUpdate(id, domain.UserUpdate{About: strPtr("Sailor")})

		mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (id) DO UPDATE SET about = EXCLUDED.about RETURNING")).
			WithArgs(id, domain.DefaultUserName, "Sailor", domain.DefaultUserAvatar).
			WillReturnRows(userRow(want))

		got, err := s.FindByIDAndUpdate(ctx, id, domain.UserUpdate{About: strPtr("Sailor")}, upsert)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("upsert with several fields orders assignments", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		id := uuid.NewString()
		update := domain.UserUpdate{Name: strPtr("Marie"), About: strPtr("Sailor")}

		mock.ExpectQuery(regexp.QuoteMeta("DO UPDATE SET about = EXCLUDED.about, name = EXCLUDED.name")).
			WillReturnRows(userRow(domain.NewUserFromUpdate(id, update)))

		_, err := s.FindByIDAndUpdate(ctx, id, update, upsert)
		require.NoError(t, err)
	})

	t.Run("plain update of missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		id := uuid.NewString()

		mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET name = $1 WHERE id = $2")).
			WithArgs("Marie", id).
			WillReturnRows(sqlmock.NewRows(userRowColumns))

		got, err := s.FindByIDAndUpdate(ctx, id, domain.UserUpdate{Name: strPtr("Marie")},
			store.UpdateOptions{RunValidators: true})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty update without upsert reads the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)
		id := uuid.NewString()
		want := domain.NewUserFromUpdate(id, domain.UserUpdate{})

		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
			WithArgs(id).
			WillReturnRows(userRow(want))

		got, err := s.FindByIDAndUpdate(ctx, id, domain.UserUpdate{}, store.UpdateOptions{RunValidators: true})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("invalid update", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		_, err := s.FindByIDAndUpdate(ctx, uuid.NewString(), domain.UserUpdate{Avatar: strPtr("nope")}, upsert)
		storeErr, ok := store.AsError(err)
		require.True(t, ok)
		assert.Equal(t, store.CodeValidation, storeErr.Code)
		assert.Equal(t, "Avatar", storeErr.Field)
	})

	t.Run("check constraint violation", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, nil)

		mock.ExpectQuery("INSERT INTO users").WillReturnError(pgError(pgerrcode.CheckViolation))

		_, err := s.FindByIDAndUpdate(ctx, uuid.NewString(), domain.UserUpdate{}, store.UpdateOptions{Upsert: true})
		code, ok := store.CodeOf(err)
		require.True(t, ok)
		assert.Equal(t, store.CodeValidation, code)
	})
}

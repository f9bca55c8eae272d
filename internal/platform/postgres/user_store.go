package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u     domain.User
		email sql.NullString
		hash  sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Name, &u.About, &u.Avatar, &email, &hash); err != nil {
		return nil, err
	}
	u.Email = email.String
	u.HashedPassword = hash.String
	return &u, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Find implements store.UserStore.Find
func (s *PostgresUserStore) Find(ctx context.Context) ([]domain.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select users query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", redact.Error(err)))
		return nil, MapError(store.EntityUser, err)
	}
	defer func() { _ = rows.Close() }()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// FindByID implements store.UserStore.FindByID
func (s *PostgresUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := store.ParseID(store.EntityUser, id); err != nil {
		return nil, err
	}
	return s.findOne(ctx, sq.Eq{"id": id})
}

// FindByEmail implements store.UserStore.FindByEmail
func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, sq.Eq{"email": email})
}

func (s *PostgresUserStore) findOne(ctx context.Context, where sq.Eq) (*domain.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user query: %w", err)
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError(store.EntityUser, err)
	}
	return u, nil
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := store.ParseID(store.EntityUser, user.ID); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, store.NewValidationError(store.EntityUser, err)
	}

	query, args, err := psql.Insert("users").
		Columns("id", "name", "about", "avatar", "email", "password_hash").
		Values(user.ID, user.Name, user.About, user.Avatar, nullable(user.Email), nullable(user.HashedPassword)).
		Suffix(returning(userColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert user query: %w", err)
	}

	created, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		mapped := MapError(store.EntityUser, err)
		if storeErr, ok := store.AsError(mapped); ok &&
			storeErr.Code == store.CodeDuplicateKey && storeErr.Field == "email" {
			storeErr.Value = user.Email
			s.logger.Debug("rejecting duplicate email", slog.String("user_id", user.ID))
		}
		return nil, mapped
	}
	return created, nil
}

// updateSet returns the columns present in update.
func updateSet(update domain.UserUpdate) map[string]any {
	set := map[string]any{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.About != nil {
		set["about"] = *update.About
	}
	if update.Avatar != nil {
		set["avatar"] = *update.Avatar
	}
	return set
}

// upsertSuffix renders the ON CONFLICT clause that overwrites only the
// updated columns. An empty update still touches the row so RETURNING yields it.
func upsertSuffix(set map[string]any) string {
	cols := make([]string, 0, len(set))
	for col := range set {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	assignments := make([]string, 0, len(cols))
	for _, col := range cols {
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	if len(assignments) == 0 {
		assignments = append(assignments, "id = EXCLUDED.id")
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(assignments, ", ") + " " + returning(userColumns)
}

// FindByIDAndUpdate implements store.UserStore.FindByIDAndUpdate
func (s *PostgresUserStore) FindByIDAndUpdate(
	ctx context.Context,
	id string,
	update domain.UserUpdate,
	opts store.UpdateOptions,
) (*domain.User, error) {
	if _, err := store.ParseID(store.EntityUser, id); err != nil {
		return nil, err
	}
	if opts.RunValidators {
		if err := update.Validate(); err != nil {
			return nil, store.NewValidationError(store.EntityUser, err)
		}
	}

	set := updateSet(update)

	var builder interface {
		ToSql() (string, []any, error)
	}
	switch {
	case opts.Upsert:
		fresh := domain.NewUserFromUpdate(id, update)
		builder = psql.Insert("users").
			Columns("id", "name", "about", "avatar").
			Values(fresh.ID, fresh.Name, fresh.About, fresh.Avatar).
			Suffix(upsertSuffix(set))
	case update.IsEmpty():
		return s.FindByID(ctx, id)
	default:
		builder = psql.Update("users").
			SetMap(set).
			Where(sq.Eq{"id": id}).
			Suffix(returning(userColumns))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update user query: %w", err)
	}

	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to update user",
			slog.String("user_id", id),
			slog.Bool("upsert", opts.Upsert),
			slog.String("error", redact.Error(err)))
		return nil, MapError(store.EntityUser, err)
	}
	return u, nil
}

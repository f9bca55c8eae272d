package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
// Likes are kept in a uuid[] column so like changes are single-row updates.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

func scanCard(row rowScanner) (*domain.Card, error) {
	var (
		c     domain.Card
		likes []byte
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Link, &c.Owner, &likes, &c.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(likes, &c.Likes); err != nil {
		return nil, fmt.Errorf("decode likes: %w", err)
	}
	if c.Likes == nil {
		c.Likes = []string{}
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

// Find implements store.CardStore.Find
func (s *PostgresCardStore) Find(ctx context.Context) ([]domain.Card, error) {
	query, args, err := psql.Select(cardColumns...).From("cards").OrderBy("created_at", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select cards query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to list cards", slog.String("error", redact.Error(err)))
		return nil, MapError(store.EntityCard, err)
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}

// FindByID implements store.CardStore.FindByID
func (s *PostgresCardStore) FindByID(ctx context.Context, id string) (*domain.Card, error) {
	if _, err := store.ParseID(store.EntityCard, id); err != nil {
		return nil, err
	}
	query, args, err := psql.Select(cardColumns...).From("cards").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select card query: %w", err)
	}
	return s.queryOne(ctx, query, args)
}

// Create implements store.CardStore.Create
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	if _, err := store.ParseID(store.EntityCard, card.ID); err != nil {
		return nil, err
	}
	if err := card.Validate(); err != nil {
		return nil, store.NewValidationError(store.EntityCard, err)
	}

	query, args, err := psql.Insert("cards").
		Columns("id", "name", "link", "owner_id", "created_at").
		Values(card.ID, card.Name, card.Link, card.Owner, card.CreatedAt).
		Suffix(returning(cardColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert card query: %w", err)
	}
	return s.queryOne(ctx, query, args)
}

// AddLike implements store.CardStore.AddLike
func (s *PostgresCardStore) AddLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.updateLikes(ctx, cardID, userID,
		"CASE WHEN ?::uuid = ANY(likes) THEN likes ELSE array_append(likes, ?::uuid) END", 2)
}

// RemoveLike implements store.CardStore.RemoveLike
func (s *PostgresCardStore) RemoveLike(ctx context.Context, cardID, userID string) (*domain.Card, error) {
	return s.updateLikes(ctx, cardID, userID, "array_remove(likes, ?::uuid)", 1)
}

func (s *PostgresCardStore) updateLikes(
	ctx context.Context,
	cardID, userID string,
	expr string,
	userArgs int,
) (*domain.Card, error) {
	if _, err := store.ParseID(store.EntityCard, cardID); err != nil {
		return nil, err
	}
	if _, err := store.ParseID(store.EntityUser, userID); err != nil {
		return nil, err
	}

	args := make([]any, userArgs)
	for i := range args {
		args[i] = userID
	}
	query, qargs, err := psql.Update("cards").
		Set("likes", sq.Expr(expr, args...)).
		Where(sq.Eq{"id": cardID}).
		Suffix(returning(cardColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update likes query: %w", err)
	}
	return s.queryOne(ctx, query, qargs)
}

// FindByIDAndRemove implements store.CardStore.FindByIDAndRemove
func (s *PostgresCardStore) FindByIDAndRemove(ctx context.Context, id string) (*domain.Card, error) {
	if _, err := store.ParseID(store.EntityCard, id); err != nil {
		return nil, err
	}
	query, args, err := psql.Delete("cards").
		Where(sq.Eq{"id": id}).
		Suffix(returning(cardColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete card query: %w", err)
	}

	c, err := s.queryOne(ctx, query, args)
	if err == nil && c != nil {
		s.logger.Debug("card removed", slog.String("card_id", id))
	}
	return c, err
}

// queryOne runs a single-row statement. No rows means absent.
func (s *PostgresCardStore) queryOne(ctx context.Context, query string, args []any) (*domain.Card, error) {
	c, err := scanCard(s.db.QueryRowContext(ctx, query, args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		s.logger.Debug("card query failed", slog.String("error", redact.Error(err)))
		return nil, MapError(store.EntityCard, err)
	}
	return c, nil
}

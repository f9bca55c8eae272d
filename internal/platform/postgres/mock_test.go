package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/mesto-api/internal/domain"
	"github.com/stretchr/testify/require"
)

var (
	userRowColumns = []string{"id", "name", "about", "avatar", "email", "password_hash"}
	cardRowColumns = []string{"id", "name", "link", "owner_id", "likes", "created_at"}
)

// newMockDB returns a sqlmock connection whose expectations are verified
// when the test ends.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func pgError(code string) *pgconn.PgError {
	return &pgconn.PgError{Code: code}
}

func userRow(u *domain.User) *sqlmock.Rows {
	var email, hash any
	if u.Email != "" {
		email = u.Email
	}
	if u.HashedPassword != "" {
		hash = u.HashedPassword
	}
	return sqlmock.NewRows(userRowColumns).AddRow(u.ID, u.Name, u.About, u.Avatar, email, hash)
}

func cardRow(c *domain.Card, likesJSON string) *sqlmock.Rows {
	return sqlmock.NewRows(cardRowColumns).
		AddRow(c.ID, c.Name, c.Link, c.Owner, []byte(likesJSON), c.CreatedAt)
}

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

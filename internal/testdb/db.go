package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/phrazzld/mesto-api/internal/platform/postgres"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// EnvTestDatabaseURL names the database used by integration tests.
const EnvTestDatabaseURL = "MESTO_TEST_DATABASE_URL"

// connectTimeout bounds the initial ping and each migration run.
const connectTimeout = 10 * time.Second

// tables lists every application table, children first.
var tables = []string{"cards", "users"}

// GetTestDatabaseURL returns the integration database URL, or "".
func GetTestDatabaseURL() string {
	return os.Getenv(EnvTestDatabaseURL)
}

// ShouldSkipDatabaseTest reports whether no integration database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURL() == ""
}

// GetTestDB opens the integration database with migrations applied. The test
// is skipped when no database is configured, and the connection is closed on
// cleanup.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if ShouldSkipDatabaseTest() {
		t.Skipf("%s not set, skipping PostgreSQL integration test", EnvTestDatabaseURL)
	}

	dbURL := GetTestDatabaseURL()
	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open %s", redact.String(dbURL))
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "database at %s is unreachable", redact.String(dbURL))
	require.NoError(t, postgres.Migrate(ctx, db, "up", nil), "failed to apply migrations")

	return db
}

// Truncate removes all rows from every application table.
func Truncate(t *testing.T, db *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	for _, table := range tables {
		_, err := db.ExecContext(ctx, "TRUNCATE "+table+" CASCADE")
		require.NoError(t, err, "failed to truncate %s", table)
	}
}

// WithTx runs fn inside a transaction that is rolled back afterwards, so
// nothing fn writes is persisted.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

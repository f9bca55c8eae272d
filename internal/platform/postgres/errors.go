package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/mesto-api/internal/store"
)

// MapError translates a driver error into a coded store error where the
// SQLSTATE identifies a client problem. Other errors are returned unchanged
// so callers treat them as infrastructure failures.
func MapError(entity string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return store.NewDuplicateError(entity, constraintField(pgErr.ConstraintName), "", err)
	case pgerrcode.InvalidTextRepresentation:
		return &store.Error{
			Code:   store.CodeCast,
			Entity: entity,
			Err:    fmt.Errorf("%w: %w", store.ErrMalformedID, err),
		}
	case pgerrcode.ForeignKeyViolation,
		pgerrcode.CheckViolation,
		pgerrcode.NotNullViolation,
		pgerrcode.StringDataRightTruncationDataException:
		return &store.Error{
			Code:   store.CodeValidation,
			Entity: entity,
			Field:  pgErr.ColumnName,
			Err:    fmt.Errorf("%w: %s: %w", store.ErrInvalidEntity, pgErr.ConstraintName, err),
		}
	}

	return err
}

// constraintField derives the column name from a default unique constraint
// name such as "users_email_key". Primary keys map to "_id".
func constraintField(constraint string) string {
	if strings.HasSuffix(constraint, "_pkey") {
		return "_id"
	}
	name := strings.TrimSuffix(constraint, "_key")
	if i := strings.Index(name, "_"); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return name
}

// isNoRows reports whether a single-row query matched nothing.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

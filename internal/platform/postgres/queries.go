package postgres

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// psql builds statements with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"id::text",
	"name",
	"about",
	"avatar",
	"email",
	"password_hash",
}

var cardColumns = []string{
	"id::text",
	"name",
	"link",
	"owner_id::text",
	"COALESCE(to_jsonb(likes), '[]'::jsonb)",
	"created_at",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

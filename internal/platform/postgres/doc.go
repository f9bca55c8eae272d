// Package postgres provides PostgreSQL implementations of the store
// interfaces. Statements are built with squirrel, driver errors are mapped to
// store failure codes by SQLSTATE, and the schema is applied from embedded
// goose migrations.
package postgres

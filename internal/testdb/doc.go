// Package testdb provides utilities for tests that need a real PostgreSQL
// database.
//
// Tests call GetTestDB, which skips the test unless MESTO_TEST_DATABASE_URL
// is set, connects with the pgx driver and applies the embedded migrations.
// Between cases, Truncate empties every table. WithTx runs a function inside
// a transaction that is always rolled back, for tests that only read their
// own writes and never trigger a failing statement (PostgreSQL aborts the
// whole transaction on the first error).
package testdb

// Package logger configures the process-wide JSON slog logger from the
// server config and threads request-scoped loggers and request IDs through
// contexts. TestLogBuffer and friends let tests assert on emitted entries.
package logger

// Package memory provides in-process implementations of the store
// interfaces. They apply the same schema rules and failure codes as the
// PostgreSQL stores and are used for local development and tests.
package memory

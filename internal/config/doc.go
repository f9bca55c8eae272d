// Package config handles configuration loading, parsing, and validation
// from various sources (a .env file, an optional YAML file, environment
// variables prefixed with MESTO_). Loaded values are passed explicitly to the
// constructors that need them; nothing reads configuration globally.
package config

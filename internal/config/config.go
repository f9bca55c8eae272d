package config

import (
	"errors"
	"time"
)

// EnvProduction is the only environment in which the configured JWT secret
// is used for signing. Every other environment signs with the development
// fallback secret.
const EnvProduction = "production"

// MinProductionSecretLength is the shortest JWT secret accepted in production.
const MinProductionSecretLength = 32

// Storage backends accepted by database.backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// ErrWeakProductionSecret is returned when production runs with a short secret.
var ErrWeakProductionSecret = errors.New("auth.jwt_secret must be at least 32 characters in production")

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development test production"`

	// RequestTimeout bounds the context of every request, store calls included.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// IsProduction reports whether the server runs in the production environment.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == EnvProduction
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=memory postgres"`
	URL     string `mapstructure:"url" validate:"required_if=Backend postgres,omitempty,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	BcryptCost int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`

	// Requests allowed per client IP on /signin and /signup within the window.
	RateLimitRequests int           `mapstructure:"rate_limit_requests" validate:"gt=0"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window" validate:"gt=0"`
}

// Validate applies the rules that span config sections.
func (c *Config) Validate() error {
	if c.Server.IsProduction() && len(c.Auth.JWTSecret) < MinProductionSecretLength {
		return ErrWeakProductionSecret
	}
	return nil
}

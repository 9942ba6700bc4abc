// Package config loads the process-wide configuration once at startup.
//
// The resulting Config is passed explicitly to the store, the token service
// and the HTTP server. Nothing in the application reads the environment after
// Load returns.
package config

import "time"

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains the HTTP listener and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=text json"`
}

// DatabaseConfig contains the store connection string.
//
// URL is either a postgres:// (or postgresql://) URL, or a SQLite file path.
// ":memory:" gives a throwaway in-memory database.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains token signing and password hashing settings.
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret" validate:"required,min=16"`
	TokenTTL   time.Duration `mapstructure:"token_ttl" validate:"required,gt=0"`
	BcryptCost int           `mapstructure:"bcrypt_cost" validate:"required,min=4,max=31"`
}

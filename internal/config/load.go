package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Defaults applied before the config file and the environment.
const (
	DefaultPort       = 3000
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultDBURL      = "data/starwars.db"
	DefaultTokenTTL   = "15m"
	DefaultBcryptCost = 12
)

// envBindings maps each config key to the environment variables that can set
// it, in order of precedence. The first names are the ones the service has
// always used (PORT, DB_CONNECTION_STRING, JWT_SECRET_KEY).
var envBindings = map[string][]string{
	"server.port":       {"PORT"},
	"server.log_level":  {"LOG_LEVEL"},
	"server.log_format": {"LOG_FORMAT"},
	"database.url":      {"DB_CONNECTION_STRING", "DATABASE_URL"},
	"auth.jwt_secret":   {"JWT_SECRET_KEY", "JWT_SECRET"},
	"auth.token_ttl":    {"TOKEN_TTL"},
	"auth.bcrypt_cost":  {"BCRYPT_COST"},
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence, then validates the result.
//
// path may be empty, in which case no file is read. Any format viper
// understands (yaml, toml, json) is accepted; the extension decides.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}

	cfg.Server.LogLevel = strings.ToLower(cfg.Server.LogLevel)
	cfg.Server.LogFormat = strings.ToLower(cfg.Server.LogFormat)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadDatabase resolves only the database section, from the same sources
// as Load. Tools that never issue tokens (the seed loader) use it so they
// do not need a JWT secret.
func LoadDatabase(path string) (*DatabaseConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	// Unmarshal rather than UnmarshalKey: only the former sees env
	// overrides of nested keys.
	var partial struct {
		Database DatabaseConfig `mapstructure:"database"`
	}
	if err := v.Unmarshal(&partial); err != nil {
		return nil, fmt.Errorf("config: decoding database: %w", err)
	}

	if err := validator.New().Struct(&partial.Database); err != nil {
		return nil, fmt.Errorf("config: invalid database configuration: %w", err)
	}

	return &partial.Database, nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.log_format", DefaultLogFormat)
	v.SetDefault("database.url", DefaultDBURL)
	v.SetDefault("auth.token_ttl", DefaultTokenTTL)
	v.SetDefault("auth.bcrypt_cost", DefaultBcryptCost)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("config: binding env for %s: %w", key, err)
		}
	}

	return v, nil
}

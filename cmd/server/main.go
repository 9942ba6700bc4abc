// Command server runs the Star Wars blog API.
//
// Configuration comes from the environment (PORT, DB_CONNECTION_STRING,
// JWT_SECRET_KEY, ...) and optionally a config file:
//
//	server -config config.yaml
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/starwars-api/internal/config"
	"github.com/sakif/starwars-api/internal/repository/sqlstore"
	"github.com/sakif/starwars-api/internal/server"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, toml or json)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// No configured logger yet; fall back to the default one.
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.Server)
	slog.SetDefault(logger)

	// A SQLite file needs its directory to exist before the driver opens it.
	if sqlstore.DetectDialect(cfg.Database.URL) == sqlstore.DialectSQLite && cfg.Database.URL != ":memory:" {
		dbDir := filepath.Dir(cfg.Database.URL)
		if err := os.MkdirAll(dbDir, 0o755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", dbDir),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLogger builds the process logger from the configured format and level.
func newLogger(cfg config.ServerConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// Package sqlstore implements the repository interfaces on top of
// database/sql.
//
// Two engines are supported, picked from the connection string:
//
//   - postgres://... or postgresql://...  → PostgreSQL through the pgx stdlib driver
//   - anything else                       → SQLite through modernc.org/sqlite
//     (a file path, or ":memory:" for a throwaway database)
//
// Queries are written once with "?" placeholders and rebound to "$n" for
// PostgreSQL. The schema is created by the goose migrations embedded under
// migrations/<dialect>.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

//go:embed migrations/*/*.sql
var migrations embed.FS

// gooseMu serializes migrations: goose keeps its dialect and base FS in
// package-level state.
var gooseMu sync.Mutex

// Dialect identifies the SQL engine behind a DB.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DetectDialect picks the engine for a connection string.
func DetectDialect(url string) Dialect {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

func (d Dialect) gooseDialect() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// DB wraps a sql.DB connection pool and implements every repository
// interface in internal/repository.
type DB struct {
	conn    *sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// Open connects to the database named by url, applies connection settings
// and runs pending migrations.
//
// The returned DB owns the pool; call Close when done.
func Open(ctx context.Context, url string, logger *slog.Logger) (*DB, error) {
	dialect := DetectDialect(url)

	conn, err := sql.Open(dialect.driverName(), url)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: opening %s database: %w", dialect, err)
	}

	db := &DB{conn: conn, dialect: dialect, logger: logger}

	if err := db.configure(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlstore: running migrations: %w", err)
	}

	return db, nil
}

// configure sizes the pool, verifies connectivity and, for SQLite, applies
// the per-connection pragmas.
func (db *DB) configure(ctx context.Context) error {
	switch db.dialect {
	case DialectSQLite:
		// One connection: SQLite has a single writer, and an in-memory
		// database only exists on the connection that created it.
		db.conn.SetMaxOpenConns(1)
		db.conn.SetMaxIdleConns(1)
		db.conn.SetConnMaxLifetime(0)
	case DialectPostgres:
		db.conn.SetMaxOpenConns(10)
		db.conn.SetMaxIdleConns(5)
		db.conn.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.conn.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlstore: pinging database: %w", err)
	}

	if db.dialect != DialectSQLite {
		return nil
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.conn.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("sqlstore: %s: %w", p, err)
		}
	}
	return nil
}

func (db *DB) migrate() error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{logger: db.logger})
	if err := goose.SetDialect(db.dialect.gooseDialect()); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	return goose.Up(db.conn, "migrations/"+string(db.dialect))
}

// Dialect reports which engine the DB talks to.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// q adapts a query written with "?" placeholders to the DB's dialect.
func (db *DB) q(query string) string {
	if db.dialect != DialectPostgres {
		return query
	}
	return rebind(query)
}

// rebind replaces each "?" with "$1", "$2", ... in order.
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// gooseLogger routes goose output into the application's slog logger.
// Fatalf does not exit; goose.Up still returns the error to Open.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "goose"))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "goose"))
}

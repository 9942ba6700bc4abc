package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, email, password_hash, is_active, created_at`

// Create inserts a new user. The ID and CreatedAt are assigned here and
// written back into user.
//
// The UNIQUE constraint on email is the source of truth for duplicates: two
// concurrent signups with the same address race on the insert, and exactly
// one of them gets apperror.ErrConflict.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx, db.q(
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?)`),
		user.ID,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Email)
		}
		return fmt.Errorf("sqlstore: creating user: %w", err)
	}

	return nil
}

func (db *DB) List(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating users: %w", err)
	}

	return users, nil
}

func (db *DB) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := scanUser(db.conn.QueryRowContext(ctx, db.q(
		`SELECT `+userColumns+` FROM users WHERE id = ?`), id), &u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, fmt.Errorf("sqlstore: getting user %s: %w", id, err)
	}
	return &u, nil
}

// GetByEmail looks a user up by exact (already normalized) email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := scanUser(db.conn.QueryRowContext(ctx, db.q(
		`SELECT `+userColumns+` FROM users WHERE email = ?`), email), &u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, fmt.Errorf("sqlstore: getting user by email: %w", err)
	}
	return &u, nil
}

// scanner is the part of *sql.Row and *sql.Rows the scan helpers need.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner, u *model.User) error {
	return s.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.CreatedAt)
}

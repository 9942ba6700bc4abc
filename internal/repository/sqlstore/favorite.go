package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

var _ repository.FavoriteRepository = (*DB)(nil)

// CreateFavorite inserts fav for fav.UserID. Names are not unique per user;
// adding the same name twice stores two rows.
func (db *DB) CreateFavorite(ctx context.Context, fav *model.Favorite) error {
	fav.ID = xid.New().String()
	fav.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx, db.q(
		`INSERT INTO favorites (id, user_id, name, created_at)
		 VALUES (?, ?, ?, ?)`),
		fav.ID,
		fav.UserID,
		fav.Name,
		fav.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			// The owner was resolved from a token but is gone from the table.
			return apperror.ValidationFailed("user_id", "owner does not exist")
		}
		return fmt.Errorf("sqlstore: creating favorite: %w", err)
	}

	return nil
}

func (db *DB) ListFavorites(ctx context.Context) ([]model.Favorite, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, name, created_at
		 FROM favorites
		 ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing favorites: %w", err)
	}
	defer rows.Close()

	return scanFavorites(rows)
}

// ListFavoritesByUser returns only the favorites owned by userID, oldest
// first. An unknown user simply has none.
func (db *DB) ListFavoritesByUser(ctx context.Context, userID string) ([]model.Favorite, error) {
	rows, err := db.conn.QueryContext(ctx, db.q(
		`SELECT id, user_id, name, created_at
		 FROM favorites
		 WHERE user_id = ?
		 ORDER BY created_at, id`),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing favorites for user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanFavorites(rows)
}

// DeleteFavoritesByName removes every row owned by userID whose name matches
// exactly. Other users' favorites with the same name are untouched.
func (db *DB) DeleteFavoritesByName(ctx context.Context, userID, name string) (int64, error) {
	result, err := db.conn.ExecContext(ctx, db.q(
		`DELETE FROM favorites WHERE user_id = ? AND name = ?`),
		userID,
		name,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlstore: deleting favorites named %q: %w", name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlstore: checking rows affected: %w", err)
	}
	return n, nil
}

func scanFavorites(rows *sql.Rows) ([]model.Favorite, error) {
	favs := make([]model.Favorite, 0)
	for rows.Next() {
		var f model.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning favorite row: %w", err)
		}
		favs = append(favs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating favorites: %w", err)
	}
	return favs, nil
}

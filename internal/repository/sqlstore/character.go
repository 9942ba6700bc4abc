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

var _ repository.CharacterRepository = (*DB)(nil)

const characterColumns = `id, name, gender, height, birth_year, hair_color, eye_color, skin_color, created_at`

// CreateCharacter is used by the seed loader; the HTTP API never writes
// characters.
func (db *DB) CreateCharacter(ctx context.Context, c *model.Character) error {
	c.ID = xid.New().String()
	c.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx, db.q(
		`INSERT INTO characters (`+characterColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		c.ID, c.Name, c.Gender, c.Height, c.BirthYear,
		c.HairColor, c.EyeColor, c.SkinColor, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: creating character %q: %w", c.Name, err)
	}
	return nil
}

func (db *DB) ListCharacters(ctx context.Context) ([]model.Character, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing characters: %w", err)
	}
	defer rows.Close()

	chars := make([]model.Character, 0)
	for rows.Next() {
		var c model.Character
		if err := scanCharacter(rows, &c); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning character row: %w", err)
		}
		chars = append(chars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating characters: %w", err)
	}

	return chars, nil
}

func (db *DB) GetCharacter(ctx context.Context, id string) (*model.Character, error) {
	var c model.Character
	err := scanCharacter(db.conn.QueryRowContext(ctx, db.q(
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`), id), &c)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("character", id)
		}
		return nil, fmt.Errorf("sqlstore: getting character %s: %w", id, err)
	}
	return &c, nil
}

func scanCharacter(s scanner, c *model.Character) error {
	return s.Scan(&c.ID, &c.Name, &c.Gender, &c.Height, &c.BirthYear,
		&c.HairColor, &c.EyeColor, &c.SkinColor, &c.CreatedAt)
}

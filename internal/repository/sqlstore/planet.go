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

var _ repository.PlanetRepository = (*DB)(nil)

const planetColumns = `id, name, terrain, climate, population, orbital_period, rotation_period, diameter, created_at`

func (db *DB) CreatePlanet(ctx context.Context, p *model.Planet) error {
	p.ID = xid.New().String()
	p.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx, db.q(
		`INSERT INTO planets (`+planetColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.Name, p.Terrain, p.Climate, p.Population,
		p.OrbitalPeriod, p.RotationPeriod, p.Diameter, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: creating planet %q: %w", p.Name, err)
	}
	return nil
}

func (db *DB) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+planetColumns+` FROM planets ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing planets: %w", err)
	}
	defer rows.Close()

	planets := make([]model.Planet, 0)
	for rows.Next() {
		var p model.Planet
		if err := scanPlanet(rows, &p); err != nil {
			return nil, fmt.Errorf("sqlstore: scanning planet row: %w", err)
		}
		planets = append(planets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlstore: iterating planets: %w", err)
	}

	return planets, nil
}

func (db *DB) GetPlanet(ctx context.Context, id string) (*model.Planet, error) {
	var p model.Planet
	err := scanPlanet(db.conn.QueryRowContext(ctx, db.q(
		`SELECT `+planetColumns+` FROM planets WHERE id = ?`), id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("planet", id)
		}
		return nil, fmt.Errorf("sqlstore: getting planet %s: %w", id, err)
	}
	return &p, nil
}

func scanPlanet(s scanner, p *model.Planet) error {
	return s.Scan(&p.ID, &p.Name, &p.Terrain, &p.Climate, &p.Population,
		&p.OrbitalPeriod, &p.RotationPeriod, &p.Diameter, &p.CreatedAt)
}

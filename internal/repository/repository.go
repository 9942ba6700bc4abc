// Package repository declares the storage interfaces the services depend on.
// The SQL implementation lives in repository/sqlstore; tests use in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/starwars-api/internal/model"
)

// UserRepository stores accounts. Create must fail with apperror.ErrConflict
// when the email is already taken, without persisting anything.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// FavoriteRepository stores per-user favorites.
type FavoriteRepository interface {
	CreateFavorite(ctx context.Context, fav *model.Favorite) error
	// ListFavorites returns every user's favorites. No route exposes it.
	ListFavorites(ctx context.Context) ([]model.Favorite, error)
	ListFavoritesByUser(ctx context.Context, userID string) ([]model.Favorite, error)
	// DeleteFavoritesByName removes every favorite owned by userID with the
	// given name and reports how many rows went away.
	DeleteFavoritesByName(ctx context.Context, userID, name string) (int64, error)
}

type CharacterRepository interface {
	CreateCharacter(ctx context.Context, c *model.Character) error
	ListCharacters(ctx context.Context) ([]model.Character, error)
	GetCharacter(ctx context.Context, id string) (*model.Character, error)
}

type PlanetRepository interface {
	CreatePlanet(ctx context.Context, p *model.Planet) error
	ListPlanets(ctx context.Context) ([]model.Planet, error)
	GetPlanet(ctx context.Context, id string) (*model.Planet, error)
}

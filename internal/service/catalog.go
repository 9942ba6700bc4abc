package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// CatalogService serves the read-only reference data (characters and
// planets). The Add methods exist for the seed loader.
type CatalogService struct {
	characters repository.CharacterRepository
	planets    repository.PlanetRepository
	logger     *slog.Logger
}

func NewCatalogService(
	characters repository.CharacterRepository,
	planets repository.PlanetRepository,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		characters: characters,
		planets:    planets,
		logger:     logger,
	}
}

func (s *CatalogService) ListCharacters(ctx context.Context) ([]model.Character, error) {
	chars, err := s.characters.ListCharacters(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/catalog: listing characters: %w", err)
	}
	return chars, nil
}

func (s *CatalogService) GetCharacter(ctx context.Context, id string) (*model.Character, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "character ID is required")
	}
	return s.characters.GetCharacter(ctx, id)
}

func (s *CatalogService) AddCharacter(ctx context.Context, c *model.Character) error {
	if err := s.characters.CreateCharacter(ctx, c); err != nil {
		return fmt.Errorf("service/catalog: adding character %q: %w", c.Name, err)
	}
	s.logger.Debug("character added", slog.String("id", c.ID), slog.String("name", c.Name))
	return nil
}

func (s *CatalogService) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	planets, err := s.planets.ListPlanets(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/catalog: listing planets: %w", err)
	}
	return planets, nil
}

func (s *CatalogService) GetPlanet(ctx context.Context, id string) (*model.Planet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "planet ID is required")
	}
	return s.planets.GetPlanet(ctx, id)
}

func (s *CatalogService) AddPlanet(ctx context.Context, p *model.Planet) error {
	if err := s.planets.CreatePlanet(ctx, p); err != nil {
		return fmt.Errorf("service/catalog: adding planet %q: %w", p.Name, err)
	}
	s.logger.Debug("planet added", slog.String("id", p.ID), slog.String("name", p.Name))
	return nil
}

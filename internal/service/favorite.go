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

// MaxFavoriteNameLength matches the favorites.name column width.
const MaxFavoriteNameLength = 250

// FavoriteService manages the caller's own favorites. Every method takes the
// authenticated user ID and never reads or writes another user's rows.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	logger    *slog.Logger
}

func NewFavoriteService(favorites repository.FavoriteRepository, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		favorites: favorites,
		logger:    logger,
	}
}

func (s *FavoriteService) ListForUser(ctx context.Context, userID string) ([]model.Favorite, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}

	favs, err := s.favorites.ListFavoritesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/favorite: listing favorites for %s: %w", userID, err)
	}
	return favs, nil
}

func (s *FavoriteService) Add(ctx context.Context, userID, name string) (*model.Favorite, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("valid authentication required")
	}
	name, err := cleanFavoriteName(name)
	if err != nil {
		return nil, err
	}

	fav := &model.Favorite{UserID: userID, Name: name}
	if err := s.favorites.CreateFavorite(ctx, fav); err != nil {
		return nil, fmt.Errorf("service/favorite: adding favorite: %w", err)
	}

	s.logger.Info("favorite added",
		slog.String("userID", userID),
		slog.String("favoriteID", fav.ID),
	)
	return fav, nil
}

// Remove deletes every favorite the user has under name. Removing a name the
// user does not have is not an error; it reports zero.
func (s *FavoriteService) Remove(ctx context.Context, userID, name string) (int64, error) {
	if userID == "" {
		return 0, apperror.Unauthorized("valid authentication required")
	}
	name, err := cleanFavoriteName(name)
	if err != nil {
		return 0, err
	}

	n, err := s.favorites.DeleteFavoritesByName(ctx, userID, name)
	if err != nil {
		return 0, fmt.Errorf("service/favorite: removing favorite: %w", err)
	}

	s.logger.Info("favorites removed",
		slog.String("userID", userID),
		slog.Int64("count", n),
	)
	return n, nil
}

func cleanFavoriteName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.ValidationFailed("name", "name is required")
	}
	if len(name) > MaxFavoriteNameLength {
		return "", apperror.ValidationFailed("name",
			fmt.Sprintf("name must be %d characters or less", MaxFavoriteNameLength))
	}
	return name, nil
}

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/model"
)

// FavoriteService is the part of service.FavoriteService the handlers use.
type FavoriteService interface {
	ListForUser(ctx context.Context, userID string) ([]model.Favorite, error)
	Add(ctx context.Context, userID, name string) (*model.Favorite, error)
	Remove(ctx context.Context, userID, name string) (int64, error)
}

// FavoriteHandler serves the caller's favorites. Every route it handles is
// mounted behind auth.RequireAuth.
type FavoriteHandler struct {
	favorites FavoriteService
	logger    *slog.Logger
}

func NewFavoriteHandler(favorites FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

type favoriteRequest struct {
	Name string `json:"name" validate:"required,max=250"`
}

// callerID returns the authenticated user, or writes 401 and returns false.
// RequireAuth normally guarantees the ID is there.
func (h *FavoriteHandler) callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperror.Unauthorized("valid authentication required"))
		return "", false
	}
	return userID, true
}

// HandleList handles GET /favorites and GET /updated_favorites.
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	favs, err := h.favorites.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SerializeFavorites(favs))
}

// HandleAdd handles POST /favorites with {"name": "..."}.
func (h *FavoriteHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if _, err := h.favorites.Add(r.Context(), userID, req.Name); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Msg: "favorite added successfully"})
}

// HandleRemove handles DELETE /favorites with {"name": "..."}. It removes
// every favorite the caller has under that name. Removing a name that is not
// there still answers 200, so repeating the request is harmless.
func (h *FavoriteHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	n, err := h.favorites.Remove(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Debug("favorite remove", slog.String("userID", userID), slog.Int64("removed", n))
	writeJSON(w, http.StatusOK, MessageResponse{Msg: "favorite removed successfully"})
}

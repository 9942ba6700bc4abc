package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/starwars-api/internal/model"
)

// CatalogService is the read side of service.CatalogService.
type CatalogService interface {
	ListCharacters(ctx context.Context) ([]model.Character, error)
	GetCharacter(ctx context.Context, id string) (*model.Character, error)
	ListPlanets(ctx context.Context) ([]model.Planet, error)
	GetPlanet(ctx context.Context, id string) (*model.Planet, error)
}

// CatalogHandler serves the public, read-only character and planet routes.
type CatalogHandler struct {
	catalog CatalogService
	logger  *slog.Logger
}

func NewCatalogHandler(catalog CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) HandleListCharacters(w http.ResponseWriter, r *http.Request) {
	chars, err := h.catalog.ListCharacters(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SerializeCharacters(chars))
}

func (h *CatalogHandler) HandleGetCharacter(w http.ResponseWriter, r *http.Request) {
	c, err := h.catalog.GetCharacter(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SerializeCharacter(*c))
}

func (h *CatalogHandler) HandleListPlanets(w http.ResponseWriter, r *http.Request) {
	planets, err := h.catalog.ListPlanets(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SerializePlanets(planets))
}

func (h *CatalogHandler) HandleGetPlanet(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetPlanet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SerializePlanet(*p))
}

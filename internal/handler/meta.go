package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Route is one entry of the GET / sitemap.
type Route struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// SitemapHandler lists every route registered on a chi router.
type SitemapHandler struct {
	routes chi.Routes
	logger *slog.Logger
}

// NewSitemapHandler takes the router itself; routes are walked on each
// request, so handlers registered after construction still show up.
func NewSitemapHandler(routes chi.Routes, logger *slog.Logger) *SitemapHandler {
	return &SitemapHandler{routes: routes, logger: logger}
}

func (h *SitemapHandler) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	out := make([]Route, 0)
	err := chi.Walk(h.routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		// chi reports "/user/" for routes declared as "/user" inside a Route block.
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		out = append(out, Route{Method: method, Path: route})
		return nil
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	writeJSON(w, http.StatusOK, out)
}

// Pinger is satisfied by *sqlstore.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HandleHealth answers 200 {"status":"ok"} when the store responds within
// two seconds, 503 otherwise.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

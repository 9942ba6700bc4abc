// Package server wires the store, services and handlers into a chi router
// and runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/config"
	"github.com/sakif/starwars-api/internal/handler"
	"github.com/sakif/starwars-api/internal/middleware"
	"github.com/sakif/starwars-api/internal/repository/sqlstore"
	"github.com/sakif/starwars-api/internal/service"
)

// shutdownTimeout is how long in-flight requests get to finish after
// SIGINT/SIGTERM.
const shutdownTimeout = 30 * time.Second

// Server holds the router and the resources it owns.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqlstore.DB // owned by the server, closed by Start or Close
}

// New opens the store (running migrations) and builds the router.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqlstore.Open(ctx, cfg.Database.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	// ===== MIDDLEWARE =====
	// Order matters: RequestID and RealIP run before the logger reads them,
	// and Recoverer sits inside the logger so a panic is logged as a 500.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// ===== SERVICES =====
	tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret, s.config.Auth.TokenTTL)
	if err != nil {
		return err
	}
	passwords := auth.NewPasswordService(s.config.Auth.BcryptCost)

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	userService := service.NewUserService(s.db, passwords, s.logger)
	favoriteService := service.NewFavoriteService(s.db, s.logger)
	catalogService := service.NewCatalogService(s.db, s.db, s.logger)

	// ===== HANDLERS =====
	userHandler := handler.NewUserHandler(userService, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService, s.logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, s.logger)
	healthHandler := handler.NewHealthHandler(s.db, s.logger)
	sitemapHandler := handler.NewSitemapHandler(s.router, s.logger)

	// ===== PUBLIC ROUTES =====
	s.router.Get("/", sitemapHandler.HandleSitemap)
	s.router.Get("/healthz", healthHandler.HandleHealth)

	s.router.Get("/user", userHandler.HandleList)
	s.router.Post("/user", userHandler.HandleCreate)
	s.router.Get("/user/{id}", userHandler.HandleGet)
	s.router.Post("/token", authHandler.HandleToken)

	s.router.Get("/characters", catalogHandler.HandleListCharacters)
	s.router.Get("/characters/{id}", catalogHandler.HandleGetCharacter)
	s.router.Get("/planets", catalogHandler.HandleListPlanets)
	s.router.Get("/planets/{id}", catalogHandler.HandleGetPlanet)

	// ===== PROTECTED ROUTES =====
	// RequireAuth answers 401 before any handler runs, so anonymous callers
	// never reach the store.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/favorites", favoriteHandler.HandleList)
		r.Post("/favorites", favoriteHandler.HandleAdd)
		r.Delete("/favorites", favoriteHandler.HandleRemove)
		r.Get("/updated_favorites", favoriteHandler.HandleList)
	})

	// Unknown routes and wrong methods get the same JSON error shape as
	// everything else.
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeRouteError(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeRouteError(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path)
	})

	return nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// DB exposes the store so tools running in-process (tests, the seed loader)
// share the server's connection.
func (s *Server) DB() *sqlstore.DB {
	return s.db
}

// Close releases the database. Start calls it on the way out.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start listens on the configured port and blocks until the server fails or
// receives SIGINT/SIGTERM, in which case it drains in-flight requests for up
// to 30 seconds.
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Server.Port)),
			slog.String("dialect", string(s.db.Dialect())),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

func writeRouteError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(handler.ErrorResponse{Error: kind, Message: message})
}

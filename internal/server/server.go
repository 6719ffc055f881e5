// Package server exposes match-3 sessions over a JSON HTTP API. Each game
// lives in memory under a UUID; final scores go to the score store.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/match3/internal/config"
	"github.com/vovakirdan/match3/internal/storage"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// ConfigPath is an optional match-3 YAML file. Empty uses the search path.
	ConfigPath string

	// Difficulty is applied to every game that does not pick its own.
	// Empty keeps the values from the file.
	Difficulty config.DifficultyPreset

	// MaxGames caps the number of live games. Zero means no limit.
	MaxGames int
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		MaxGames: 1024,
	}
}

// Server is the HTTP front end.
type Server struct {
	config  Config
	gameCfg config.Match3Config
	store   *storage.Store
	logger  *log.Logger
	games   *gameTable
	router  chi.Router
	http    *http.Server
}

// New builds the router. store may be nil, in which case scores are not
// persisted and the scores endpoint answers 503.
func New(cfg Config, store *storage.Store, logger *log.Logger) (*Server, error) {
	gameCfg, err := config.LoadMatch3(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if cfg.Difficulty != "" {
		config.ApplyMatch3Preset(&gameCfg, cfg.Difficulty)
	}

	s := &Server{
		config:  cfg,
		gameCfg: gameCfg,
		store:   store,
		logger:  logger,
		games:   newGameTable(cfg.MaxGames),
	}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(AccessLog(s.logger))
	r.Use(chimid.Recoverer)
	r.Use(Compression)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/games", s.handleCreate)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/swap", s.handleSwap)
			r.Post("/tick", s.handleTick)
			r.Post("/shuffle", s.handleShuffle)
			r.Post("/hint", s.handleHint)
			r.Post("/restart", s.handleRestart)
		})
		r.Get("/scores/{game}", s.handleScores)
	})
	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Info("starting HTTP server", "address", s.config.Address)
		}
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	if s.logger != nil {
		s.logger.Info("shutting down...")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}

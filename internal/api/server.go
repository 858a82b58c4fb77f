// Package api exposes the simulation runner over HTTP. Games and batches
// start asynchronously; results are read back from the SQLite store, so a
// client polls GET /api/v1/games/{id} until the winner is set.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"wolfarena/internal/arena"
	"wolfarena/internal/config"
	"wolfarena/internal/middleware"
	"wolfarena/internal/sink"
)

// Server handles HTTP requests.
type Server struct {
	cfg    *config.Config
	runner *arena.Runner
	db     *sink.DB
	logger *log.Logger

	// Background games outlive their requests. Close cancels them and
	// waits for the goroutines to unwind.
	bg     context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer creates a new API server. The store must already be migrated.
func NewServer(cfg *config.Config, runner *arena.Runner, db *sink.DB) *Server {
	bg, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:    cfg,
		runner: runner,
		db:     db,
		logger: log.New(os.Stdout, "[api] ", log.LstdFlags),
		bg:     bg,
		cancel: cancel,
	}
}

// Close aborts in-flight background games and waits for them to finish
// writing. Safe to call more than once.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

// Routes sets up the HTTP routes with proper middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	// Chi's built-in middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(s.cfg.Server.RequestTimeout))

	// Our custom middleware
	r.Use(middleware.RequestSizeLimiter(s.cfg.Server.MaxRequestSize))
	r.Use(middleware.SecurityHeaders())

	// Rate limiting
	rateLimiter := middleware.NewRateLimiter(s.cfg.Server.RateLimit, s.cfg.Server.RateLimitBurst)
	r.Use(rateLimiter.Middleware())

	// Health check endpoints (no auth required)
	r.Get("/health/live", s.handleLiveness)
	r.Get("/health/ready", s.handleReadiness)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/games", s.handleStartGame)
		r.Get("/games", s.handleListGames)
		r.Get("/games/{id}", s.handleGetGame)
		r.Get("/games/{id}/events", s.handleGetEvents)
		r.Post("/batches", s.handleStartBatch)
	})

	return r
}

// writeJSON writes a JSON response with proper headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("failed to encode response: %v", err)
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, status int, errType, message string) {
	s.writeJSON(w, status, APIError{Type: errType, Message: message})
}

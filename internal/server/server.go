// Package server exposes the deck and session core over HTTP for external
// consumers (a web frontend, scripts). The API mirrors the navigation
// boundary: topics, cards, generated quizzes, and the session log.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/example/kanjideck/internal/config"
	"github.com/example/kanjideck/internal/database"
	"github.com/example/kanjideck/internal/deck"
)

// Server wires the HTTP handlers to the core components
type Server struct {
	decks    *deck.Repository
	sessions *database.SessionRepository
	cfg      config.Config
	log      *zap.Logger
}

// New creates a server over the deck repository and session store
func New(decks *deck.Repository, sessions *database.SessionRepository, cfg config.Config, log *zap.Logger) *Server {
	return &Server{decks: decks, sessions: sessions, cfg: cfg, log: log}
}

// Router builds the chi router with middleware and all routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/topics", s.handleListTopics)
		r.Get("/topics/{topicID}/cards", s.handleListCards)
		r.Get("/topics/{topicID}/quiz", s.handleGenerateQuiz)
		r.Get("/sessions", s.handleRecentSessions)
		r.Post("/sessions", s.handleCreateSession)
	})

	return r
}

package server

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/kanjideck/internal/config"
	"github.com/example/kanjideck/internal/quiz"
	"github.com/example/kanjideck/pkg/models"
)

const maxHistoryLimit = 100

func (s *Server) handleListTopics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.decks.ListTopics())
}

// handleListCards returns the topic's cards. An unknown topic is an empty
// list with 200, not a 404: the client treats an empty deck as a
// displayable state.
func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")
	writeJSON(w, http.StatusOK, s.decks.LoadCards(topicID))
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "topicID")
	cards := s.decks.LoadCards(topicID)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	questions, err := quiz.Generate(cards, rng)
	if errors.Is(err, quiz.ErrInsufficientData) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate quiz")
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Server) handleRecentSessions(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), s.cfg.HistoryLimit)
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	sessions, err := s.sessions.Recent(r.Context(), config.GuestUserID, limit)
	if err != nil {
		s.log.Error("failed to list recent sessions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// handleCreateSession appends a finished session to the log. Unlike the
// in-process recorder this surface is synchronous: the client learns whether
// the write landed.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var session models.StudySession
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		writeError(w, http.StatusBadRequest, "invalid session payload")
		return
	}
	if session.TopicID == "" {
		writeError(w, http.StatusBadRequest, "topic_id is required")
		return
	}
	if session.Mode == "" {
		session.Mode = models.ModeFlashcards
	}
	// The store owns identity and timestamps on this surface too.
	session.ID = ""
	session.UserID = config.GuestUserID

	if err := s.sessions.Create(r.Context(), &session); err != nil {
		s.log.Error("failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store session")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

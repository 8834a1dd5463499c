package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/kanjideck/internal/config"
	"github.com/example/kanjideck/internal/database"
	"github.com/example/kanjideck/internal/deck"
	"github.com/example/kanjideck/pkg/models"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	decksDir := t.TempDir()
	big := "Kanji,Reading,Meaning,Example1\n" +
		"読む,よむ,to read,本を読む。\n" +
		"書く,かく,to write,手紙を書く。\n" +
		"話す,はなす,to speak,日本語を話す。\n" +
		"聞く,きく,to listen,音楽を聞く。\n"
	small := "Kanji,Reading,Meaning,Example1\n水,みず,water,水を飲む。\n"
	require.NoError(t, os.WriteFile(filepath.Join(decksDir, "verbs.csv"), []byte(big), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(decksDir, "tiny.csv"), []byte(small), 0644))

	decks := deck.NewRepository(decksDir, zap.NewNop())
	require.NoError(t, decks.Load())

	db, err := database.Connect("", t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{HistoryLimit: 10}
	return New(decks, database.NewSessionRepository(db), cfg, zap.NewNop()).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body []byte, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestListTopics(t *testing.T) {
	h := newTestServer(t)

	var topics []models.Topic
	rec := doJSON(t, h, http.MethodGet, "/api/topics", nil, &topics)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, topics, 2)
	assert.Equal(t, "tiny", topics[0].ID)
	assert.Equal(t, "verbs", topics[1].ID)
	assert.Equal(t, 4, topics[1].CardCount)
}

func TestListCardsUnknownTopicIsEmptyList(t *testing.T) {
	h := newTestServer(t)

	var cards []models.Flashcard
	rec := doJSON(t, h, http.MethodGet, "/api/topics/absent/cards", nil, &cards)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, cards)
}

func TestGenerateQuiz(t *testing.T) {
	h := newTestServer(t)

	var questions []models.Question
	rec := doJSON(t, h, http.MethodGet, "/api/topics/verbs/quiz", nil, &questions)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, questions, 4)
	for _, q := range questions {
		assert.Len(t, q.Options, 4)
	}
}

func TestGenerateQuizInsufficientData(t *testing.T) {
	h := newTestServer(t)

	var body map[string]string
	rec := doJSON(t, h, http.MethodGet, "/api/topics/tiny/quiz", nil, &body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, body["error"], "4 cards")
}

func TestCreateAndListSessions(t *testing.T) {
	h := newTestServer(t)

	payload, err := json.Marshal(models.StudySession{
		TopicID:         "verbs",
		Mode:            models.ModeQuiz,
		TotalCards:      4,
		CorrectCount:    3,
		DurationSeconds: 61.2,
	})
	require.NoError(t, err)

	var created models.StudySession
	rec := doJSON(t, h, http.MethodPost, "/api/sessions", payload, &created)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, config.GuestUserID, created.UserID)

	var sessions []models.StudySession
	rec = doJSON(t, h, http.MethodGet, "/api/sessions", nil, &sessions)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sessions, 1)
	assert.Equal(t, created.ID, sessions[0].ID)
}

func TestCreateSessionRequiresTopic(t *testing.T) {
	h := newTestServer(t)

	var body map[string]string
	rec := doJSON(t, h, http.MethodPost, "/api/sessions", []byte(`{"total_cards":4}`), &body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "topic_id is required", body["error"])
}

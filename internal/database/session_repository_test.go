package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/kanjideck/pkg/models"
)

func openTestDB(t *testing.T) *SessionRepository {
	t.Helper()
	db, err := Connect("", t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSessionRepository(db)
}

func newTestSession(topicID string, correct int) models.StudySession {
	return models.StudySession{
		UserID:          "guest",
		TopicID:         topicID,
		Mode:            models.ModeFlashcards,
		TotalCards:      10,
		CorrectCount:    correct,
		DurationSeconds: 42.5,
	}
}

func TestCreateAssignsIDAndDate(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	session := newTestSession("verbs", 8)
	require.NoError(t, repo.Create(ctx, &session))

	assert.NotEmpty(t, session.ID)
	assert.False(t, session.Date.IsZero())
}

func TestRecentNewestFirstAndBounded(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	for i, topic := range []string{"first", "second", "third"} {
		session := newTestSession(topic, i)
		require.NoError(t, repo.Create(ctx, &session))
		time.Sleep(5 * time.Millisecond)
	}

	recent, err := repo.Recent(ctx, "guest", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].TopicID)
	assert.Equal(t, "second", recent[1].TopicID)
	assert.True(t, recent[0].Date.After(recent[1].Date) || recent[0].Date.Equal(recent[1].Date))
}

func TestRecentFiltersByUser(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	session := newTestSession("verbs", 5)
	require.NoError(t, repo.Create(ctx, &session))

	recent, err := repo.Recent(ctx, "someone-else", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestResultsRoundTrip(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	session := newTestSession("verbs", 1)
	session.Results = []models.CardResult{
		{CardID: "verbs-0", Rating: 5},
		{CardID: "verbs-1", Rating: 1},
	}
	require.NoError(t, repo.Create(ctx, &session))

	recent, err := repo.Recent(ctx, "guest", 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, session.Results, recent[0].Results)
}

func TestResultsOptional(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	session := newTestSession("verbs", 1)
	require.NoError(t, repo.Create(ctx, &session))

	recent, err := repo.Recent(ctx, "guest", 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Nil(t, recent[0].Results)
}

func TestPruneOlderThan(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		session := newTestSession("verbs", i)
		require.NoError(t, repo.Create(ctx, &session))
	}

	// A generous window keeps everything.
	removed, err := repo.PruneOlderThan(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed)

	time.Sleep(5 * time.Millisecond)

	// A zero window ages everything out.
	removed, err = repo.PruneOlderThan(ctx, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	recent, err := repo.Recent(ctx, "guest", 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

package database

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/kanjideck/pkg/models"
)

const recordTimeout = 10 * time.Second

// Recorder persists finished sessions without blocking the caller. The
// write is fire-and-forget: a failure is logged and swallowed, and the
// caller keeps its locally known results either way.
type Recorder struct {
	sessions *SessionRepository
	log      *zap.Logger
	wg       sync.WaitGroup
}

// NewRecorder creates a recorder over the session repository
func NewRecorder(sessions *SessionRepository, log *zap.Logger) *Recorder {
	return &Recorder{sessions: sessions, log: log}
}

// RecordAsync launches the session write and returns immediately. The write
// is attempted once and never retried.
func (r *Recorder) RecordAsync(session models.StudySession) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := r.sessions.Create(ctx, &session); err != nil {
			r.log.Warn("failed to record study session",
				zap.String("topic_id", session.TopicID),
				zap.String("mode", session.Mode),
				zap.Error(err))
			return
		}
		r.log.Info("recorded study session",
			zap.String("id", session.ID),
			zap.String("topic_id", session.TopicID),
			zap.String("mode", session.Mode),
			zap.Int("correct", session.CorrectCount),
			zap.Int("total", session.TotalCards))
	}()
}

// Wait blocks until in-flight writes settle, so shutdown doesn't drop the
// last session
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// Package scheduler runs background maintenance for the session log.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/kanjideck/internal/database"
)

const pruneTimeout = 30 * time.Second

// Scheduler prunes session rows that have aged out of the history window
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  *database.SessionRepository
	retention time.Duration
	log       *zap.Logger
}

// New creates a new scheduler instance
func New(sessions *database.SessionRepository, retention time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		retention: retention,
		log:       log,
	}
}

// Start begins running all scheduled tasks. The retention prune runs once
// at startup and then nightly.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("03:30").Do(s.pruneSessions)
	s.scheduler.StartAsync()
	s.pruneSessions()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) pruneSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	removed, err := s.sessions.PruneOlderThan(ctx, s.retention)
	if err != nil {
		s.log.Warn("session retention prune failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.log.Info("pruned old study sessions",
			zap.Int64("removed", removed),
			zap.Duration("retention", s.retention))
	}
}

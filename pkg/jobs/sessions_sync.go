package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/mission-control/core/pkg/jobsource"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models"
	"github.com/mission-control/core/pkg/store"
)

// SessionsSyncJob snapshots the openclaw session count for analytics
type SessionsSyncJob struct {
	counter jobsource.SessionCounter
	store   store.Store
	logger  *logger.Logger
	now     func() time.Time
}

func NewSessionsSyncJob(counter jobsource.SessionCounter, st store.Store, log *logger.Logger) *SessionsSyncJob {
	return &SessionsSyncJob{
		counter: counter,
		store:   st,
		logger:  log,
		now:     time.Now,
	}
}

func (j *SessionsSyncJob) Name() string {
	return "sessions_sync"
}

func (j *SessionsSyncJob) Schedule() string {
	return "*/5 * * * *"
}

func (j *SessionsSyncJob) Execute(ctx context.Context) error {
	log := logger.WithContext(ctx, j.logger)

	count, err := j.counter.CountSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}

	snap := models.SessionSnapshot{Count: count, SyncedAt: j.now().UTC()}
	if err := j.store.SaveSessionSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}

	log.Info().
		Str("action", "sessions_synced").
		Int("session_count", count).
		Msg("Session count synced")
	return nil
}

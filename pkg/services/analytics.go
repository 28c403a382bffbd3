package services

import (
	"context"
	"errors"
	"time"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models"
	"github.com/mission-control/core/pkg/store"
)

// AnalyticsStats summarizes task throughput and agent activity
type AnalyticsStats struct {
	TasksCompleted   int        `json:"tasksCompleted"`
	PendingTasks     int        `json:"pendingTasks"`
	TotalSessions    int        `json:"totalSessions"`
	IsActive         bool       `json:"isActive"`
	SessionsSyncedAt *time.Time `json:"sessionsSyncedAt"`
}

type AnalyticsService struct {
	store  store.Store
	logger *logger.Logger
}

func NewAnalyticsService(st store.Store, log *logger.Logger) *AnalyticsService {
	return &AnalyticsService{
		store:  st,
		logger: log,
	}
}

// Stats reads task counts and the latest session snapshot. Before the first
// sessions sync the session count is zero and SessionsSyncedAt is nil.
func (s *AnalyticsService) Stats(ctx context.Context) (AnalyticsStats, error) {
	counts, err := s.store.CountTasksByStatus(ctx)
	if err != nil {
		return AnalyticsStats{}, err
	}

	stats := AnalyticsStats{
		TasksCompleted: counts[models.TaskStatusDone],
		PendingTasks:   counts[models.TaskStatusPending],
	}
	stats.IsActive = stats.PendingTasks > 0

	snap, err := s.store.LatestSessionSnapshot(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return AnalyticsStats{}, err
	default:
		stats.TotalSessions = snap.Count
		syncedAt := snap.SyncedAt
		stats.SessionsSyncedAt = &syncedAt
	}

	return stats, nil
}

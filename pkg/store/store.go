// Package store persists dashboard state (submitted tasks, ideas, the build
// queue, notifications and session snapshots) in sqlite or postgres.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/mission-control/core/internal/config"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models"
)

// ErrNotFound is returned when a referenced record does not exist
var ErrNotFound = errors.New("record not found")

// Store is the persistence boundary used by services
type Store interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	AddTask(ctx context.Context, task models.Task) error
	CountTasksByStatus(ctx context.Context) (map[string]int, error)

	ListIdeas(ctx context.Context) ([]models.Idea, error)
	SeedIdeas(ctx context.Context, ideas []models.Idea) error
	AddIdea(ctx context.Context, idea models.Idea) error
	UpdateIdeaStatus(ctx context.Context, id, status string) (models.Idea, error)

	AppendBuildRequest(ctx context.Context, req models.BuildRequest) error
	ListBuildRequests(ctx context.Context) ([]models.BuildRequest, error)

	AppendNotification(ctx context.Context, n models.Notification) error
	ListNotifications(ctx context.Context, limit int) ([]models.Notification, error)

	SaveSessionSnapshot(ctx context.Context, snap models.SessionSnapshot) error
	LatestSessionSnapshot(ctx context.Context) (models.SessionSnapshot, error)

	Close() error
}

// Open creates the store selected by cfg.Storage.Driver and applies the schema
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (Store, error) {
	switch cfg.Storage.Driver {
	case "", "sqlite":
		return OpenSQLite(ctx, cfg.Storage.SQLitePath, log)
	case "postgres":
		return OpenPostgres(ctx, cfg.DatabaseURL(), nil, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Storage.Driver)
	}
}

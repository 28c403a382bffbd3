package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mission-control/core/pkg/catalog"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models"
	"github.com/mission-control/core/pkg/store"
	"github.com/mission-control/core/pkg/utils"
)

const (
	progressTitleLimit = 60
	progressAgent      = "Leo"
)

type TaskService struct {
	store   store.Store
	catalog *catalog.Catalog
	logger  *logger.Logger
	now     func() time.Time
}

func NewTaskService(st store.Store, cat *catalog.Catalog, log *logger.Logger) *TaskService {
	return &TaskService{
		store:   st,
		catalog: cat,
		logger:  log,
		now:     time.Now,
	}
}

// SubmitTask stores a new pending task and records a notification line for the agent
func (s *TaskService) SubmitTask(ctx context.Context, text, priority string) (models.Task, error) {
	text = utils.SanitizeText(text)
	if text == "" {
		return models.Task{}, ErrTaskRequired
	}
	priority = utils.SanitizeText(priority)

	now := s.now().UTC()
	task := models.Task{
		ID:        uuid.New().String(),
		Task:      text,
		Priority:  priority,
		Status:    models.TaskStatusPending,
		CreatedAt: now,
	}

	if err := s.store.AddTask(ctx, task); err != nil {
		return models.Task{}, fmt.Errorf("failed to save task: %w", err)
	}

	notification := models.Notification{
		Message:   fmt.Sprintf("[%s] NEW TASK (%s): %s", now.Format(time.RFC3339), priority, text),
		CreatedAt: now,
	}
	if err := s.store.AppendNotification(ctx, notification); err != nil {
		// Task is already stored, so this is not fatal
		s.logger.Error().
			Err(err).
			Str("action", "notification_failed").
			Str("task_id", task.ID).
			Msg("Failed to record task notification")
	}

	s.logger.Info().
		Str("action", "task_submitted").
		Str("task_id", task.ID).
		Str("priority", priority).
		Msg("New task submitted")

	return task, nil
}

// ListTasks returns submitted tasks in submission order
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.store.ListTasks(ctx)
}

// Board returns submitted tasks as board cards followed by the catalog's system tasks
func (s *TaskService) Board(ctx context.Context) ([]models.BoardTask, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	board := make([]models.BoardTask, 0, len(tasks)+len(s.catalog.BoardTasks))
	for _, t := range tasks {
		status := "backlog"
		if t.Status == models.TaskStatusDone {
			status = "done"
		}
		board = append(board, models.BoardTask{
			ID:         t.ID,
			Title:      t.Task,
			Status:     status,
			Priority:   t.Priority,
			CreatedAt:  t.CreatedAt,
			IsUserTask: true,
		})
	}

	return append(board, s.catalog.BoardTasksAt(s.now().UTC())...), nil
}

// Progress returns submitted tasks as progress rows followed by completed history
func (s *TaskService) Progress(ctx context.Context) ([]models.TaskProgress, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	progress := make([]models.TaskProgress, 0, len(tasks)+len(s.catalog.History))
	for _, t := range tasks {
		status := models.TaskStatusPending
		if t.Status == models.TaskStatusDone {
			status = models.TaskStatusDone
		}
		progress = append(progress, models.TaskProgress{
			ID:     t.ID,
			Title:  utils.Truncate(t.Task, progressTitleLimit),
			Status: status,
			Date:   t.CreatedAt.UTC().Format("2006-01-02"),
			Agent:  progressAgent,
		})
	}

	return append(progress, s.catalog.HistoryProgress()...), nil
}

// Notifications returns the newest notification lines first
func (s *TaskService) Notifications(ctx context.Context, limit int) ([]models.Notification, error) {
	return s.store.ListNotifications(ctx, limit)
}

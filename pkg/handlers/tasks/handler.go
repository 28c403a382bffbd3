package tasks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models/api"
	"github.com/mission-control/core/pkg/services"
)

const defaultNotificationLimit = 20

// Handler handles task submission and the kanban board
type Handler struct {
	service *services.TaskService
	logger  *logger.Logger
}

// NewHandler creates a new tasks handler
func NewHandler(service *services.TaskService, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

type submitRequest struct {
	Task     string `json:"task"`
	Priority string `json:"priority"`
}

// Task handles /api/task: GET lists submitted tasks, POST submits one
func (h *Handler) Task(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.submit(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.service.SubmitTask(r.Context(), req.Task, req.Priority)
	if errors.Is(err, services.ErrTaskRequired) {
		http.Error(w, "Task is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "task_submit_failed").
			Msg("Failed to save task")
		http.Error(w, "Failed to save task", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, api.TaskSubmitResponse{Success: true, Task: task}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	tasks, err := h.service.ListTasks(r.Context())
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "query_tasks_failed").
			Msg("Failed to list tasks")
		http.Error(w, "Failed to list tasks", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, api.SubmittedTasksResponse{Tasks: tasks}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Board handles GET /api/tasks
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	board, err := h.service.Board(r.Context())
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "query_board_failed").
			Msg("Failed to build task board")
		http.Error(w, "Failed to load tasks", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, api.BoardResponse{Tasks: board}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Notifications handles GET /api/notifications?limit=N
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	limit := defaultNotificationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			http.Error(w, "limit must be between 1 and 500", http.StatusBadRequest)
			return
		}
		limit = n
	}

	notes, err := h.service.Notifications(r.Context(), limit)
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "query_notifications_failed").
			Msg("Failed to list notifications")
		http.Error(w, "Failed to load notifications", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, api.NotificationsResponse{Notifications: notes}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

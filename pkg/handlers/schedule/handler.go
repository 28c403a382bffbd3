package schedule

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models/api"
	"github.com/mission-control/core/pkg/schedule"
)

// Handler serves the weekly calendar, next-up and always-running views
type Handler struct {
	service *schedule.Service
	logger  *logger.Logger
}

// NewHandler creates a new schedule handler
func NewHandler(service *schedule.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Events handles GET /api/schedule. An optional ?day=0..6 keeps one weekday.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	day := -1
	if raw := r.URL.Query().Get("day"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d < 0 || d > 6 {
			http.Error(w, "day must be between 0 and 6", http.StatusBadRequest)
			return
		}
		day = d
	}

	events := h.service.WeeklyCalendar(r.Context())
	if day >= 0 {
		events = schedule.EntriesForDay(events, day)
	}

	log.Info().
		Str("action", "schedule_response").
		Int("count", len(events)).
		Int("day", day).
		Msg("Returning weekly calendar")

	if err := api.WriteJSON(w, http.StatusOK, api.ScheduleResponse{Events: events}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Upcoming handles GET /api/schedule/upcoming
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)
	start := time.Now()

	tasks := h.service.NextUp(r.Context())

	log.Info().
		Str("action", "upcoming_response").
		Int("count", len(tasks)).
		Dur("duration", time.Since(start)).
		Msg("Returning next-up jobs")

	if err := api.WriteJSON(w, http.StatusOK, api.UpcomingResponse{Tasks: tasks}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// AlwaysRunning handles GET /api/schedule/always-running
func (h *Handler) AlwaysRunning(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	tasks := h.service.AlwaysRunning(r.Context())

	if err := api.WriteJSON(w, http.StatusOK, api.ScheduledTasksResponse{Tasks: tasks}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Scheduled handles GET /api/schedule/tasks, every enabled job with its timing
func (h *Handler) Scheduled(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	tasks := h.service.ScheduledTasks(r.Context())

	if err := api.WriteJSON(w, http.StatusOK, api.ScheduledTasksResponse{Tasks: tasks}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

package analytics

import (
	"net/http"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models/api"
	"github.com/mission-control/core/pkg/services"
)

// Handler serves activity stats and task progress
type Handler struct {
	analytics *services.AnalyticsService
	tasks     *services.TaskService
	logger    *logger.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(analytics *services.AnalyticsService, tasks *services.TaskService, log *logger.Logger) *Handler {
	return &Handler{
		analytics: analytics,
		tasks:     tasks,
		logger:    log,
	}
}

// Stats handles GET /api/analytics
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	stats, err := h.analytics.Stats(r.Context())
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "analytics_failed").
			Msg("Failed to compute analytics")
		http.Error(w, "Failed to load analytics", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, stats); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Progress handles GET /api/analytics/progress
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	progress, err := h.tasks.Progress(r.Context())
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "progress_failed").
			Msg("Failed to load task progress")
		http.Error(w, "Failed to load progress", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, api.ProgressResponse{Tasks: progress}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

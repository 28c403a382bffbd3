package projects

import (
	"net/http"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models/api"
	"github.com/mission-control/core/pkg/services"
)

// Handler handles the projects, systems and overview endpoints
type Handler struct {
	projects *services.ProjectService
	tasks    *services.TaskService
	logger   *logger.Logger
}

// NewHandler creates a new projects handler
func NewHandler(projects *services.ProjectService, tasks *services.TaskService, log *logger.Logger) *Handler {
	return &Handler{
		projects: projects,
		tasks:    tasks,
		logger:   log,
	}
}

// Projects handles GET /api/projects
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	resp := api.ProjectsResponse{Projects: h.projects.Projects(r.Context())}
	if err := api.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Systems handles GET /api/systems
func (h *Handler) Systems(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	resp := api.SystemsResponse{Systems: h.projects.Systems(r.Context())}
	if err := api.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Dashboard handles GET /api/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	board, err := h.tasks.Board(r.Context())
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "dashboard_tasks_failed").
			Msg("Failed to load task board")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	resp := api.DashboardResponse{
		Projects: h.projects.Projects(r.Context()),
		Systems:  h.projects.Systems(r.Context()),
		Tasks:    board,
	}

	log.Info().
		Str("action", "dashboard_response").
		Int("projects", len(resp.Projects)).
		Int("systems", len(resp.Systems)).
		Int("tasks", len(resp.Tasks)).
		Msg("Returning dashboard")

	if err := api.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

package team

import (
	"net/http"

	"github.com/mission-control/core/pkg/catalog"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models/api"
)

// Handler serves the static agent roster
type Handler struct {
	catalog *catalog.Catalog
	logger  *logger.Logger
}

// NewHandler creates a new team handler
func NewHandler(cat *catalog.Catalog, log *logger.Logger) *Handler {
	return &Handler{
		catalog: cat,
		logger:  log,
	}
}

// List handles GET /api/team
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	agents := h.catalog.Team()

	resp := api.TeamResponse{Agents: agents}
	for _, a := range agents {
		if a.Status == "active" {
			resp.Active++
		} else {
			resp.Idle++
		}
	}

	if err := api.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.WithContext(r.Context(), h.logger).Error().Err(err).Msg("Failed to encode response")
	}
}

package ideas

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models/api"
	"github.com/mission-control/core/pkg/services"
	"github.com/mission-control/core/pkg/store"
)

// Handler handles the ideas board and build requests
type Handler struct {
	service *services.IdeaService
	logger  *logger.Logger
}

// NewHandler creates a new ideas handler
func NewHandler(service *services.IdeaService, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

type createRequest struct {
	Idea services.IdeaInput `json:"idea"`
}

type ideaRef struct {
	IdeaID string `json:"ideaId"`
}

// Ideas handles /api/ideas: GET lists the board, POST adds an idea on top
func (h *Handler) Ideas(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	ideas, err := h.service.ListIdeas(r.Context())
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "query_ideas_failed").
			Msg("Failed to list ideas")
		http.Error(w, "Failed to load ideas", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, api.IdeasResponse{Ideas: ideas}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	idea, err := h.service.AddIdea(r.Context(), req.Idea)
	if errors.Is(err, services.ErrIdeaTitleRequired) {
		http.Error(w, "Idea title is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "idea_create_failed").
			Msg("Failed to add idea")
		http.Error(w, "Failed to add idea", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, api.IdeaResponse{Success: true, Idea: &idea}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Build handles /api/ideas/build: POST queues an idea, GET lists the queue
func (h *Handler) Build(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.queue(w, r)
	case http.MethodPost:
		h.build(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	var req ideaRef
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	idea, err := h.service.BuildIdea(r.Context(), req.IdeaID)
	switch {
	case errors.Is(err, services.ErrIdeaIDRequired):
		http.Error(w, "ideaId is required", http.StatusBadRequest)
		return
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Idea not found", http.StatusNotFound)
		return
	case err != nil:
		log.Error().
			Err(err).
			Str("action", "idea_build_failed").
			Str("idea_id", req.IdeaID).
			Msg("Failed to queue build")
		http.Error(w, "Failed to queue build", http.StatusInternalServerError)
		return
	}

	resp := api.IdeaResponse{
		Success: true,
		Message: "Build request queued",
		Idea:    &idea,
	}
	if err := api.WriteJSON(w, http.StatusOK, resp); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) queue(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	queue, err := h.service.BuildQueue(r.Context())
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "query_build_queue_failed").
			Msg("Failed to list build queue")
		http.Error(w, "Failed to load build queue", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, api.BuildQueueResponse{Queue: queue}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Remove handles POST /api/ideas/remove
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	log := logger.WithContext(r.Context(), h.logger)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ideaRef
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.RemoveIdea(r.Context(), req.IdeaID)
	if errors.Is(err, services.ErrIdeaIDRequired) {
		http.Error(w, "ideaId is required", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().
			Err(err).
			Str("action", "idea_remove_failed").
			Str("idea_id", req.IdeaID).
			Msg("Failed to remove idea")
		http.Error(w, "Failed to remove idea", http.StatusInternalServerError)
		return
	}

	if err := api.WriteJSON(w, http.StatusOK, api.IdeaResponse{Success: true}); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mission-control/core/pkg/catalog"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models"
	"github.com/mission-control/core/pkg/store"
	"github.com/mission-control/core/pkg/utils"
)

// IdeaInput is the client-supplied part of a new idea
type IdeaInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	SourceURL   string `json:"sourceUrl"`
	Upvotes     int    `json:"upvotes"`
	Comments    int    `json:"comments"`
}

type IdeaService struct {
	store   store.Store
	catalog *catalog.Catalog
	logger  *logger.Logger
	now     func() time.Time
}

func NewIdeaService(st store.Store, cat *catalog.Catalog, log *logger.Logger) *IdeaService {
	return &IdeaService{
		store:   st,
		catalog: cat,
		logger:  log,
		now:     time.Now,
	}
}

// ListIdeas returns the ideas board, seeding the sample ideas into an empty store
func (s *IdeaService) ListIdeas(ctx context.Context) ([]models.Idea, error) {
	ideas, err := s.store.ListIdeas(ctx)
	if err != nil {
		return nil, err
	}
	if len(ideas) > 0 {
		return ideas, nil
	}

	samples := s.catalog.SampleIdeasAt(s.now().UTC())
	for i := range samples {
		samples[i].Slug = utils.GenerateIdeaSlug(samples[i].Title)
	}
	if err := s.store.SeedIdeas(ctx, samples); err != nil {
		return nil, fmt.Errorf("failed to seed ideas: %w", err)
	}

	s.logger.Info().
		Str("action", "ideas_seeded").
		Int("count", len(samples)).
		Msg("Seeded sample ideas")

	return s.store.ListIdeas(ctx)
}

// AddIdea puts a new idea at the top of the board
func (s *IdeaService) AddIdea(ctx context.Context, in IdeaInput) (models.Idea, error) {
	title := utils.SanitizeText(in.Title)
	if title == "" {
		return models.Idea{}, ErrIdeaTitleRequired
	}

	idea := models.Idea{
		ID:          uuid.New().String(),
		Title:       title,
		Description: utils.SanitizeText(in.Description),
		Source:      utils.SanitizeText(in.Source),
		SourceURL:   utils.SanitizeText(in.SourceURL),
		Upvotes:     in.Upvotes,
		Comments:    in.Comments,
		Status:      models.IdeaStatusNew,
		Slug:        utils.GenerateIdeaSlug(title),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.AddIdea(ctx, idea); err != nil {
		return models.Idea{}, fmt.Errorf("failed to save idea: %w", err)
	}

	s.logger.Info().
		Str("action", "idea_added").
		Str("idea_id", idea.ID).
		Str("slug", idea.Slug).
		Msg("New idea added")

	return idea, nil
}

// BuildIdea marks the idea as building and queues a build request.
// Returns store.ErrNotFound for unknown ids.
func (s *IdeaService) BuildIdea(ctx context.Context, ideaID string) (models.Idea, error) {
	if ideaID == "" {
		return models.Idea{}, ErrIdeaIDRequired
	}

	idea, err := s.store.UpdateIdeaStatus(ctx, ideaID, models.IdeaStatusBuilding)
	if err != nil {
		return models.Idea{}, err
	}

	now := s.now().UTC()
	req := models.BuildRequest{
		IdeaID:      idea.ID,
		Title:       idea.Title,
		Description: idea.Description,
		Source:      idea.Source,
		RequestedAt: now,
	}
	if err := s.store.AppendBuildRequest(ctx, req); err != nil {
		return models.Idea{}, fmt.Errorf("failed to queue build: %w", err)
	}

	notification := models.Notification{
		Message:   fmt.Sprintf("[%s] BUILD REQUEST: %s", now.Format(time.RFC3339), idea.Title),
		CreatedAt: now,
	}
	if err := s.store.AppendNotification(ctx, notification); err != nil {
		s.logger.Error().
			Err(err).
			Str("action", "notification_failed").
			Str("idea_id", idea.ID).
			Msg("Failed to record build notification")
	}

	s.logger.Info().
		Str("action", "build_queued").
		Str("idea_id", idea.ID).
		Str("title", idea.Title).
		Msg("Build request queued")

	return idea, nil
}

// RemoveIdea soft-deletes an idea. Unknown ids are not an error.
func (s *IdeaService) RemoveIdea(ctx context.Context, ideaID string) error {
	if ideaID == "" {
		return ErrIdeaIDRequired
	}

	_, err := s.store.UpdateIdeaStatus(ctx, ideaID, models.IdeaStatusRemoved)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Warn().
			Str("action", "idea_remove_unknown").
			Str("idea_id", ideaID).
			Msg("Remove requested for unknown idea")
		return nil
	}
	return err
}

// BuildQueue returns queued build requests, oldest first
func (s *IdeaService) BuildQueue(ctx context.Context) ([]models.BuildRequest, error) {
	return s.store.ListBuildRequests(ctx)
}

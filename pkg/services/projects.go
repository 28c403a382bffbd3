package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mission-control/core/pkg/catalog"
	"github.com/mission-control/core/pkg/jobsource"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models"
)

// maxCronSystems caps how many cron jobs appear on the systems panel
const maxCronSystems = 8

type ProjectService struct {
	catalog         *catalog.Catalog
	source          jobsource.JobLister
	kalshiStatePath string
	logger          *logger.Logger
	now             func() time.Time
}

func NewProjectService(cat *catalog.Catalog, source jobsource.JobLister, kalshiStatePath string, log *logger.Logger) *ProjectService {
	return &ProjectService{
		catalog:         cat,
		source:          source,
		kalshiStatePath: kalshiStatePath,
		logger:          log,
		now:             time.Now,
	}
}

// Projects returns the catalog projects plus trading bots, ordered by priority
func (s *ProjectService) Projects(ctx context.Context) []models.Project {
	now := s.now().UTC()

	projects := s.catalog.ProjectsAt(now)
	if kalshi, err := s.kalshiProject(now); err != nil {
		s.logger.Warn().
			Err(err).
			Str("action", "kalshi_state_unavailable").
			Str("path", s.kalshiStatePath).
			Msg("Skipping paper-trading bot")
	} else {
		projects = append(projects, kalshi)
	}
	projects = append(projects, s.catalog.TradingProjectsAt(now)...)

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].SortPriority() < projects[j].SortPriority()
	})
	return projects
}

func (s *ProjectService) kalshiProject(now time.Time) (models.Project, error) {
	data, err := os.ReadFile(s.kalshiStatePath)
	if err != nil {
		return models.Project{}, fmt.Errorf("failed to read kalshi state: %w", err)
	}

	var state models.KalshiState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.Project{}, fmt.Errorf("failed to decode kalshi state: %w", err)
	}

	balance := state.PaperBalance / 100
	var pnl, total float64
	if state.Stats != nil {
		pnl = state.Stats.PnL / 100
		total = state.Stats.Total
	}

	openPositions := len(state.OpenPositions)
	health := "warning"
	if openPositions > 0 {
		health = "healthy"
	}

	lastActivity := now.Format(time.RFC3339)
	if openPositions > 0 && state.OpenPositions[0].Timestamp != "" {
		lastActivity = state.OpenPositions[0].Timestamp
	}

	priority := 2
	return models.Project{
		ID:     "kalshi-weather",
		Name:   "Kalshi Weather Edge",
		Status: "active",
		Health: health,
		Type:   "trading",
		Metrics: models.ProjectMetrics{
			Revenue: &balance,
			PnL:     &pnl,
			Uptime:  &total,
		},
		LastActivity:  lastActivity,
		NextMilestone: fmt.Sprintf("%d positions open (paper)", openPositions),
		Priority:      &priority,
	}, nil
}

// Systems returns the static systems followed by the first cron jobs.
// A failing job source leaves only the static entries.
func (s *ProjectService) Systems(ctx context.Context) []models.System {
	now := s.now().UTC()
	systems := s.catalog.SystemsAt(now)

	jobs, err := s.source.ListJobs(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("action", "systems_jobs_failed").
			Msg("Failed to list cron jobs for systems panel")
		return systems
	}

	if len(jobs) > maxCronSystems {
		jobs = jobs[:maxCronSystems]
	}
	for _, job := range jobs {
		status, health := "stopped", "degraded"
		if job.Enabled {
			status, health = "running", "healthy"
		}

		lastCheck := now
		if ms, ok := job.LastRunEpochMs(); ok {
			lastCheck = time.UnixMilli(ms).UTC()
		}

		systems = append(systems, models.System{
			ID:        job.ID,
			Name:      job.Name,
			Type:      "cron",
			Status:    status,
			Health:    health,
			LastCheck: lastCheck.Format(time.RFC3339),
		})
	}
	return systems
}

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models"
)

type stubJobs struct {
	jobs []models.JobRecord
	err  error
}

func (s stubJobs) ListJobs(ctx context.Context) ([]models.JobRecord, error) {
	return s.jobs, s.err
}

func newTestProjectService(t *testing.T, source stubJobs, kalshiPath string) *ProjectService {
	svc := NewProjectService(newTestCatalog(t), source, kalshiPath, logger.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestProjects_WithKalshiState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather-state.json")
	state := `{"paperBalance": 123456, "stats": {"pnl": -2050, "total": 14},
		"openPositions": [{"timestamp": "2026-02-24T18:00:00Z"}, {"timestamp": "2026-02-24T19:00:00Z"}]}`
	require.NoError(t, os.WriteFile(path, []byte(state), 0o644))

	projects := newTestProjectService(t, stubJobs{}, path).Projects(context.Background())
	require.Len(t, projects, 5)

	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"carousel-business", "kalshi-weather", "patina", "verity", "crypto-bot"}, ids)

	kalshi := projects[1]
	assert.Equal(t, "healthy", kalshi.Health)
	assert.InDelta(t, 1234.56, *kalshi.Metrics.Revenue, 0.001)
	assert.InDelta(t, -20.5, *kalshi.Metrics.PnL, 0.001)
	assert.InDelta(t, 14, *kalshi.Metrics.Uptime, 0.001)
	assert.Equal(t, "2026-02-24T18:00:00Z", kalshi.LastActivity)
	assert.Equal(t, "2 positions open (paper)", kalshi.NextMilestone)
}

func TestProjects_NoPositionsIsWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather-state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"paperBalance": 100}`), 0o644))

	projects := newTestProjectService(t, stubJobs{}, path).Projects(context.Background())
	require.Len(t, projects, 5)

	kalshi := projects[1]
	assert.Equal(t, "warning", kalshi.Health)
	assert.Equal(t, "2026-02-25T09:30:00Z", kalshi.LastActivity)
	assert.Equal(t, 0.0, *kalshi.Metrics.PnL)
}

func TestProjects_MissingStateFileOmitsBot(t *testing.T) {
	projects := newTestProjectService(t, stubJobs{}, filepath.Join(t.TempDir(), "absent.json")).Projects(context.Background())
	require.Len(t, projects, 4)
	for _, p := range projects {
		assert.NotEqual(t, "kalshi-weather", p.ID)
	}
}

func TestSystems(t *testing.T) {
	lastRun := fixedNow.Add(-time.Hour).UnixMilli()
	jobs := make([]models.JobRecord, 0, 10)
	for i := 0; i < 10; i++ {
		jobs = append(jobs, models.JobRecord{ID: string(rune('a' + i)), Name: "job", Enabled: i%2 == 0})
	}
	jobs[0].State.LastRunAtMs = &lastRun

	systems := newTestProjectService(t, stubJobs{jobs: jobs}, "").Systems(context.Background())
	require.Len(t, systems, 2+8)

	assert.Equal(t, "kalshi-weather-bot", systems[0].ID)
	assert.Equal(t, "2026-02-25T09:30:00Z", systems[0].LastCheck)

	first := systems[2]
	assert.Equal(t, "cron", first.Type)
	assert.Equal(t, "running", first.Status)
	assert.Equal(t, "healthy", first.Health)
	assert.Equal(t, "2026-02-25T08:30:00Z", first.LastCheck)

	second := systems[3]
	assert.Equal(t, "stopped", second.Status)
	assert.Equal(t, "degraded", second.Health)
	assert.Equal(t, "2026-02-25T09:30:00Z", second.LastCheck)
}

func TestSystems_SourceFailureKeepsStatic(t *testing.T) {
	systems := newTestProjectService(t, stubJobs{err: errors.New("boom")}, "").Systems(context.Background())
	assert.Len(t, systems, 2)
}

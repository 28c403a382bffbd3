package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/metrics"
)

const jobTimeout = 5 * time.Minute

type cronJobManager struct {
	cron        *cron.Cron
	jobs        []Job
	logger      *logger.Logger
	metrics     *metrics.Metrics
	lockManager JobLockManager
	guard       *GuardConfig
}

// NewJobManager creates a job manager that schedules in UTC and wraps every
// job with guard (DefaultGuardConfig when nil)
func NewJobManager(log *logger.Logger, m *metrics.Metrics, guard *GuardConfig) JobManager {
	if guard == nil {
		guard = DefaultGuardConfig()
	}
	return &cronJobManager{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		jobs:        make([]Job, 0),
		logger:      log,
		metrics:     m,
		lockManager: NewLocalLockManager(),
		guard:       guard,
	}
}

func (m *cronJobManager) RegisterJob(job Job) error {
	if job == nil {
		return fmt.Errorf("job cannot be nil")
	}

	if _, guarded := job.(*GuardedJob); !guarded {
		job = NewGuardedJob(job, m.lockManager, m.guard, m.logger)
	}

	m.logger.Info().
		Str("action", "register_job").
		Str("job_name", job.Name()).
		Str("schedule", job.Schedule()).
		Msg("Registering job")

	_, err := m.cron.AddFunc(job.Schedule(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		_ = RunOnce(ctx, job, m.logger, m.metrics)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}

	m.jobs = append(m.jobs, job)
	return nil
}

func (m *cronJobManager) Start() {
	m.logger.Info().
		Str("action", "job_manager_start").
		Int("job_count", len(m.jobs)).
		Msg("Starting job manager")
	m.cron.Start()
}

func (m *cronJobManager) Stop() {
	m.logger.Info().Str("action", "job_manager_stop").Msg("Stopping job manager")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.logger.Info().Str("action", "job_manager_stopped").Msg("Job manager stopped")
}

func (m *cronJobManager) GetJobs() []Job {
	return append([]Job(nil), m.jobs...)
}

// RunOnce executes a job immediately with a run id, logging and metrics.
// A skipped run is counted as "skipped" and is not an error.
func RunOnce(ctx context.Context, job Job, log *logger.Logger, m *metrics.Metrics) error {
	jobLogger := log.WithRequestID(uuid.New().String()).WithJob(job.Name())
	ctx = jobLogger.ToContext(ctx)

	jobLogger.LogJobStart(job.Name(), job.Schedule())
	start := time.Now()

	err := job.Execute(ctx)
	if errors.Is(err, ErrJobSkipped) {
		m.ObserveJobRun(job.Name(), "skipped")
		return nil
	}
	if err != nil {
		jobLogger.Error().
			Err(err).
			Str("action", "job_failed").
			Dur("duration", time.Since(start)).
			Msg("Job execution failed")
		m.ObserveJobRun(job.Name(), "error")
		return err
	}

	jobLogger.LogJobComplete(job.Name(), time.Since(start), 1, 0)
	m.ObserveJobRun(job.Name(), "success")
	return nil
}

package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mission-control/core/pkg/logger"
)

// GuardedJob wraps a job with an overlap lock and optional retries
type GuardedJob struct {
	job         Job
	lockManager JobLockManager
	logger      *logger.Logger

	skipIfLocked bool
	maxRetries   int
	backoff      time.Duration
}

// GuardConfig holds configuration for the job wrapper
type GuardConfig struct {
	SkipIfLocked bool          // Skip execution if a previous run still holds the lock
	MaxRetries   int           // Retry attempts after the first failure
	Backoff      time.Duration // Base delay, doubled on each retry
}

// DefaultGuardConfig skips overlapping runs and does not retry
func DefaultGuardConfig() *GuardConfig {
	return &GuardConfig{
		SkipIfLocked: true,
		MaxRetries:   0,
		Backoff:      time.Second,
	}
}

func NewGuardedJob(job Job, lockManager JobLockManager, cfg *GuardConfig, log *logger.Logger) *GuardedJob {
	if cfg == nil {
		cfg = DefaultGuardConfig()
	}

	return &GuardedJob{
		job:          job,
		lockManager:  lockManager,
		logger:       log,
		skipIfLocked: cfg.SkipIfLocked,
		maxRetries:   cfg.MaxRetries,
		backoff:      cfg.Backoff,
	}
}

var (
	// ErrJobLocked is returned when a run overlaps and skipping is disabled
	ErrJobLocked = errors.New("job is already running")

	// ErrJobSkipped is returned when a run overlaps and was skipped
	ErrJobSkipped = errors.New("job skipped, previous run still in progress")
)

func (g *GuardedJob) Name() string {
	return g.job.Name()
}

func (g *GuardedJob) Schedule() string {
	return g.job.Schedule()
}

// Execute runs the wrapped job while holding its lock
func (g *GuardedJob) Execute(ctx context.Context) error {
	jobName := g.job.Name()

	if !g.lockManager.TryLock(jobName) {
		if g.skipIfLocked {
			g.logger.Info().
				Str("job_name", jobName).
				Str("action", "job_skipped_locked").
				Msg("Job skipped - previous run still in progress")
			return fmt.Errorf("%s: %w", jobName, ErrJobSkipped)
		}
		return fmt.Errorf("%s: %w", jobName, ErrJobLocked)
	}
	defer g.lockManager.Unlock(jobName)

	return g.executeWithRetry(ctx)
}

func (g *GuardedJob) executeWithRetry(ctx context.Context) error {
	var lastErr error
	maxAttempts := g.maxRetries + 1

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			g.logger.Warn().
				Int("attempt", attempt).
				Int("max_attempts", maxAttempts).
				Err(lastErr).
				Str("job_name", g.job.Name()).
				Str("action", "job_retry").
				Msg("Retrying job execution after failure")

			select {
			case <-time.After(g.backoff << uint(attempt-2)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := g.job.Execute(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}

	return lastErr
}

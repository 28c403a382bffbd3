// Package jobsource reads cron job and session data from the openclaw CLI.
package jobsource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mission-control/core/internal/config"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/metrics"
	"github.com/mission-control/core/pkg/models"
)

// JobLister is the read-only view of the cron job source
type JobLister interface {
	ListJobs(ctx context.Context) ([]models.JobRecord, error)
}

// SessionCounter reports how many agent sessions the CLI knows about
type SessionCounter interface {
	CountSessions(ctx context.Context) (int, error)
}

// CLI shells out to openclaw. Calls go through a circuit breaker that only
// counts timeouts, so a wedged binary stops being invoked for a cooldown
// period while fast failures are retried on every call.
type CLI struct {
	binary  string
	runner  Runner
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewCLI creates a CLI source using ExecRunner
func NewCLI(cfg config.SourceConfig, log *logger.Logger, m *metrics.Metrics) *CLI {
	runner := ExecRunner{Timeout: time.Duration(cfg.Timeout) * time.Second}
	return NewCLIWithRunner(cfg, runner, log, m)
}

// NewCLIWithRunner creates a CLI source with a custom runner
func NewCLIWithRunner(cfg config.SourceConfig, runner Runner, log *logger.Logger, m *metrics.Metrics) *CLI {
	failures := uint32(cfg.BreakerFailures)
	if cfg.BreakerFailures <= 0 {
		failures = 5
	}

	c := &CLI{
		binary:  cfg.Binary,
		runner:  runner,
		logger:  log,
		metrics: m,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openclaw",
		MaxRequests: 1,
		Timeout:     time.Duration(cfg.BreakerCooldown) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: isBreakerSuccess,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.Warn().
				Str("action", "breaker_state_change").
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Source circuit breaker changed state")
			c.metrics.SetBreakerState(name, breakerGauge(to))
		},
	})

	return c
}

// ListJobs runs `openclaw cron list --json` and decodes the result
func (c *CLI) ListJobs(ctx context.Context) ([]models.JobRecord, error) {
	out, err := c.run(ctx, "cron_list", "cron", "list", "--json")
	if err != nil {
		return nil, err
	}

	jobs, skipped, err := models.DecodeJobList(out)
	if err != nil {
		c.metrics.ObserveSourceCall("cron_list", "decode_error")
		return nil, err
	}
	if skipped > 0 {
		logger.WithContext(ctx, c.logger).Warn().
			Str("action", "cron_list_records_skipped").
			Int("skipped", skipped).
			Int("decoded", len(jobs)).
			Msg("Skipped job records that did not decode")
	}
	return jobs, nil
}

// CountSessions runs `openclaw sessions list --json` and counts the entries
func (c *CLI) CountSessions(ctx context.Context) (int, error) {
	out, err := c.run(ctx, "sessions_list", "sessions", "list", "--json")
	if err != nil {
		return 0, err
	}

	count, err := models.DecodeSessionCount(out)
	if err != nil {
		c.metrics.ObserveSourceCall("sessions_list", "decode_error")
		return 0, err
	}
	return count, nil
}

func (c *CLI) run(ctx context.Context, command string, args ...string) ([]byte, error) {
	start := time.Now()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.runner.Run(ctx, c.binary, args...)
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.metrics.ObserveSourceCall(command, "rejected")
		return nil, fmt.Errorf("%s %s skipped: %w", c.binary, command, err)
	}

	out, _ := result.([]byte)
	c.logger.LogCommand(c.binary, args, time.Since(start), len(out), err)

	if err != nil {
		c.metrics.ObserveSourceCall(command, "error")
		return nil, err
	}

	c.metrics.ObserveSourceCall(command, "success")
	return out, nil
}

// isBreakerSuccess treats everything except a timeout as healthy
func isBreakerSuccess(err error) bool {
	return !errors.Is(err, context.DeadlineExceeded)
}

func breakerGauge(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

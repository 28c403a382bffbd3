package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mission-control/core/internal/config"
	"github.com/mission-control/core/pkg/jobs"
	"github.com/mission-control/core/pkg/jobsource"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/metrics"
	"github.com/mission-control/core/pkg/store"
)

var (
	jobName string
	once    bool
)

var rootCmd = &cobra.Command{
	Use:   "cron",
	Short: "Mission control background worker",
	Long: `Runs the background jobs that feed the dashboard. Without flags it
schedules every job and blocks until SIGINT or SIGTERM.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&jobName, "job", "", "Run a specific job (sessions_sync)")
	rootCmd.Flags().BoolVar(&once, "once", false, "Run the selected job once and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger.SetupLogger()
	log := logger.New("cron-service")
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Str("action", "store_close_failed").Msg("Failed to close store")
		}
	}()

	m := metrics.New("mission_control_cron")
	source := jobsource.NewCLI(cfg.Source, log, m)

	registry := map[string]jobs.Job{
		"sessions_sync": jobs.NewSessionsSyncJob(source, st, log),
	}

	if jobName != "" {
		job, ok := registry[jobName]
		if !ok {
			return fmt.Errorf("unknown job %q", jobName)
		}
		if once {
			runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()
			return jobs.RunOnce(runCtx, job, log, m)
		}
		registry = map[string]jobs.Job{jobName: job}
	} else if once {
		return fmt.Errorf("--once requires --job")
	}

	guard := &jobs.GuardConfig{
		SkipIfLocked: true,
		MaxRetries:   cfg.Worker.MaxRetries,
		Backoff:      time.Duration(cfg.Worker.RetryBackoff) * time.Second,
	}
	manager := jobs.NewJobManager(log, m, guard)
	for _, job := range registry {
		if err := manager.RegisterJob(job); err != nil {
			return fmt.Errorf("failed to register %s: %w", job.Name(), err)
		}
	}

	metricsSrv := serveMetrics(cfg.Worker.MetricsAddr, m, log)

	manager.Start()
	log.Info().Str("action", "cron_ready").Msg("Cron service started, waiting for signals")

	<-ctx.Done()
	log.Info().Str("action", "shutdown_signal").Msg("Shutting down cron service")
	manager.Stop()

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Str("action", "metrics_shutdown_failed").Msg("Failed to stop metrics listener")
		}
	}
	return nil
}

// serveMetrics exposes the worker's registry on addr. "off" or "" disables it.
func serveMetrics(addr string, m *metrics.Metrics, log *logger.Logger) *http.Server {
	if addr == "" || addr == "off" {
		return nil
	}

	srv := m.NewServer(addr)
	go func() {
		log.Info().Str("action", "metrics_listen").Str("addr", addr).Msg("Serving worker metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("action", "metrics_listen_failed").Str("addr", addr).Msg("Worker metrics listener stopped")
		}
	}()
	return srv
}

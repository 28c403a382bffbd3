package jobs

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/metrics"
)

type mockJob struct {
	name        string
	schedule    string
	executeFunc func(ctx context.Context) error
	runs        atomic.Int32
}

func (m *mockJob) Execute(ctx context.Context) error {
	m.runs.Add(1)
	if m.executeFunc != nil {
		return m.executeFunc(ctx)
	}
	return nil
}

func (m *mockJob) Name() string {
	return m.name
}

func (m *mockJob) Schedule() string {
	return m.schedule
}

func TestJobManager_RegisterJob(t *testing.T) {
	manager := NewJobManager(logger.Nop(), nil, nil)

	tests := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{
			name: "valid job",
			job: &mockJob{
				name:     "test-job",
				schedule: "@every 1s",
			},
			wantErr: false,
		},
		{
			name:    "nil job",
			job:     nil,
			wantErr: true,
		},
		{
			name: "invalid schedule",
			job: &mockJob{
				name:     "invalid-job",
				schedule: "invalid-cron",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := manager.RegisterJob(tt.job)
			if (err != nil) != tt.wantErr {
				t.Errorf("RegisterJob() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJobManager_GetJobs(t *testing.T) {
	manager := NewJobManager(logger.Nop(), nil, nil)

	// Initially should have no jobs
	jobs := manager.GetJobs()
	if len(jobs) != 0 {
		t.Errorf("Expected 0 jobs initially, got %d", len(jobs))
	}

	// Add a job
	testJob := &mockJob{
		name:     "test-job",
		schedule: "@every 1s",
	}

	err := manager.RegisterJob(testJob)
	if err != nil {
		t.Fatalf("Failed to register job: %v", err)
	}

	// Should now have 1 job
	jobs = manager.GetJobs()
	if len(jobs) != 1 {
		t.Errorf("Expected 1 job, got %d", len(jobs))
	}

	if jobs[0].Name() != "test-job" {
		t.Errorf("Expected job name 'test-job', got '%s'", jobs[0].Name())
	}
}

func TestJobManager_StartStop(t *testing.T) {
	manager := NewJobManager(logger.Nop(), nil, nil)

	// Test starting and stopping without jobs
	manager.Start()

	// Give it a moment to start
	time.Sleep(10 * time.Millisecond)

	// Stop should complete without hanging
	done := make(chan bool, 1)
	go func() {
		manager.Stop()
		done <- true
	}()

	select {
	case <-done:
		// Success
	case <-time.After(5 * time.Second):
		t.Fatal("Stop() took too long")
	}
}

func TestRunOnce(t *testing.T) {
	m := metrics.New("test")

	ok := &mockJob{name: "ok-job", schedule: "@every 1m"}
	if err := RunOnce(context.Background(), ok, logger.Nop(), m); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if ok.runs.Load() != 1 {
		t.Errorf("Expected 1 run, got %d", ok.runs.Load())
	}

	testError := errors.New("test error")
	failing := &mockJob{
		name:     "failing-job",
		schedule: "@every 1m",
		executeFunc: func(ctx context.Context) error {
			return testError
		},
	}
	if err := RunOnce(context.Background(), failing, logger.Nop(), m); !errors.Is(err, testError) {
		t.Errorf("RunOnce() error = %v, want %v", err, testError)
	}

	expected := `
# HELP test_job_runs_total Background job runs by outcome
# TYPE test_job_runs_total counter
test_job_runs_total{job="failing-job",outcome="error"} 1
test_job_runs_total{job="ok-job",outcome="success"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "test_job_runs_total"); err != nil {
		t.Error(err)
	}
}

func TestJobExecution(t *testing.T) {
	manager := NewJobManager(logger.Nop(), nil, nil)

	testJob := &mockJob{name: "test-execution", schedule: "@every 1s"}
	if err := manager.RegisterJob(testJob); err != nil {
		t.Fatalf("Failed to register job: %v", err)
	}

	manager.Start()
	defer manager.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for testJob.runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}

	if testJob.runs.Load() == 0 {
		t.Error("Job was not executed")
	}
}

func TestRunOnce_SkippedRunIsCountedSeparately(t *testing.T) {
	m := metrics.New("test")
	locks := NewLocalLockManager()
	inner := &mockJob{name: "busy-job", schedule: "@every 1m"}
	job := NewGuardedJob(inner, locks, nil, logger.Nop())

	if !locks.TryLock("busy-job") {
		t.Fatal("failed to take the lock")
	}
	if err := RunOnce(context.Background(), job, logger.Nop(), m); err != nil {
		t.Fatalf("a skipped run should not be an error, got %v", err)
	}

	expected := `
# HELP test_job_runs_total Background job runs by outcome
# TYPE test_job_runs_total counter
test_job_runs_total{job="busy-job",outcome="skipped"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "test_job_runs_total"); err != nil {
		t.Error(err)
	}
}

func TestJobManager_AppliesGuardConfig(t *testing.T) {
	guard := &GuardConfig{SkipIfLocked: true, MaxRetries: 3, Backoff: 2 * time.Second}
	manager := NewJobManager(logger.Nop(), nil, guard)

	if err := manager.RegisterJob(&mockJob{name: "retried", schedule: "@every 1m"}); err != nil {
		t.Fatalf("Failed to register job: %v", err)
	}

	guarded, ok := manager.GetJobs()[0].(*GuardedJob)
	if !ok {
		t.Fatalf("expected registered job to be guarded, got %T", manager.GetJobs()[0])
	}
	if guarded.maxRetries != 3 || guarded.backoff != 2*time.Second {
		t.Errorf("guard config not applied: retries=%d backoff=%v", guarded.maxRetries, guarded.backoff)
	}
}

func TestWorkerMetricsScrape(t *testing.T) {
	m := metrics.New("mission_control_cron")
	if err := RunOnce(context.Background(), &mockJob{name: "sessions_sync", schedule: "*/5 * * * *"}, logger.Nop(), m); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	ts := httptest.NewServer(m.NewServer(":0").Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read scrape: %v", err)
	}
	want := `mission_control_cron_job_runs_total{job="sessions_sync",outcome="success"} 1`
	if !strings.Contains(string(body), want) {
		t.Errorf("scrape missing %q", want)
	}
}

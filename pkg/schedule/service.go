package schedule

import (
	"context"
	"time"

	"github.com/mission-control/core/pkg/jobsource"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/models"
)

// Service answers the dashboard's schedule queries. Each query reads the
// job source once; a failing source yields an empty result, never an error.
type Service struct {
	source jobsource.JobLister
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates a schedule service over the given job source
func NewService(source jobsource.JobLister, log *logger.Logger) *Service {
	return &Service{
		source: source,
		logger: log,
		now:    time.Now,
	}
}

// WeeklyCalendar returns calendar entries for every weekday
func (s *Service) WeeklyCalendar(ctx context.Context) []CalendarEntry {
	return Project(s.jobs(ctx, "build_calendar"))
}

// NextUp returns the soonest upcoming jobs
func (s *Service) NextUp(ctx context.Context) []UpcomingEntry {
	return RankUpcoming(s.jobs(ctx, "rank_upcoming"))
}

// ScheduledTasks returns every enabled job with its interpreted schedule
func (s *Service) ScheduledTasks(ctx context.Context) []ScheduledTask {
	return ScheduledTasks(s.jobs(ctx, "list_scheduled"), s.now())
}

// AlwaysRunning returns only the high-frequency interval jobs
func (s *Service) AlwaysRunning(ctx context.Context) []ScheduledTask {
	return AlwaysRunning(s.ScheduledTasks(ctx))
}

// jobs reads the source detached from the caller's cancellation. Once
// started, a read runs to completion under the adapter's own timeout.
func (s *Service) jobs(ctx context.Context, action string) []models.JobRecord {
	jobs, err := s.source.ListJobs(context.WithoutCancel(ctx))
	if err != nil {
		logger.WithContext(ctx, s.logger).Error().
			Err(err).
			Str("action", action+"_failed").
			Msg("Job source unavailable, returning empty schedule")
		return nil
	}
	return jobs
}

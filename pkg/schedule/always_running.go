package schedule

import (
	"time"

	"github.com/mission-control/core/pkg/models"
)

// Task types
const (
	TypeRecurring     = "recurring"
	TypeAlwaysRunning = "always-running"
)

// ScheduledTask is an enabled job with its interpreted schedule
type ScheduledTask struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Schedule   string     `json:"schedule"`
	NextRun    time.Time  `json:"nextRun"`
	LastRun    *time.Time `json:"lastRun,omitempty"`
	Status     string     `json:"status"`
	ColorToken string     `json:"colorToken"`
	Type       string     `json:"type"`
	Interval   string     `json:"interval,omitempty"`
}

// ScheduledTasks lists every enabled job. Colors advance once per enabled
// job, so they differ from the calendar's assignment.
func ScheduledTasks(jobs []models.JobRecord, now time.Time) []ScheduledTask {
	tasks := []ScheduledTask{}
	colorIndex := 0

	for _, job := range jobs {
		if !job.Enabled {
			continue
		}

		expr := job.CronExpression()
		offset, _ := job.NextRunOffset()

		task := ScheduledTask{
			ID:         job.ID,
			Name:       job.Name,
			Schedule:   expr,
			NextRun:    now.Add(time.Duration(offset) * time.Millisecond),
			Status:     "enabled",
			ColorToken: ColorFor(colorIndex),
			Type:       TypeRecurring,
		}

		if last, ok := job.LastRunEpochMs(); ok {
			lastRun := time.UnixMilli(last).UTC()
			task.LastRun = &lastRun
		}

		if classification := Classify(expr); classification.AlwaysRunning {
			task.Type = TypeAlwaysRunning
			task.Interval = classification.Label
		}

		tasks = append(tasks, task)
		colorIndex++
	}

	return tasks
}

// AlwaysRunning keeps only the always-running tasks
func AlwaysRunning(tasks []ScheduledTask) []ScheduledTask {
	filtered := []ScheduledTask{}
	for _, t := range tasks {
		if t.Type == TypeAlwaysRunning {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

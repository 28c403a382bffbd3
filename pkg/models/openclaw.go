package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JobRecord is one cron job as reported by `openclaw cron list --json`.
// It is owned by the external CLI; this service only reads it.
type JobRecord struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Enabled  bool        `json:"enabled"`
	Schedule JobSchedule `json:"schedule"`
	State    JobRunState `json:"state"`
}

// JobSchedule carries the five-field cron expression
type JobSchedule struct {
	Expr string `json:"expr"`
}

// JobRunState carries run timing. NextRunMs is an offset from now, not an epoch.
type JobRunState struct {
	LastRunAtMs *int64 `json:"lastRunAtMs,omitempty"`
	NextRunMs   *int64 `json:"nextRunMs,omitempty"`
}

// CronExpression returns the job's cron expression, or "" when absent
func (j JobRecord) CronExpression() string {
	return j.Schedule.Expr
}

// NextRunOffset reports the milliseconds until the next run. A zero offset
// counts as unknown, matching the CLI which omits or zeroes it.
func (j JobRecord) NextRunOffset() (int64, bool) {
	if j.State.NextRunMs == nil || *j.State.NextRunMs == 0 {
		return 0, false
	}
	return *j.State.NextRunMs, true
}

// LastRunEpochMs reports the last run time in epoch milliseconds, if known
func (j JobRecord) LastRunEpochMs() (int64, bool) {
	if j.State.LastRunAtMs == nil || *j.State.LastRunAtMs == 0 {
		return 0, false
	}
	return *j.State.LastRunAtMs, true
}

// jobListEnvelope is the object form of the cron list output
type jobListEnvelope struct {
	Jobs []json.RawMessage `json:"jobs"`
}

// DecodeJobList parses cron list output, which is either a bare JSON array
// of jobs or an object with a "jobs" array. Records that do not decode are
// skipped and counted; only an unreadable list is an error.
func DecodeJobList(data []byte) ([]JobRecord, int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, 0, fmt.Errorf("empty job list output")
	}

	var raw []json.RawMessage
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, 0, fmt.Errorf("failed to decode job array: %w", err)
		}
	} else {
		var envelope jobListEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, 0, fmt.Errorf("failed to decode job list object: %w", err)
		}
		raw = envelope.Jobs
	}

	jobs := make([]JobRecord, 0, len(raw))
	skipped := 0
	for _, record := range raw {
		var job JobRecord
		if err := json.Unmarshal(record, &job); err != nil {
			skipped++
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, skipped, nil
}

// DecodeSessionCount parses `openclaw sessions list --json`. Only an array
// carries a count; any other JSON value counts as zero sessions.
func DecodeSessionCount(data []byte) (int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		trimmed = []byte("[]")
	}

	var raw interface{}
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return 0, fmt.Errorf("failed to decode sessions list: %w", err)
	}

	if sessions, ok := raw.([]interface{}); ok {
		return len(sessions), nil
	}
	return 0, nil
}

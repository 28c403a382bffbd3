package schedule

import (
	"fmt"
	"sort"

	"github.com/mission-control/core/pkg/models"
)

// CalendarEntry is one job occurrence on one weekday of the weekly view
type CalendarEntry struct {
	ID         string `json:"id"`
	JobName    string `json:"jobName"`
	TimeLabel  string `json:"timeLabel"`
	ColorToken string `json:"colorToken"`
	Weekday    int    `json:"weekday"`
}

// Project builds the weekly calendar from job records. Disabled, malformed
// and always-running jobs are left out. Entries are ordered by time label
// as plain strings, so "10:00 AM" sorts before "9:00 AM".
func Project(jobs []models.JobRecord) []CalendarEntry {
	entries := []CalendarEntry{}
	colorIndex := 0

	for _, job := range jobs {
		if !job.Enabled {
			continue
		}

		expr := job.CronExpression()
		fields := cronFields(expr)
		if len(fields) < 5 {
			continue
		}

		if IsAlwaysRunning(expr) {
			continue
		}

		label := Classify(expr).Label
		color := ColorFor(colorIndex)

		for _, day := range ExpandDays(fields[4]) {
			entries = append(entries, CalendarEntry{
				ID:         fmt.Sprintf("%s-%d", job.ID, day),
				JobName:    job.Name,
				TimeLabel:  label,
				ColorToken: color,
				Weekday:    day,
			})
		}

		colorIndex++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TimeLabel < entries[j].TimeLabel
	})

	return entries
}

// EntriesForDay filters calendar entries down to a single weekday
func EntriesForDay(entries []CalendarEntry, weekday int) []CalendarEntry {
	day := []CalendarEntry{}
	for _, e := range entries {
		if e.Weekday == weekday {
			day = append(day, e)
		}
	}
	return day
}

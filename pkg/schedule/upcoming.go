package schedule

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"

	"github.com/mission-control/core/pkg/models"
)

// MaxUpcoming caps the "next up" list
const MaxUpcoming = 8

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

var timeUntilPattern = regexp.MustCompile(`In (\d+) (\w+)`)

// UpcomingEntry is one job in the "next up" list
type UpcomingEntry struct {
	ID             string `json:"id"`
	JobName        string `json:"jobName"`
	TimeUntilLabel string `json:"timeUntilLabel"`
	ColorToken     string `json:"colorToken"`
}

// RankUpcoming lists enabled jobs with a known next run, soonest first,
// capped at MaxUpcoming. Ordering uses the same labels shown to the user,
// parsed back into milliseconds.
func RankUpcoming(jobs []models.JobRecord) []UpcomingEntry {
	entries := []UpcomingEntry{}
	colorIndex := 0

	for _, job := range jobs {
		if !job.Enabled {
			continue
		}

		offset, ok := job.NextRunOffset()
		if !ok {
			continue
		}

		entries = append(entries, UpcomingEntry{
			ID:             job.ID,
			JobName:        job.Name,
			TimeUntilLabel: FormatTimeUntil(offset),
			ColorToken:     ColorFor(colorIndex),
		})
		colorIndex++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return ParseTimeUntil(entries[i].TimeUntilLabel) < ParseTimeUntil(entries[j].TimeUntilLabel)
	})

	if len(entries) > MaxUpcoming {
		entries = entries[:MaxUpcoming]
	}
	return entries
}

// FormatTimeUntil buckets a millisecond offset into a coarse label such as
// "In 5 min". Bucket boundaries are strict less-than.
func FormatTimeUntil(ms int64) string {
	v := float64(ms)
	switch {
	case ms < msPerMinute:
		return fmt.Sprintf("In %d sec", roundHalfUp(v/msPerSecond))
	case ms < msPerHour:
		return fmt.Sprintf("In %d min", roundHalfUp(v/msPerMinute))
	case ms < msPerDay:
		return fmt.Sprintf("In %d hours", roundHalfUp(v/msPerHour))
	default:
		return fmt.Sprintf("In %d days", roundHalfUp(v/msPerDay))
	}
}

// ParseTimeUntil converts a FormatTimeUntil label back to milliseconds.
// Anything it does not recognise sorts last as +Inf.
func ParseTimeUntil(label string) float64 {
	match := timeUntilPattern.FindStringSubmatch(label)
	if match == nil {
		return math.Inf(1)
	}

	n, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return math.Inf(1)
	}

	switch match[2] {
	case "sec":
		return n * msPerSecond
	case "min":
		return n * msPerMinute
	case "hours":
		return n * msPerHour
	case "days":
		return n * msPerDay
	default:
		return math.Inf(1)
	}
}

// roundHalfUp rounds .5 toward positive infinity
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

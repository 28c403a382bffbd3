// Package schedule turns cron job records into the dashboard's weekly
// calendar, "next up" list and always-running view.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// AlwaysRunningMaxMinutes is the largest minute step still shown as
// always running instead of on the calendar.
const AlwaysRunningMaxMinutes = 30

// Classification is the interpreted form of a cron expression
type Classification struct {
	AlwaysRunning bool
	Label         string
}

// cronFields splits an expression into its whitespace-separated fields
func cronFields(expr string) []string {
	return strings.Fields(expr)
}

// Classify labels a five-field cron expression. Malformed or unsupported
// expressions come back verbatim as their own label.
func Classify(expr string) Classification {
	fields := cronFields(expr)
	if len(fields) < 5 {
		return Classification{Label: expr}
	}

	minute := parseField(fields[0])
	hour := parseField(fields[1])

	if n, ok := alwaysRunningStep(minute); ok {
		return Classification{
			AlwaysRunning: true,
			Label:         fmt.Sprintf("Every %d min", n),
		}
	}

	if minute.kind == kindLiteral && hour.kind == kindLiteral {
		h, errHour := strconv.Atoi(hour.raw)
		m, errMinute := strconv.Atoi(minute.raw)
		if errHour == nil && errMinute == nil {
			return Classification{Label: clockLabel(h, m)}
		}
	}

	return Classification{Label: expr}
}

// IsAlwaysRunning reports whether expr is a high-frequency interval job
func IsAlwaysRunning(expr string) bool {
	fields := cronFields(expr)
	if len(fields) < 5 {
		return false
	}
	_, ok := alwaysRunningStep(parseField(fields[0]))
	return ok
}

func alwaysRunningStep(minute field) (int, bool) {
	n, ok := minute.stepValue()
	if !ok || n > AlwaysRunningMaxMinutes {
		return 0, false
	}
	return n, true
}

// clockLabel renders hour and minute on a 12-hour clock, e.g. "2:05 PM"
func clockLabel(hour, minute int) string {
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}

	display := hour
	switch {
	case hour > 12:
		display = hour - 12
	case hour == 0:
		display = 12
	}

	return fmt.Sprintf("%d:%02d %s", display, minute, ampm)
}

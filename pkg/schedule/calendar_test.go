package schedule

import (
	"testing"

	"github.com/mission-control/core/pkg/models"
)

func TestProject_SkipsDisabledMalformedAndAlwaysRunning(t *testing.T) {
	jobs := []models.JobRecord{
		job("off", "Disabled", "0 9 * * *", false),
		job("short", "Short", "0 9 * *", true),
		job("hb1", "Heartbeat", "*/10 * * * *", true),
		job("hb2", "Heartbeat Two", "*/10 * * * *", true),
		job("daily", "Daily", "0 9 * * *", true),
	}

	entries := Project(jobs)

	if len(entries) != 7 {
		t.Fatalf("expected 7 entries for one daily job, got %d", len(entries))
	}
	for _, e := range entries {
		if e.JobName != "Daily" {
			t.Errorf("unexpected job in calendar: %s", e.JobName)
		}
		if e.ColorToken != Palette[0] {
			t.Errorf("first included job should take the first color, got %s", e.ColorToken)
		}
	}
}

func TestProject_EntryShape(t *testing.T) {
	entries := Project([]models.JobRecord{job("brief", "Morning Briefing", "30 8 * * 1,3", true)})

	want := []CalendarEntry{
		{ID: "brief-1", JobName: "Morning Briefing", TimeLabel: "8:30 AM", ColorToken: "bg-blue-500", Weekday: 1},
		{ID: "brief-3", JobName: "Morning Briefing", TimeLabel: "8:30 AM", ColorToken: "bg-blue-500", Weekday: 3},
	}

	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestProject_ColorAdvancesPerIncludedJob(t *testing.T) {
	jobs := []models.JobRecord{
		job("a", "A", "0 1 * * *", true),
		job("hb", "Heartbeat", "*/5 * * * *", true),
		job("b", "B", "0 2 * * 1-5", true),
	}

	entries := Project(jobs)

	colors := map[string]map[string]bool{}
	for _, e := range entries {
		if colors[e.JobName] == nil {
			colors[e.JobName] = map[string]bool{}
		}
		colors[e.JobName][e.ColorToken] = true
	}

	if len(colors["A"]) != 1 || !colors["A"][Palette[0]] {
		t.Errorf("job A should use only %s, got %v", Palette[0], colors["A"])
	}
	if len(colors["B"]) != 1 || !colors["B"][Palette[1]] {
		t.Errorf("job B should use only %s, got %v", Palette[1], colors["B"])
	}
}

func TestProject_PaletteWraps(t *testing.T) {
	var jobs []models.JobRecord
	for i := 0; i < len(Palette)+1; i++ {
		jobs = append(jobs, job(string(rune('a'+i)), "Job", "0 9 * * 0", true))
	}

	entries := Project(jobs)

	last := entries[len(entries)-1]
	if last.ColorToken != Palette[0] {
		t.Errorf("eleventh job should wrap to %s, got %s", Palette[0], last.ColorToken)
	}
}

func TestProject_LexicographicTimeOrder(t *testing.T) {
	jobs := []models.JobRecord{
		job("nine", "Nine", "0 9 * * 0", true),
		job("ten", "Ten", "0 10 * * 0", true),
		job("one", "One", "0 13 * * 0", true),
	}

	entries := Project(jobs)

	got := []string{entries[0].TimeLabel, entries[1].TimeLabel, entries[2].TimeLabel}
	want := []string{"10:00 AM", "1:00 PM", "9:00 AM"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestProject_ReversedRangeYieldsNothing(t *testing.T) {
	entries := Project([]models.JobRecord{job("rev", "Reversed", "0 9 * * 5-1", true)})
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestProject_EmptyInput(t *testing.T) {
	entries := Project(nil)
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", entries)
	}
}

func TestEntriesForDay(t *testing.T) {
	entries := Project([]models.JobRecord{
		job("a", "A", "0 9 * * 1-5", true),
		job("b", "B", "0 10 * * 0,6", true),
	})

	monday := EntriesForDay(entries, 1)
	if len(monday) != 1 || monday[0].JobName != "A" {
		t.Errorf("unexpected monday entries: %+v", monday)
	}

	sunday := EntriesForDay(entries, 0)
	if len(sunday) != 1 || sunday[0].JobName != "B" {
		t.Errorf("unexpected sunday entries: %+v", sunday)
	}
}

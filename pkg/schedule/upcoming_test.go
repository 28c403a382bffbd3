package schedule

import (
	"math"
	"testing"

	"github.com/mission-control/core/pkg/models"
)

func TestFormatTimeUntil(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "In 0 sec"},
		{500, "In 1 sec"},
		{59_999, "In 60 sec"},
		{60_000, "In 1 min"},
		{90_000, "In 2 min"},
		{3_599_999, "In 60 min"},
		{3_600_000, "In 1 hours"},
		{7_200_000, "In 2 hours"},
		{86_399_999, "In 24 hours"},
		{86_400_000, "In 1 days"},
		{3 * 86_400_000, "In 3 days"},
	}

	for _, tt := range tests {
		if got := FormatTimeUntil(tt.ms); got != tt.want {
			t.Errorf("FormatTimeUntil(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestParseTimeUntil(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"In 1 sec", 1_000},
		{"In 2 min", 120_000},
		{"In 2 hours", 7_200_000},
		{"In 3 days", 259_200_000},
		{"In 3 weeks", math.Inf(1)},
		{"soon", math.Inf(1)},
		{"In -5 sec", math.Inf(1)},
	}

	for _, tt := range tests {
		if got := ParseTimeUntil(tt.label); got != tt.want {
			t.Errorf("ParseTimeUntil(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestFormatParseRoundTripIsMonotonic(t *testing.T) {
	offsets := []int64{500, 30_000, 90_000, 1_800_000, 7_200_000, 50_000_000, 172_800_000}

	prev := -1.0
	for _, ms := range offsets {
		key := ParseTimeUntil(FormatTimeUntil(ms))
		if math.IsInf(key, 1) {
			t.Fatalf("label for %d did not parse", ms)
		}
		if key < prev {
			t.Errorf("sort key for %d (%v) is below previous key %v", ms, key, prev)
		}
		prev = key
	}
}

func TestRankUpcoming_Order(t *testing.T) {
	jobs := []models.JobRecord{
		jobWithNextRun("hours", true, 7_200_000),
		jobWithNextRun("sec", true, 500),
		jobWithNextRun("min", true, 90_000),
	}

	entries := RankUpcoming(jobs)

	want := []string{"In 1 sec", "In 2 min", "In 2 hours"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, label := range want {
		if entries[i].TimeUntilLabel != label {
			t.Errorf("entry %d label = %q, want %q", i, entries[i].TimeUntilLabel, label)
		}
	}

	// Colors follow source order, not rank order
	if entries[0].ID != "sec" || entries[0].ColorToken != Palette[1] {
		t.Errorf("unexpected first entry %+v", entries[0])
	}
}

func TestRankUpcoming_SkipsDisabledAndUnknown(t *testing.T) {
	noOffset := job("none", "No Offset", "0 9 * * *", true)

	jobs := []models.JobRecord{
		jobWithNextRun("off", false, 1_000),
		noOffset,
		jobWithNextRun("zero", true, 0),
		jobWithNextRun("on", true, 2_000),
	}

	entries := RankUpcoming(jobs)

	if len(entries) != 1 || entries[0].ID != "on" {
		t.Fatalf("expected only the enabled job with an offset, got %+v", entries)
	}
}

func TestRankUpcoming_CapsAtEight(t *testing.T) {
	var jobs []models.JobRecord
	for i := 0; i < 20; i++ {
		jobs = append(jobs, jobWithNextRun(string(rune('a'+i)), true, int64(20-i)*60_000))
	}

	entries := RankUpcoming(jobs)

	if len(entries) != MaxUpcoming {
		t.Fatalf("expected %d entries, got %d", MaxUpcoming, len(entries))
	}
	if entries[0].TimeUntilLabel != "In 1 min" {
		t.Errorf("expected soonest first, got %q", entries[0].TimeUntilLabel)
	}
}

func TestRankUpcoming_UnparseableSinksToEnd(t *testing.T) {
	jobs := []models.JobRecord{
		jobWithNextRun("overdue", true, -5_000),
		jobWithNextRun("soon", true, 5_000),
	}

	entries := RankUpcoming(jobs)

	if entries[0].ID != "soon" || entries[1].ID != "overdue" {
		t.Errorf("expected overdue job last, got %+v", entries)
	}
}

package interview

import (
	"testing"
	"time"

	"jobtracker/internal/common"
)

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		90:  "1h 30m",
		60:  "1h",
		45:  "45m",
		0:   "0m",
		125: "2h 5m",
	}
	for minutes, want := range cases {
		if got := FormatMinutes(minutes); got != want {
			t.Fatalf("FormatMinutes(%d) = %q, want %q", minutes, got, want)
		}
	}
}

func TestDisplayTitle(t *testing.T) {
	item := Interview{RoundNumber: 2, InterviewType: TypeHRScreening}
	if got := item.DisplayTitle(); got != "Round 2: Hr screening" {
		t.Fatalf("unexpected title: %q", got)
	}
}

func TestScoreFromRating(t *testing.T) {
	score, err := ScoreFromRating(4)
	if err != nil || score != 8 {
		t.Fatalf("unexpected score: %d %v", score, err)
	}
	for _, rating := range []int{0, 6} {
		if _, err := ScoreFromRating(rating); !common.Is(err, common.CodeValidation) {
			t.Fatalf("expected validation error for %d, got %v", rating, err)
		}
	}
}

func TestEndsAtDefaultsToOneHour(t *testing.T) {
	start := time.Date(2024, time.June, 10, 14, 0, 0, 0, time.UTC)
	item := Interview{ScheduledAt: start}
	if !item.EndsAt().Equal(start.Add(time.Hour)) {
		t.Fatalf("unexpected end: %v", item.EndsAt())
	}
	if item.DurationDisplay() != "Not specified" {
		t.Fatalf("unexpected duration display: %q", item.DurationDisplay())
	}
	minutes := 45
	item.Duration = &minutes
	if !item.EndsAt().Equal(start.Add(45 * time.Minute)) {
		t.Fatalf("unexpected end: %v", item.EndsAt())
	}
}

func TestValidateNewRequiresFutureTime(t *testing.T) {
	now := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	item := Interview{ApplicationProcessID: 1, RoundNumber: 1, InterviewType: TypeTechnical, ScheduledAt: now.Add(-time.Minute)}
	appErr, ok := common.As(item.ValidateNew(now))
	if !ok || appErr.Fields["scheduled_at"] != "must be in the future" {
		t.Fatalf("expected scheduled_at error, got %v", appErr)
	}
	if err := item.Validate(); err != nil {
		t.Fatalf("past interviews stay valid on update: %v", err)
	}
}

func TestValidateScoresAndRound(t *testing.T) {
	high := 11
	item := Interview{ApplicationProcessID: 1, InterviewType: "pairing", ScheduledAt: time.Now(), PerformanceScore: &high}
	appErr, ok := common.As(item.Validate())
	if !ok {
		t.Fatalf("expected validation error")
	}
	if appErr.Fields["round_number"] == "" || appErr.Fields["performance_score"] == "" {
		t.Fatalf("unexpected fields: %v", appErr.Fields)
	}
}

func TestAverageScore(t *testing.T) {
	perf, enjoy := 6, 9
	tests := []struct {
		name string
		item Interview
		want *float64
	}{
		{name: "no scores", item: Interview{}},
		{name: "performance only", item: Interview{PerformanceScore: &perf}},
		{name: "enjoyment only", item: Interview{EnjoymentScore: &enjoy}},
	}
	for _, tt := range tests {
		if got := tt.item.AverageScore(); got != nil {
			t.Fatalf("%s: expected nil average, got %v", tt.name, *got)
		}
	}
	avg := Interview{PerformanceScore: &perf, EnjoymentScore: &enjoy}.AverageScore()
	if avg == nil || *avg != 7.5 {
		t.Fatalf("unexpected average: %v", avg)
	}
}

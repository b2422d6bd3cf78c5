package interview

import (
	"strconv"
	"strings"
	"time"

	"jobtracker/internal/common"
)

// Common interview types offered by the form. Any other non-blank value is accepted.
const (
	TypeTechnical    = "technical"
	TypeBehavioral   = "behavioral"
	TypeCultural     = "cultural"
	TypeHRScreening  = "hr_screening"
	TypeSystemDesign = "system_design"
	TypeTakeHome     = "take_home"
	TypeFinalRound   = "final_round"
)

var CommonTypes = []string{
	TypeTechnical,
	TypeBehavioral,
	TypeCultural,
	TypeHRScreening,
	TypeSystemDesign,
	TypeTakeHome,
	TypeFinalRound,
}

const (
	MinScore = 0
	MaxScore = 10

	MinRating = 1
	MaxRating = 5

	// DefaultDuration is used for the calendar slot when no duration is recorded.
	DefaultDuration = 60 * time.Minute
)

type Interview struct {
	ID                   int64     `json:"id"`
	ApplicationProcessID int64     `json:"application_process_id"`
	RoundNumber          int       `json:"round_number"`
	InterviewType        string    `json:"interview_type"`
	ScheduledAt          time.Time `json:"scheduled_at"`
	Duration             *int      `json:"duration"`
	PerformanceScore     *int      `json:"performance_score"`
	EnjoymentScore       *int      `json:"enjoyment_score"`
	Notes                string    `json:"notes"`
	Transcript           string    `json:"transcript"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (i Interview) Validate() error {
	return i.validate(nil).Err()
}

// ValidateNew adds the creation-only rule that the interview lies ahead of now.
func (i Interview) ValidateNew(now time.Time) error {
	return i.validate(&now).Err()
}

func (i Interview) validate(now *time.Time) *common.Validation {
	var v common.Validation
	if i.ApplicationProcessID <= 0 {
		v.Add("application_process", "must exist")
	}
	if i.RoundNumber <= 0 {
		v.Add("round_number", "must be greater than 0")
	}
	v.Required("interview_type", i.InterviewType)
	v.MaxLength("interview_type", i.InterviewType)
	if i.ScheduledAt.IsZero() {
		v.Add("scheduled_at", common.MsgBlank)
	} else if now != nil && !i.ScheduledAt.After(*now) {
		v.Add("scheduled_at", "must be in the future")
	}
	if i.Duration != nil && *i.Duration <= 0 {
		v.Add("duration", "must be greater than 0")
	}
	v.Range("performance_score", i.PerformanceScore, MinScore, MaxScore)
	v.Range("enjoyment_score", i.EnjoymentScore, MinScore, MaxScore)
	return &v
}

// ScoreFromRating maps the UI's 1..5 slider onto the stored 0..10 scale.
func ScoreFromRating(rating int) (int, error) {
	if rating < MinRating || rating > MaxRating {
		return 0, common.NewValidationError("invalid rating", map[string]string{"rating": "must be between 1 and 5"})
	}
	return rating * 2, nil
}

// TypeDisplay renders "hr_screening" as "Hr screening".
func TypeDisplay(interviewType string) string {
	return common.Humanize(interviewType)
}

// DisplayTitle renders "Round 2: Technical".
func (i Interview) DisplayTitle() string {
	return "Round " + strconv.Itoa(i.RoundNumber) + ": " + TypeDisplay(i.InterviewType)
}

func (i Interview) EndsAt() time.Time {
	if i.Duration == nil {
		return i.ScheduledAt.Add(DefaultDuration)
	}
	return i.ScheduledAt.Add(time.Duration(*i.Duration) * time.Minute)
}

func (i Interview) DurationDisplay() string {
	if i.Duration == nil {
		return "Not specified"
	}
	return FormatMinutes(*i.Duration)
}

// FormatMinutes renders 90 as "1h 30m", 60 as "1h" and 45 as "45m".
func FormatMinutes(minutes int) string {
	hours, rest := minutes/60, minutes%60
	parts := make([]string, 0, 2)
	if hours > 0 {
		parts = append(parts, strconv.Itoa(hours)+"h")
	}
	if rest > 0 || hours == 0 {
		parts = append(parts, strconv.Itoa(rest)+"m")
	}
	return strings.Join(parts, " ")
}

func (i Interview) Upcoming(now time.Time) bool {
	return i.ScheduledAt.After(now)
}

func (i Interview) Completed(now time.Time) bool {
	return !i.ScheduledAt.After(now)
}

func (i Interview) HasScores() bool {
	return i.PerformanceScore != nil || i.EnjoymentScore != nil
}

// AverageScore is nil until both scores are recorded.
func (i Interview) AverageScore() *float64 {
	if i.PerformanceScore == nil || i.EnjoymentScore == nil {
		return nil
	}
	avg := float64(*i.PerformanceScore+*i.EnjoymentScore) / 2
	return &avg
}

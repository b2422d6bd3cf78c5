package application

import (
	"strings"
	"time"

	"jobtracker/internal/common"
)

type Status string

const (
	StatusDraft        Status = "draft"
	StatusApplied      Status = "applied"
	StatusInReview     Status = "in_review"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusClosed       Status = "closed"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{
	StatusDraft,
	StatusApplied,
	StatusInReview,
	StatusInterviewing,
	StatusOffer,
	StatusRejected,
	StatusClosed,
}

// NotApplied is reported for a job opening that has no process row.
const NotApplied = "not_applied"

func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", common.NewValidationError("invalid status", map[string]string{"status": "is not included in the list"})
	}
	return status, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusApplied, StatusInReview, StatusInterviewing, StatusOffer, StatusRejected, StatusClosed:
		return true
	default:
		return false
	}
}

// Terminal statuses are shown as finished by the UI; nothing forbids leaving them.
func (s Status) Terminal() bool {
	switch s {
	case StatusRejected, StatusClosed:
		return true
	case StatusDraft, StatusApplied, StatusInReview, StatusInterviewing, StatusOffer:
		return false
	default:
		return false
	}
}

func (s Status) Display() string {
	return common.Humanize(string(s))
}

type Process struct {
	ID             int64        `json:"id"`
	JobOpeningID   int64        `json:"job_opening_id"`
	Status         Status       `json:"status"`
	AppliedOn      *common.Date `json:"applied_on"`
	JobPostedOn    *common.Date `json:"job_posted_on"`
	LastFollowUpOn *common.Date `json:"last_follow_up_on"`
	NextFollowUpOn *common.Date `json:"next_follow_up_on"`
	NotionPageID   string       `json:"notion_page_id,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func New(jobOpeningID int64) Process {
	return Process{JobOpeningID: jobOpeningID, Status: StatusDraft}
}

// TransitionTo sets the status and keeps applied_on in step with it:
// draft to applied stamps today unless a date is already set, and any
// move back to draft clears it. Validate still has to run afterwards.
func (p *Process) TransitionTo(next Status, today common.Date) {
	previous := p.Status
	p.Status = next
	switch {
	case previous == StatusDraft && next == StatusApplied:
		if p.AppliedOn == nil {
			stamped := today
			p.AppliedOn = &stamped
		}
	case previous != StatusDraft && next == StatusDraft:
		p.AppliedOn = nil
	}
}

func (p Process) Validate() error {
	var v common.Validation
	if p.Status == "" {
		v.Add("status", common.MsgBlank)
	} else if !p.Status.Valid() {
		v.Add("status", "is not included in the list")
	}
	if p.Status != StatusDraft && p.AppliedOn == nil {
		v.Add("applied_on", common.MsgBlank)
	}
	if p.LastFollowUpOn != nil && p.NextFollowUpOn != nil && p.LastFollowUpOn.After(*p.NextFollowUpOn) {
		v.Add("next_follow_up_on", "must be after last follow up date")
	}
	return v.Err()
}

func (p Process) Active() bool {
	return !p.Status.Terminal()
}

func (p Process) NeedsFollowUp(today common.Date) bool {
	return p.NextFollowUpOn != nil && !p.NextFollowUpOn.After(today)
}

// DaysSinceApplied is nil until the application is sent.
func (p Process) DaysSinceApplied(today common.Date) *int {
	if p.AppliedOn == nil {
		return nil
	}
	days := p.AppliedOn.DaysUntil(today)
	return &days
}

func (p Process) AppliedWithin(today common.Date, days int) bool {
	return p.AppliedOn != nil && !p.AppliedOn.Before(today.AddDays(-days))
}

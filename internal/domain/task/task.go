package task

import (
	"strings"
	"time"

	"jobtracker/internal/common"
)

// DueSoonDays is the horizon of the "Due Soon" status.
const DueSoonDays = 7

type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusDueToday  Status = "due_today"
	StatusDueSoon   Status = "due_soon"
	StatusPending   Status = "pending"
)

func (s Status) Display() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusOverdue:
		return "Overdue"
	case StatusDueToday:
		return "Due Today"
	case StatusDueSoon:
		return "Due Soon"
	case StatusPending:
		return "Pending"
	default:
		return ""
	}
}

type Task struct {
	ID                   int64        `json:"id"`
	UserID               int64        `json:"user_id"`
	ApplicationProcessID *int64       `json:"application_process_id"`
	Title                string       `json:"title"`
	Notes                string       `json:"notes"`
	DueDate              *common.Date `json:"due_date"`
	Completed            bool         `json:"completed"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
}

func (t Task) Validate() error {
	var v common.Validation
	if t.UserID <= 0 {
		v.Add("user", "must exist")
	}
	v.Required("title", t.Title)
	v.MaxLength("title", t.Title)
	return v.Err()
}

func (t Task) Overdue(today common.Date) bool {
	return t.DueDate != nil && t.DueDate.Before(today) && !t.Completed
}

func (t Task) DueToday(today common.Date) bool {
	return t.DueDate != nil && *t.DueDate == today
}

func (t Task) DueSoon(today common.Date) bool {
	if t.DueDate == nil {
		return false
	}
	return !t.DueDate.Before(today) && !t.DueDate.After(today.AddDays(DueSoonDays))
}

func (t Task) DaysUntilDue(today common.Date) *int {
	if t.DueDate == nil {
		return nil
	}
	days := today.DaysUntil(*t.DueDate)
	return &days
}

// Status picks the first matching state: completed, overdue, due today, due soon.
func (t Task) Status(today common.Date) Status {
	switch {
	case t.Completed:
		return StatusCompleted
	case t.Overdue(today):
		return StatusOverdue
	case t.DueToday(today):
		return StatusDueToday
	case t.DueSoon(today):
		return StatusDueSoon
	default:
		return StatusPending
	}
}

func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

package calendar

import (
	"context"
	"sort"
	"strconv"
	"time"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/contact"
	"jobtracker/internal/domain/interview"
	"jobtracker/internal/domain/task"
)

const (
	DateFormat     = "January 02, 2006"
	DateTimeFormat = "January 02, 2006 at 03:04 PM"
)

// Task slots occupy one hour at midday of the due date.
const (
	taskSlotStartHour = 12
	taskSlotEndHour   = 13
)

type EventType string

const (
	TypeInterview EventType = "interview"
	TypeTask      EventType = "task"
)

// InterviewEntry is an interview with the context the calendar shows next to it.
type InterviewEntry struct {
	Interview    interview.Interview
	JobOpeningID int64
	JobTitle     string
	CompanyName  string
	Contacts     []contact.Contact
}

type TaskEntry struct {
	Task        task.Task
	JobTitle    string
	CompanyName string
}

// Source loads the raw entries.
type Source interface {
	Interviews(ctx context.Context) ([]InterviewEntry, error)
	// Tasks returns the user's tasks that have a due date.
	Tasks(ctx context.Context, userID int64) ([]TaskEntry, error)
}

type Event struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  EventType `json:"type"`
	Data  EventData `json:"data"`
}

// EventData is either InterviewData or TaskData.
type EventData interface {
	eventType() EventType
}

type ContactData struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedin_url"`
}

type InterviewData struct {
	InterviewID      int64         `json:"interview_id"`
	CompanyName      string        `json:"company_name"`
	JobTitle         string        `json:"job_title"`
	JobOpeningID     int64         `json:"job_opening_id"`
	InterviewType    string        `json:"interview_type"`
	RoundNumber      int           `json:"round_number"`
	Duration         string        `json:"duration"`
	PerformanceScore *int          `json:"performance_score"`
	EnjoymentScore   *int          `json:"enjoyment_score"`
	Notes            string        `json:"notes"`
	ScheduledAt      string        `json:"scheduled_at"`
	Contacts         []ContactData `json:"contacts"`
}

func (InterviewData) eventType() EventType { return TypeInterview }

type TaskData struct {
	TaskID               int64  `json:"task_id"`
	Title                string `json:"title"`
	Completed            bool   `json:"completed"`
	Overdue              bool   `json:"overdue"`
	Status               string `json:"status"`
	Notes                string `json:"notes"`
	DueDate              string `json:"due_date"`
	ApplicationProcessID *int64 `json:"application_process_id"`
	JobTitle             string `json:"job_title"`
	CompanyName          string `json:"company_name"`
}

func (TaskData) eventType() EventType { return TypeTask }

type Feed struct {
	Events      []Event `json:"events"`
	CurrentDate string  `json:"current_date"`
}

// Build projects interviews and dated tasks into one feed ordered by start.
// Ties keep interviews ahead of tasks.
func Build(interviews []InterviewEntry, tasks []TaskEntry, today common.Date, loc *time.Location) Feed {
	if loc == nil {
		loc = time.UTC
	}
	interviewEvents := make([]Event, 0, len(interviews))
	for _, entry := range interviews {
		interviewEvents = append(interviewEvents, InterviewEvent(entry, loc))
	}
	taskEvents := make([]Event, 0, len(tasks))
	for _, entry := range tasks {
		if entry.Task.DueDate == nil {
			continue
		}
		taskEvents = append(taskEvents, TaskEvent(entry, today, loc))
	}
	sortByStart(interviewEvents)
	sortByStart(taskEvents)
	return Feed{Events: merge(interviewEvents, taskEvents), CurrentDate: today.String()}
}

func InterviewEvent(entry InterviewEntry, loc *time.Location) Event {
	item := entry.Interview
	contacts := make([]ContactData, 0, len(entry.Contacts))
	for _, c := range entry.Contacts {
		contacts = append(contacts, ContactData{ID: c.ID, Name: c.Name, Title: c.Role, Email: c.Email, LinkedInURL: c.LinkedIn})
	}
	start := item.ScheduledAt.In(loc)
	return Event{
		ID:    "interview-" + strconv.FormatInt(item.ID, 10),
		Title: item.DisplayTitle(),
		Start: start,
		End:   item.EndsAt().In(loc),
		Type:  TypeInterview,
		Data: InterviewData{
			InterviewID:      item.ID,
			CompanyName:      entry.CompanyName,
			JobTitle:         entry.JobTitle,
			JobOpeningID:     entry.JobOpeningID,
			InterviewType:    interview.TypeDisplay(item.InterviewType),
			RoundNumber:      item.RoundNumber,
			Duration:         item.DurationDisplay(),
			PerformanceScore: item.PerformanceScore,
			EnjoymentScore:   item.EnjoymentScore,
			Notes:            item.Notes,
			ScheduledAt:      start.Format(DateTimeFormat),
			Contacts:         contacts,
		},
	}
}

// TaskEvent expects a task with a due date.
func TaskEvent(entry TaskEntry, today common.Date, loc *time.Location) Event {
	item := entry.Task
	due := *item.DueDate
	return Event{
		ID:    "task-" + strconv.FormatInt(item.ID, 10),
		Title: item.Title,
		Start: time.Date(due.Year, due.Month, due.Day, taskSlotStartHour, 0, 0, 0, loc),
		End:   time.Date(due.Year, due.Month, due.Day, taskSlotEndHour, 0, 0, 0, loc),
		Type:  TypeTask,
		Data: TaskData{
			TaskID:               item.ID,
			Title:                item.Title,
			Completed:            item.Completed,
			Overdue:              item.Overdue(today),
			Status:               item.Status(today).Display(),
			Notes:                item.Notes,
			DueDate:              due.Format(DateFormat),
			ApplicationProcessID: item.ApplicationProcessID,
			JobTitle:             entry.JobTitle,
			CompanyName:          entry.CompanyName,
		},
	}
}

func sortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}

func merge(interviews, tasks []Event) []Event {
	out := make([]Event, 0, len(interviews)+len(tasks))
	i, j := 0, 0
	for i < len(interviews) && j < len(tasks) {
		if tasks[j].Start.Before(interviews[i].Start) {
			out = append(out, tasks[j])
			j++
			continue
		}
		out = append(out, interviews[i])
		i++
	}
	out = append(out, interviews[i:]...)
	return append(out, tasks[j:]...)
}

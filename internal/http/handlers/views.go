package handlers

import (
	"time"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/domain/application"
	"jobtracker/internal/domain/calendar"
	"jobtracker/internal/domain/contact"
	"jobtracker/internal/domain/interview"
	"jobtracker/internal/domain/job"
	"jobtracker/internal/domain/message"
	"jobtracker/internal/domain/task"
)

type processView struct {
	ID               int64        `json:"id"`
	Status           string       `json:"status"`
	StatusDisplay    string       `json:"status_display"`
	AppliedOn        *common.Date `json:"applied_on"`
	JobPostedOn      *common.Date `json:"job_posted_on"`
	LastFollowUpOn   *common.Date `json:"last_follow_up_on"`
	NextFollowUpOn   *common.Date `json:"next_follow_up_on"`
	AppliedOnDisplay string       `json:"applied_on_display"`
	DaysSinceApplied *int         `json:"days_since_applied"`
	NeedsFollowUp    bool         `json:"needs_follow_up"`
	Active           bool         `json:"active"`
	NotionPageID     string       `json:"notion_page_id,omitempty"`
}

func newProcessView(p *application.Process, today common.Date) *processView {
	if p == nil {
		return nil
	}
	return &processView{
		ID:               p.ID,
		Status:           string(p.Status),
		StatusDisplay:    p.Status.Display(),
		AppliedOn:        p.AppliedOn,
		JobPostedOn:      p.JobPostedOn,
		LastFollowUpOn:   p.LastFollowUpOn,
		NextFollowUpOn:   p.NextFollowUpOn,
		AppliedOnDisplay: formatDate(p.AppliedOn),
		DaysSinceApplied: p.DaysSinceApplied(today),
		NeedsFollowUp:    p.NeedsFollowUp(today),
		Active:           p.Active(),
		NotionPageID:     p.NotionPageID,
	}
}

type jobView struct {
	ID                int64        `json:"id"`
	CompanyID         int64        `json:"company_id"`
	CompanyName       string       `json:"company_name"`
	Title             string       `json:"title"`
	DisplayTitle      string       `json:"display_title"`
	Description       string       `json:"description"`
	Source            string       `json:"source"`
	TechStack         string       `json:"tech_stack"`
	TechStackList     []string     `json:"tech_stack_list"`
	Salary            string       `json:"salary"`
	Location          string       `json:"location"`
	MatchScore        *int         `json:"match_score"`
	InterestScore     *int         `json:"interest_score"`
	ScoreSummary      string       `json:"score_summary"`
	IsPublic          bool         `json:"is_public"`
	ApplicationStatus string       `json:"application_status"`
	Process           *processView `json:"application_process"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func newJobView(l job.Listing, today common.Date) jobView {
	return jobView{
		ID:                l.ID,
		CompanyID:         l.CompanyID,
		CompanyName:       l.CompanyName,
		Title:             l.Title,
		DisplayTitle:      l.DisplayTitle(),
		Description:       l.Description,
		Source:            l.Source,
		TechStack:         l.TechStack,
		TechStackList:     job.TechStackList(l.TechStack),
		Salary:            l.Salary,
		Location:          l.Location,
		MatchScore:        l.MatchScore,
		InterestScore:     l.InterestScore,
		ScoreSummary:      l.ScoreSummary(),
		IsPublic:          l.IsPublic,
		ApplicationStatus: l.ApplicationStatus(),
		Process:           newProcessView(l.Process, today),
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func newJobViews(listings []job.Listing, today common.Date) []jobView {
	views := make([]jobView, 0, len(listings))
	for _, l := range listings {
		views = append(views, newJobView(l, today))
	}
	return views
}

type contactView struct {
	contact.Contact
	FullContactInfo string `json:"full_contact_info"`
}

func newContactViews(contacts []contact.Contact) []contactView {
	views := make([]contactView, 0, len(contacts))
	for _, c := range contacts {
		views = append(views, contactView{Contact: c, FullContactInfo: c.FullContactInfo()})
	}
	return views
}

type messageView struct {
	ID               int64  `json:"id"`
	ContactID        int64  `json:"contact_id"`
	ContactName      string `json:"contact_name"`
	Content          string `json:"content"`
	ShortContent     string `json:"short_content"`
	Direction        string `json:"direction"`
	DisplayDirection string `json:"display_direction"`
	SentAt           string `json:"sent_at"`
	SentAtDisplay    string `json:"sent_at_display"`
	DaysAgo          int    `json:"days_ago"`
}

func newMessageView(m message.Message, now time.Time) messageView {
	return messageView{
		ID:               m.ID,
		ContactID:        m.ContactID,
		ContactName:      m.ContactName,
		Content:          m.Content,
		ShortContent:     m.ShortContent(message.DefaultShortLength),
		Direction:        string(m.Direction),
		DisplayDirection: m.Direction.Display(),
		SentAt:           m.SentAt.In(now.Location()).Format(time.RFC3339),
		SentAtDisplay:    m.SentAt.In(now.Location()).Format(calendar.DateTimeFormat),
		DaysAgo:          m.DaysAgo(now),
	}
}

type taskView struct {
	ID                   int64        `json:"id"`
	ApplicationProcessID *int64       `json:"application_process_id"`
	Title                string       `json:"title"`
	Notes                string       `json:"notes"`
	DueDate              *common.Date `json:"due_date"`
	DueDateDisplay       string       `json:"due_date_display"`
	Completed            bool         `json:"completed"`
	Overdue              bool         `json:"overdue"`
	DueToday             bool         `json:"due_today"`
	DueSoon              bool         `json:"due_soon"`
	DaysUntilDue         *int         `json:"days_until_due"`
	Status               string       `json:"status"`
	StatusDisplay        string       `json:"status_display"`
}

func newTaskView(t task.Task, today common.Date) taskView {
	status := t.Status(today)
	return taskView{
		ID:                   t.ID,
		ApplicationProcessID: t.ApplicationProcessID,
		Title:                t.Title,
		Notes:                t.Notes,
		DueDate:              t.DueDate,
		DueDateDisplay:       formatDate(t.DueDate),
		Completed:            t.Completed,
		Overdue:              t.Overdue(today),
		DueToday:             t.DueToday(today),
		DueSoon:              t.DueSoon(today),
		DaysUntilDue:         t.DaysUntilDue(today),
		Status:               string(status),
		StatusDisplay:        status.Display(),
	}
}

func newTaskViews(tasks []task.Task, today common.Date) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, newTaskView(t, today))
	}
	return views
}

type interviewView struct {
	ID                   int64    `json:"id"`
	RoundNumber          int      `json:"round_number"`
	InterviewType        string   `json:"interview_type"`
	InterviewTypeDisplay string   `json:"interview_type_display"`
	DisplayTitle         string   `json:"display_title"`
	ScheduledAt          string   `json:"scheduled_at"`
	ScheduledAtDisplay   string   `json:"scheduled_at_display"`
	Duration             *int     `json:"duration"`
	DurationDisplay      string   `json:"duration_display"`
	PerformanceScore     *int     `json:"performance_score"`
	EnjoymentScore       *int     `json:"enjoyment_score"`
	AverageScore         *float64 `json:"average_score"`
	HasScores            bool     `json:"has_scores"`
	Upcoming             bool     `json:"upcoming"`
	Completed            bool     `json:"completed"`
	Notes                string   `json:"notes"`
	Transcript           string   `json:"transcript"`
}

func newInterviewView(i interview.Interview, now time.Time) interviewView {
	scheduled := i.ScheduledAt.In(now.Location())
	return interviewView{
		ID:                   i.ID,
		RoundNumber:          i.RoundNumber,
		InterviewType:        i.InterviewType,
		InterviewTypeDisplay: interview.TypeDisplay(i.InterviewType),
		DisplayTitle:         i.DisplayTitle(),
		ScheduledAt:          scheduled.Format(time.RFC3339),
		ScheduledAtDisplay:   scheduled.Format(calendar.DateTimeFormat),
		Duration:             i.Duration,
		DurationDisplay:      i.DurationDisplay(),
		PerformanceScore:     i.PerformanceScore,
		EnjoymentScore:       i.EnjoymentScore,
		AverageScore:         i.AverageScore(),
		HasScores:            i.HasScores(),
		Upcoming:             i.Upcoming(now),
		Completed:            i.Completed(now),
		Notes:                i.Notes,
		Transcript:           i.Transcript,
	}
}

type jobDetailsView struct {
	Job            jobView         `json:"job_opening"`
	Contacts       []contactView   `json:"contacts"`
	Messages       []messageView   `json:"messages"`
	Tasks          []taskView      `json:"tasks"`
	Interviews     []interviewView `json:"interviews"`
	Statuses       []string        `json:"statuses"`
	InterviewTypes []string        `json:"interview_types"`
}

func newJobDetailsView(d *app.JobDetails, now time.Time) jobDetailsView {
	today := common.DateOf(now)
	view := jobDetailsView{
		Job:            newJobView(d.Listing, today),
		Contacts:       newContactViews(d.Contacts),
		Messages:       make([]messageView, 0, len(d.Messages)),
		Tasks:          newTaskViews(d.Tasks, today),
		Interviews:     make([]interviewView, 0, len(d.Interviews)),
		Statuses:       statusValues(),
		InterviewTypes: interview.CommonTypes,
	}
	for _, m := range d.Messages {
		view.Messages = append(view.Messages, newMessageView(m, now))
	}
	for _, i := range d.Interviews {
		view.Interviews = append(view.Interviews, newInterviewView(i, now))
	}
	return view
}

func statusValues() []string {
	values := make([]string, 0, len(application.Statuses))
	for _, s := range application.Statuses {
		values = append(values, string(s))
	}
	return values
}

func formatDate(d *common.Date) string {
	if d == nil {
		return ""
	}
	return d.Format(calendar.DateFormat)
}

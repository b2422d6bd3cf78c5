package handlers

import (
	"net/http"
	"time"

	"jobtracker/internal/app"
	"jobtracker/internal/domain/calendar"
	"jobtracker/internal/http/response"
)

type DashboardHandler struct {
	dashboard *app.DashboardService
	clock     app.Clock
}

func NewDashboardHandler(dashboard *app.DashboardService, clock app.Clock) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, clock: clock}
}

type upcomingInterviewView struct {
	interviewView
	JobOpeningID int64  `json:"job_opening_id"`
	JobTitle     string `json:"job_title"`
	CompanyName  string `json:"company_name"`
}

func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	overview, err := h.dashboard.Overview(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	now := h.clock.Current()
	today := h.clock.Today()
	upcoming := make([]upcomingInterviewView, 0, len(overview.UpcomingInterviews))
	for _, entry := range overview.UpcomingInterviews {
		upcoming = append(upcoming, newUpcomingInterviewView(entry, now))
	}
	response.Render(w, r, "Dashboard/Index", map[string]any{
		"active_applications_count": overview.ActiveApplicationsCount,
		"incomplete_tasks_count":    overview.IncompleteTasksCount,
		"overdue_tasks_count":       overview.OverdueTasksCount,
		"needs_follow_up":           newJobViews(overview.NeedsFollowUp, today),
		"recent_applications":       newJobViews(overview.RecentApplications, today),
		"upcoming_interviews":       upcoming,
		"overdue_tasks":             newTaskViews(overview.OverdueTasks, today),
	})
}

func newUpcomingInterviewView(entry calendar.InterviewEntry, now time.Time) upcomingInterviewView {
	return upcomingInterviewView{
		interviewView: newInterviewView(entry.Interview, now),
		JobOpeningID:  entry.JobOpeningID,
		JobTitle:      entry.JobTitle,
		CompanyName:   entry.CompanyName,
	}
}

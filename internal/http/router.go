package http

import (
	"net/http"
	"time"

	"jobtracker/internal/http/handlers"
	"jobtracker/internal/http/metrics"
	httpmw "jobtracker/internal/http/middleware"
)

type RouterDependencies struct {
	SessionHandler   *handlers.SessionHandler
	DashboardHandler *handlers.DashboardHandler
	CalendarHandler  *handlers.CalendarHandler
	CompanyHandler   *handlers.CompanyHandler
	ContactHandler   *handlers.ContactHandler
	JobHandler       *handlers.JobHandler
	InterviewHandler *handlers.InterviewHandler
	MessageHandler   *handlers.MessageHandler
	TaskHandler      *handlers.TaskHandler
	HealthHandler    *handlers.HealthHandler
	AuthMiddleware   *httpmw.AuthMiddleware
	Limiter          httpmw.Limiter
	LoginPerMinute   int
	Metrics          *metrics.Collector
	RequestTimeout   time.Duration
}

const maxBodyBytes = 1 << 20

const LoginPath = "/session/new"

func NewRouter(deps RouterDependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /up", deps.HealthHandler.Up)
	mux.Handle("GET /metrics", metrics.NewHandler(deps.Metrics))
	mux.HandleFunc("GET "+LoginPath, deps.SessionHandler.New)
	loginLimit := httpmw.RateLimit(deps.Limiter, loginKey, deps.LoginPerMinute, time.Minute)
	mux.Handle("POST /session", loginLimit(http.HandlerFunc(deps.SessionHandler.Create)))
	mux.HandleFunc("DELETE /session", deps.SessionHandler.Delete)

	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, deps.AuthMiddleware.Authenticate(h))
	}

	protected("GET /{$}", redirectTo("/dashboard"))
	protected("GET /dashboard", deps.DashboardHandler.Index)
	protected("GET /calendar", deps.CalendarHandler.Index)
	protected("PATCH /calendar/tasks/{id}", deps.TaskHandler.UpdateFromCalendar)

	protected("GET /companies", deps.CompanyHandler.Index)
	protected("POST /companies", deps.CompanyHandler.Create)
	protected("GET /companies/{id}", deps.CompanyHandler.Show)
	protected("PATCH /companies/{id}", deps.CompanyHandler.Update)
	protected("DELETE /companies/{id}", deps.CompanyHandler.Delete)

	protected("GET /contacts", deps.ContactHandler.Index)
	protected("POST /contacts", deps.ContactHandler.Create)
	protected("GET /contacts/{id}", deps.ContactHandler.Show)
	protected("PATCH /contacts/{id}", deps.ContactHandler.Update)

	protected("GET /jobs", deps.JobHandler.Index)
	protected("POST /jobs", deps.JobHandler.Create)
	protected("POST /jobs/import", deps.JobHandler.Import)
	protected("GET /jobs/{id}", deps.JobHandler.Show)
	protected("PATCH /jobs/{id}", deps.JobHandler.Update)
	protected("DELETE /jobs/{id}", deps.JobHandler.Delete)
	protected("PATCH /jobs/{id}/status", deps.JobHandler.UpdateStatus)
	protected("POST /jobs/{id}/toggle_task", deps.JobHandler.ToggleTask)
	protected("POST /jobs/{id}/notion", deps.JobHandler.Export)
	protected("POST /jobs/{id}/messages", deps.MessageHandler.Create)
	protected("POST /jobs/{id}/interviews", deps.InterviewHandler.Create)
	protected("PATCH /jobs/{id}/interviews/{interview_id}", deps.InterviewHandler.Update)
	protected("DELETE /jobs/{id}/interviews/{interview_id}", deps.InterviewHandler.Delete)
	protected("POST /jobs/{id}/tasks", deps.TaskHandler.Create)
	protected("POST /tasks", deps.TaskHandler.Create)

	return httpmw.Chain(mux,
		httpmw.RequestID,
		httpmw.Logging,
		httpmw.BodyLimit(maxBodyBytes),
		httpmw.Recover,
		httpmw.Metrics(deps.Metrics),
		httpmw.Timeout(deps.RequestTimeout),
	)
}

func loginKey(r *http.Request) string {
	return "login:" + httpmw.ClientIP(r)
}

func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusFound)
	}
}

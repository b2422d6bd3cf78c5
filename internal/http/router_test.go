package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobtracker/internal/app"
	apphttp "jobtracker/internal/http"
	"jobtracker/internal/http/handlers"
	"jobtracker/internal/http/metrics"
	httpmw "jobtracker/internal/http/middleware"
	"jobtracker/internal/integration/posting"
	"jobtracker/internal/repository/sqlstore/sqlstoretest"
)

type testServer struct {
	handler http.Handler
	cookie  *http.Cookie
	metrics *metrics.Collector
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := sqlstoretest.New(t)
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	clock := app.Clock{Now: func() time.Time { return now }, Location: time.UTC}
	limiter := httpmw.NewRateLimiter()
	collector := metrics.NewCollector()

	auth := app.NewAuthService(store, nil, time.Hour)
	if _, err := auth.CreateUser(context.Background(), "me@example.com", "correct horse"); err != nil {
		t.Fatalf("create user: %v", err)
	}
	companies := app.NewCompanyService(store)
	contacts := app.NewContactService(store)
	jobs := app.NewJobService(store, clock)

	handler := apphttp.NewRouter(apphttp.RouterDependencies{
		SessionHandler:   handlers.NewSessionHandler(auth, false),
		DashboardHandler: handlers.NewDashboardHandler(app.NewDashboardService(store, clock), clock),
		CalendarHandler:  handlers.NewCalendarHandler(app.NewCalendarService(store, clock)),
		CompanyHandler:   handlers.NewCompanyHandler(companies),
		ContactHandler:   handlers.NewContactHandler(contacts, companies),
		JobHandler: handlers.NewJobHandler(jobs, companies, contacts,
			app.NewImportService(store, posting.NewClient(time.Second), nil),
			app.NewExportService(store, nil, nil), clock),
		InterviewHandler: handlers.NewInterviewHandler(app.NewInterviewService(store, clock), clock),
		MessageHandler:   handlers.NewMessageHandler(app.NewMessageService(store, clock), clock),
		TaskHandler:      handlers.NewTaskHandler(app.NewTaskService(store, clock), clock),
		HealthHandler:    handlers.NewHealthHandler(store.DB()),
		AuthMiddleware:   httpmw.NewAuthMiddleware(auth, apphttp.LoginPath),
		Limiter:          limiter,
		LoginPerMinute:   3,
		Metrics:          collector,
		RequestTimeout:   5 * time.Second,
	})
	return &testServer{handler: handler, metrics: collector}
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/session", `{"email_address":"me@example.com","password":"correct horse"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == httpmw.SessionCookieName {
			s.cookie = cookie
		}
	}
	if s.cookie == nil || s.cookie.Value == "" || !s.cookie.HttpOnly {
		t.Fatalf("expected http-only session cookie, got %+v", s.cookie)
	}
}

var jsonHeaders = map[string]string{"Accept": "application/json"}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestPagesRequireSession(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/dashboard", "", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != apphttp.LoginPath {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	rec = srv.do(t, http.MethodPost, "/jobs", `{}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, "/session", `{"email_address":"me@example.com","password":"nope"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", rec.Code)
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	decode(t, rec, &body)
	if body.Error != "unauthorized" || body.Message != "try another email address or password" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestLoginPageShell(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, apphttp.LoginPath, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("expected html, got %q", rec.Header().Get("Content-Type"))
	}

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if title := doc.Find("title").Text(); !strings.HasPrefix(title, "Sessions") {
		t.Fatalf("unexpected title: %q", title)
	}
	data, ok := doc.Find("#app").Attr("data-page")
	if !ok {
		t.Fatalf("missing data-page attribute")
	}
	var page struct {
		Component string `json:"component"`
		URL       string `json:"url"`
	}
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		t.Fatalf("decode page %q: %v", data, err)
	}
	if page.Component != "Sessions/New" || page.URL != apphttp.LoginPath {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	srv := newTestServer(t)
	body := `{"email_address":"me@example.com","password":"wrong"}`
	for i := 0; i < 3; i++ {
		if rec := srv.do(t, http.MethodPost, "/session", body, nil); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rec.Code)
		}
	}
	rec := srv.do(t, http.MethodPost, "/session", body, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestJobLifecycle(t *testing.T) {
	srv := newTestServer(t)
	srv.login(t)

	rec := srv.do(t, http.MethodPost, "/jobs", `{
		"job_opening": {"title": "Backend Engineer", "tech_stack": "Go, Postgres"},
		"new_company_attributes": {"name": "Acme"},
		"application_process": {"status": "draft"}
	}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create job: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID                int64    `json:"id"`
		CompanyName       string   `json:"company_name"`
		IsPublic          bool     `json:"is_public"`
		TechStackList     []string `json:"tech_stack_list"`
		ApplicationStatus string   `json:"application_status"`
	}
	decode(t, rec, &created)
	if created.CompanyName != "Acme" || !created.IsPublic || created.ApplicationStatus != "draft" || len(created.TechStackList) != 2 {
		t.Fatalf("unexpected job: %+v", created)
	}
	jobPath := "/jobs/" + strconv.FormatInt(created.ID, 10)

	rec = srv.do(t, http.MethodPatch, jobPath+"/status", `{"status":"applied"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status: %d %s", rec.Code, rec.Body.String())
	}
	var status struct {
		Success   bool   `json:"success"`
		Status    string `json:"status"`
		AppliedOn string `json:"applied_on"`
	}
	decode(t, rec, &status)
	if !status.Success || status.Status != "applied" || status.AppliedOn != "2024-06-10" {
		t.Fatalf("unexpected status response: %+v", status)
	}

	rec = srv.do(t, http.MethodPatch, jobPath+"/status", `{"status":"ghosted"}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var failed struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
	}
	decode(t, rec, &failed)
	if failed.Success || len(failed.Errors) == 0 {
		t.Fatalf("unexpected failure body: %+v", failed)
	}

	rec = srv.do(t, http.MethodGet, jobPath, "", jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("show job: %d", rec.Code)
	}
	var page struct {
		Component string `json:"component"`
	}
	decode(t, rec, &page)
	if page.Component != "JobOpenings/Show" {
		t.Fatalf("unexpected component: %s", page.Component)
	}

	rec = srv.do(t, http.MethodPost, jobPath+"/tasks", `{"task":{"title":"Send follow-up","due_date":"2024-06-09"}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: %d %s", rec.Code, rec.Body.String())
	}
	var createdTask struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &createdTask)

	rec = srv.do(t, http.MethodPost, jobPath+"/toggle_task", `{"task_id":`+strconv.FormatInt(createdTask.ID, 10)+`}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle task: %d %s", rec.Code, rec.Body.String())
	}
	var toggled struct {
		Completed bool   `json:"completed"`
		Status    string `json:"status"`
	}
	decode(t, rec, &toggled)
	if !toggled.Completed || toggled.Status != "Completed" {
		t.Fatalf("unexpected toggle response: %+v", toggled)
	}

	rec = srv.do(t, http.MethodPost, jobPath+"/notion", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without notion, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodDelete, jobPath, "", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete job: %d", rec.Code)
	}
	rec = srv.do(t, http.MethodGet, jobPath, "", jsonHeaders)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCalendarFeed(t *testing.T) {
	srv := newTestServer(t)
	srv.login(t)

	rec := srv.do(t, http.MethodPost, "/tasks", `{"task":{"title":"Update resume","due_date":"2024-06-12"}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, "/calendar", "", map[string]string{"X-Inertia": "true"})
	if rec.Code != http.StatusOK || rec.Header().Get("X-Inertia") != "true" {
		t.Fatalf("unexpected calendar response: %d %v", rec.Code, rec.Header())
	}
	var page struct {
		Component string `json:"component"`
		Props     struct {
			CurrentDate string `json:"current_date"`
			Events      []struct {
				ID    string    `json:"id"`
				Type  string    `json:"type"`
				Start time.Time `json:"start"`
			} `json:"events"`
		} `json:"props"`
	}
	decode(t, rec, &page)
	if page.Component != "Calendar/Index" || page.Props.CurrentDate != "2024-06-10" {
		t.Fatalf("unexpected page: %+v", page)
	}
	if len(page.Props.Events) != 1 || page.Props.Events[0].Type != "task" || page.Props.Events[0].Start.Hour() != 12 {
		t.Fatalf("unexpected events: %+v", page.Props.Events)
	}
}

func TestCompanyValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	srv.login(t)

	rec := srv.do(t, http.MethodPost, "/companies", `{"company":{"name":"","website":"not a url"}}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	decode(t, rec, &body)
	if body.Error != "validation_error" || body.Fields["name"] != "can't be blank" || body.Fields["website"] == "" {
		t.Fatalf("unexpected body: %+v", body)
	}

	rec = srv.do(t, http.MethodGet, "/companies/abc", "", jsonHeaders)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for bad id, got %d", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/up", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response: %d %q", rec.Code, rec.Body.String())
	}
	rec = srv.do(t, http.MethodGet, "/metrics", "", nil)
	if !strings.Contains(rec.Body.String(), "jobtracker_http_requests_total 1") {
		t.Fatalf("unexpected metrics: %s", rec.Body.String())
	}
}

func TestRootRedirectsToDashboard(t *testing.T) {
	srv := newTestServer(t)
	srv.login(t)
	rec := srv.do(t, http.MethodGet, "/", "", nil)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/dashboard" {
		t.Fatalf("unexpected root response: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = srv.do(t, http.MethodGet, "/dashboard", "", jsonHeaders)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: %d %s", rec.Code, rec.Body.String())
	}
}

func TestInterviewRatings(t *testing.T) {
	srv := newTestServer(t)
	srv.login(t)

	rec := srv.do(t, http.MethodPost, "/jobs", `{"job_opening":{"title":"Engineer"},"new_company_attributes":{"name":"Globex"}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create job: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &created)
	path := "/jobs/" + strconv.FormatInt(created.ID, 10) + "/interviews"

	rec = srv.do(t, http.MethodPost, path, `{"interview":{"round_number":1,"interview_type":"technical","scheduled_at":"2024-06-12T10:00","enjoyment_rating":7}}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for rating out of range, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, path, `{"interview":{"round_number":1,"interview_type":"technical","scheduled_at":"2024-06-01T10:00"}}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for past interview, got %d", rec.Code)
	}

	rec = srv.do(t, http.MethodPost, path, `{"interview":{"round_number":1,"interview_type":"technical","scheduled_at":"2024-06-12T10:00","performance_rating":4}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create interview: %d %s", rec.Code, rec.Body.String())
	}
	var view struct {
		DisplayTitle     string `json:"display_title"`
		DurationDisplay  string `json:"duration_display"`
		PerformanceScore *int   `json:"performance_score"`
		EnjoymentScore   *int   `json:"enjoyment_score"`
		Upcoming         bool   `json:"upcoming"`
	}
	decode(t, rec, &view)
	if view.DisplayTitle != "Round 1: Technical" || view.DurationDisplay != "Not specified" || !view.Upcoming {
		t.Fatalf("unexpected interview view: %+v", view)
	}
	if view.PerformanceScore == nil || *view.PerformanceScore != 8 || view.EnjoymentScore != nil {
		t.Fatalf("unexpected scores: %+v", view)
	}

	rec = srv.do(t, http.MethodGet, "/calendar", "", jsonHeaders)
	var page struct {
		Props struct {
			Events []struct {
				Type  string    `json:"type"`
				Start time.Time `json:"start"`
				End   time.Time `json:"end"`
			} `json:"events"`
		} `json:"props"`
	}
	decode(t, rec, &page)
	if len(page.Props.Events) != 1 || page.Props.Events[0].Type != "interview" {
		t.Fatalf("unexpected events: %+v", page.Props.Events)
	}
	if got := page.Props.Events[0].End.Sub(page.Props.Events[0].Start); got != time.Hour {
		t.Fatalf("expected default hour slot, got %v", got)
	}
}

func TestMessageLog(t *testing.T) {
	srv := newTestServer(t)
	srv.login(t)

	var company, sender, opening struct {
		ID int64 `json:"id"`
	}
	rec := srv.do(t, http.MethodPost, "/companies", `{"company":{"name":"Initech"}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create company: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &company)
	companyID := strconv.FormatInt(company.ID, 10)

	rec = srv.do(t, http.MethodPost, "/contacts", `{"contact":{"name":"Bill","company_id":`+companyID+`}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create contact: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &sender)
	contactID := strconv.FormatInt(sender.ID, 10)

	rec = srv.do(t, http.MethodPost, "/jobs", `{"job_opening":{"title":"Engineer","company_id":`+companyID+`}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create job: %d %s", rec.Code, rec.Body.String())
	}
	decode(t, rec, &opening)
	path := "/jobs/" + strconv.FormatInt(opening.ID, 10) + "/messages"

	rec = srv.do(t, http.MethodPost, path, `{"message":{"contact_id":`+contactID+`,"content":"Applied today","direction":"sent","sent_at":"2024-06-09"}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("date-only sent_at: %d %s", rec.Code, rec.Body.String())
	}
	var view struct {
		ContactName      string `json:"contact_name"`
		SentAt           string `json:"sent_at"`
		DisplayDirection string `json:"display_direction"`
		DaysAgo          int    `json:"days_ago"`
	}
	decode(t, rec, &view)
	if view.SentAt != "2024-06-09T00:00:00Z" || view.DaysAgo != 1 || view.ContactName != "Bill" || view.DisplayDirection != "To" {
		t.Fatalf("unexpected message: %+v", view)
	}

	rec = srv.do(t, http.MethodPost, path, `{"message":{"contact_id":`+contactID+`,"content":"Thanks, talk soon","direction":"received","sent_at":"2024-06-09T15:30"}}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("reply logged right after: %d %s", rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodPost, path, `{"message":{"contact_id":`+contactID+`,"content":"Undated","direction":"received"}}`, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 without sent_at, got %d %s", rec.Code, rec.Body.String())
	}
	var failed struct {
		Fields map[string]string `json:"fields"`
		Errors []string          `json:"errors"`
	}
	decode(t, rec, &failed)
	if failed.Fields["sent_at"] != "can't be blank" {
		t.Fatalf("unexpected errors: %+v", failed)
	}

	rec = srv.do(t, http.MethodGet, "/jobs/"+strconv.FormatInt(opening.ID, 10), "", jsonHeaders)
	var page struct {
		Props struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		} `json:"props"`
	}
	decode(t, rec, &page)
	if len(page.Props.Messages) != 2 || page.Props.Messages[0].Content != "Applied today" {
		t.Fatalf("unexpected messages: %+v", page.Props.Messages)
	}
}

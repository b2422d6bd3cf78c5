package handlers

import (
	"net/http"
	"strings"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/domain/application"
	"jobtracker/internal/domain/job"
	"jobtracker/internal/http/response"
)

type JobHandler struct {
	jobs      *app.JobService
	companies *app.CompanyService
	contacts  *app.ContactService
	imports   *app.ImportService
	exports   *app.ExportService
	clock     app.Clock
}

func NewJobHandler(jobs *app.JobService, companies *app.CompanyService, contacts *app.ContactService, imports *app.ImportService, exports *app.ExportService, clock app.Clock) *JobHandler {
	return &JobHandler{jobs: jobs, companies: companies, contacts: contacts, imports: imports, exports: exports, clock: clock}
}

type jobFields struct {
	CompanyID     int64  `json:"company_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Source        string `json:"source"`
	TechStack     string `json:"tech_stack"`
	Salary        string `json:"salary"`
	Location      string `json:"location"`
	MatchScore    *int   `json:"match_score"`
	InterestScore *int   `json:"interest_score"`
	IsPublic      *bool  `json:"is_public"`
}

type processFields struct {
	Status         string `json:"status"`
	AppliedOn      string `json:"applied_on"`
	JobPostedOn    string `json:"job_posted_on"`
	LastFollowUpOn string `json:"last_follow_up_on"`
	NextFollowUpOn string `json:"next_follow_up_on"`
}

type jobRequest struct {
	JobOpening           jobFields      `json:"job_opening"`
	NewCompanyAttributes *companyFields `json:"new_company_attributes"`
	ContactIDs           []int64        `json:"contact_ids"`
	NewContactAttributes *contactFields `json:"new_contact_attributes"`
	ApplicationProcess   *processFields `json:"application_process"`
}

func (req jobRequest) input() (app.JobInput, error) {
	f := req.JobOpening
	input := app.JobInput{
		Job: job.JobOpening{
			CompanyID:     f.CompanyID,
			Title:         f.Title,
			Description:   f.Description,
			Source:        f.Source,
			TechStack:     f.TechStack,
			Salary:        f.Salary,
			Location:      f.Location,
			MatchScore:    f.MatchScore,
			InterestScore: f.InterestScore,
			IsPublic:      f.IsPublic == nil || *f.IsPublic,
		},
		ContactIDs: req.ContactIDs,
	}
	if req.NewCompanyAttributes != nil {
		c := req.NewCompanyAttributes.company()
		input.NewCompany = &c
	}
	if req.NewContactAttributes != nil {
		c := req.NewContactAttributes.contact()
		input.NewContact = &c
	}
	if p := req.ApplicationProcess; p != nil {
		var v common.Validation
		input.Process = &app.ProcessInput{
			Status:         application.Status(strings.ToLower(strings.TrimSpace(p.Status))),
			AppliedOn:      parseDate(&v, "applied_on", p.AppliedOn),
			JobPostedOn:    parseDate(&v, "job_posted_on", p.JobPostedOn),
			LastFollowUpOn: parseDate(&v, "last_follow_up_on", p.LastFollowUpOn),
			NextFollowUpOn: parseDate(&v, "next_follow_up_on", p.NextFollowUpOn),
		}
		if err := v.Err(); err != nil {
			return app.JobInput{}, err
		}
	}
	return input, nil
}

type statusRequest struct {
	Status string `json:"status"`
}

type toggleTaskRequest struct {
	TaskID int64 `json:"task_id"`
}

type importRequest struct {
	URL string `json:"url"`
}

func (h *JobHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	listings, err := h.jobs.List(ctx)
	if err != nil {
		response.Error(w, err)
		return
	}
	companies, err := h.companies.List(ctx)
	if err != nil {
		response.Error(w, err)
		return
	}
	contacts, err := h.contacts.List(ctx)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Render(w, r, "JobOpenings/Index", map[string]any{
		"job_openings": newJobViews(listings, h.clock.Today()),
		"companies":    companies,
		"contacts":     newContactViews(contacts),
		"statuses":     statusValues(),
	})
}

func (h *JobHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	details, err := h.jobs.Details(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Render(w, r, "JobOpenings/Show", newJobDetailsView(details, h.clock.Current()))
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	input, err := req.input()
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, newJobView(*created, h.clock.Today()))
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	input, err := req.input()
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), id, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newJobView(*updated, h.clock.Today()))
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

// UpdateStatus answers {success, status, applied_on} or 422 {success:false, errors}.
func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	process, err := h.jobs.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if common.Is(err, common.CodeValidation) {
			response.JSON(w, http.StatusUnprocessableEntity, map[string]any{
				"success": false,
				"errors":  response.Messages(err),
			})
			return
		}
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"status":     process.Status,
		"applied_on": process.AppliedOn,
	})
}

func (h *JobHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req toggleTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	toggled, err := h.jobs.ToggleTask(r.Context(), id, req.TaskID)
	if err != nil {
		response.Error(w, err)
		return
	}
	status := toggled.Status(h.clock.Today())
	response.JSON(w, http.StatusOK, map[string]any{
		"id":        toggled.ID,
		"completed": toggled.Completed,
		"status":    status.Display(),
	})
}

// Import reads a posting URL and returns job form fields; nothing is saved.
func (h *JobHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.imports.Import(r.Context(), req.URL)
	if err != nil {
		response.Error(w, err)
		return
	}
	p := result.Posting
	fields := map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"source":      p.URL,
		"salary":      p.Salary,
		"location":    p.Location,
		"company_id":  result.CompanyID,
	}
	payload := map[string]any{"job_opening": fields, "posting": p}
	if result.CompanyID == nil && p.CompanyName != "" {
		payload["new_company_attributes"] = map[string]string{"name": p.CompanyName}
	}
	response.JSON(w, http.StatusOK, payload)
}

func (h *JobHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	pageID, err := h.exports.ExportJob(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"notion_page_id": pageID})
}


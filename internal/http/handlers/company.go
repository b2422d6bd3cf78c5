package handlers

import (
	"net/http"

	"jobtracker/internal/app"
	"jobtracker/internal/domain/company"
	"jobtracker/internal/http/response"
)

type CompanyHandler struct {
	companies *app.CompanyService
}

func NewCompanyHandler(companies *app.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type companyFields struct {
	Name      string `json:"name"`
	Industry  string `json:"industry"`
	Website   string `json:"website"`
	LinkedIn  string `json:"linkedin"`
	Notes     string `json:"notes"`
	TechStack string `json:"tech_stack"`
}

func (f companyFields) company() company.Company {
	return company.Company{
		Name:      f.Name,
		Industry:  f.Industry,
		Website:   f.Website,
		LinkedIn:  f.LinkedIn,
		Notes:     f.Notes,
		TechStack: f.TechStack,
	}
}

type companyRequest struct {
	Company companyFields `json:"company"`
}

func (h *CompanyHandler) Index(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Render(w, r, "Companies/Index", map[string]any{"companies": companies})
}

func (h *CompanyHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	found, err := h.companies.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, found)
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.companies.Create(r.Context(), req.Company.company())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	c := req.Company.company()
	c.ID = id
	updated, err := h.companies.Update(r.Context(), c)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.companies.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.NoContent(w)
}

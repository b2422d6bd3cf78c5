package handlers

import (
	"net/http"

	"jobtracker/internal/app"
	"jobtracker/internal/domain/contact"
	"jobtracker/internal/http/response"
)

type ContactHandler struct {
	contacts  *app.ContactService
	companies *app.CompanyService
}

func NewContactHandler(contacts *app.ContactService, companies *app.CompanyService) *ContactHandler {
	return &ContactHandler{contacts: contacts, companies: companies}
}

type contactFields struct {
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	LinkedIn  string `json:"linkedin"`
	Notes     string `json:"notes"`
}

func (f contactFields) contact() contact.Contact {
	return contact.Contact{
		CompanyID: f.CompanyID,
		Name:      f.Name,
		Role:      f.Role,
		Email:     f.Email,
		LinkedIn:  f.LinkedIn,
		Notes:     f.Notes,
	}
}

type contactRequest struct {
	Contact contactFields `json:"contact"`
}

func (h *ContactHandler) Index(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	companies, err := h.companies.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Render(w, r, "Contacts/Index", map[string]any{
		"contacts":  newContactViews(contacts),
		"companies": companies,
	})
}

func (h *ContactHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	found, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, contactView{Contact: *found, FullContactInfo: found.FullContactInfo()})
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.contacts.Create(r.Context(), req.Contact.contact())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	c := req.Contact.contact()
	c.ID = id
	updated, err := h.contacts.Update(r.Context(), c)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

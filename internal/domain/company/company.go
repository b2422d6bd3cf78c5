package company

import (
	"strings"
	"time"

	"jobtracker/internal/common"
)

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Industry  string    `json:"industry"`
	Website   string    `json:"website"`
	LinkedIn  string    `json:"linkedin"`
	Notes     string    `json:"notes"`
	TechStack string    `json:"tech_stack"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is a company row of the index page.
type Summary struct {
	Company
	JobOpeningsCount        int `json:"job_openings_count"`
	ContactsCount           int `json:"contacts_count"`
	ActiveApplicationsCount int `json:"active_applications_count"`
}

func (c *Company) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Industry = strings.TrimSpace(c.Industry)
	c.Website = strings.TrimSpace(c.Website)
	c.LinkedIn = strings.TrimSpace(c.LinkedIn)
}

func (c Company) Validate() error {
	var v common.Validation
	v.Required("name", c.Name)
	v.MaxLength("name", c.Name)
	v.MaxLength("industry", c.Industry)
	v.HTTPURL("website", c.Website)
	v.HTTPURL("linkedin", c.LinkedIn)
	return v.Err()
}

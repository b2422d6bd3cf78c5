package contact

import (
	"strings"
	"time"

	"jobtracker/internal/common"
)

type Contact struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Email       string    `json:"email"`
	LinkedIn    string    `json:"linkedin"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Contact) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Role = strings.TrimSpace(c.Role)
	c.Email = strings.TrimSpace(c.Email)
	c.LinkedIn = strings.TrimSpace(c.LinkedIn)
}

func (c Contact) Validate() error {
	var v common.Validation
	if c.CompanyID <= 0 {
		v.Add("company", "must exist")
	}
	v.Required("name", c.Name)
	v.MaxLength("name", c.Name)
	v.MaxLength("role", c.Role)
	v.Email("email", c.Email)
	v.HTTPURL("linkedin", c.LinkedIn)
	return v.Err()
}

// FullContactInfo renders "Ada Lovelace (CTO) at Acme".
func (c Contact) FullContactInfo() string {
	info := c.Name
	if c.Role != "" {
		info += " (" + c.Role + ")"
	}
	if c.CompanyName != "" {
		info += " at " + c.CompanyName
	}
	return info
}

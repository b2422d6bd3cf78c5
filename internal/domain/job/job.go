package job

import (
	"strconv"
	"strings"
	"time"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/application"
)

type JobOpening struct {
	ID            int64     `json:"id"`
	CompanyID     int64     `json:"company_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Source        string    `json:"source"`
	TechStack     string    `json:"tech_stack"`
	Salary        string    `json:"salary"`
	Location      string    `json:"location"`
	MatchScore    *int      `json:"match_score"`
	InterestScore *int      `json:"interest_score"`
	IsPublic      bool      `json:"is_public"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Listing is a job opening joined with its company and process.
type Listing struct {
	JobOpening
	CompanyName string               `json:"company_name"`
	Process     *application.Process `json:"application_process"`
}

func (j *JobOpening) Normalize() {
	j.Title = strings.TrimSpace(j.Title)
	j.Source = strings.TrimSpace(j.Source)
}

func (j JobOpening) Validate() error {
	var v common.Validation
	if j.CompanyID <= 0 {
		v.Add("company", "must exist")
	}
	v.Required("title", j.Title)
	v.MaxLength("title", j.Title)
	v.MaxLength("source", j.Source)
	v.Range("match_score", j.MatchScore, 0, 100)
	v.Range("interest_score", j.InterestScore, 0, 100)
	return v.Err()
}

// DisplayTitle renders "Backend Engineer at Acme".
func DisplayTitle(title, companyName string) string {
	if companyName == "" {
		return title
	}
	return title + " at " + companyName
}

func (l Listing) DisplayTitle() string {
	return DisplayTitle(l.Title, l.CompanyName)
}

// ApplicationStatus reports not_applied when no process exists.
func (l Listing) ApplicationStatus() string {
	if l.Process == nil {
		return application.NotApplied
	}
	return string(l.Process.Status)
}

// ScoreSummary renders "Match: 80%, Interest: 90%" from the scores that are set.
func (j JobOpening) ScoreSummary() string {
	parts := make([]string, 0, 2)
	if j.MatchScore != nil {
		parts = append(parts, "Match: "+strconv.Itoa(*j.MatchScore)+"%")
	}
	if j.InterestScore != nil {
		parts = append(parts, "Interest: "+strconv.Itoa(*j.InterestScore)+"%")
	}
	return strings.Join(parts, ", ")
}

// TechStackList splits the comma separated tech stack.
func TechStackList(value string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

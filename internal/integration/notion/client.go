package notion

import (
	"context"
	"errors"
	"strings"
	"time"

	gnt "github.com/dstotijn/go-notion"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/job"
)

var ErrNotConfigured = errors.New("notion export is not configured")

// Exporter writes a job opening as a row of a Notion database.
type Exporter interface {
	ExportJob(ctx context.Context, listing job.Listing) (string, error)
}

type Client struct {
	api        *gnt.Client
	databaseID string
}

func NewClient(token, databaseID string) *Client {
	return &Client{
		api:        gnt.NewClient(strings.TrimSpace(token)),
		databaseID: strings.TrimSpace(databaseID),
	}
}

func (c *Client) ExportJob(ctx context.Context, listing job.Listing) (string, error) {
	if c == nil || c.databaseID == "" {
		return "", ErrNotConfigured
	}
	props := PageProperties(listing)
	page, err := c.api.CreatePage(ctx, gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               c.databaseID,
		DatabasePageProperties: &props,
	})
	if err != nil {
		return "", err
	}
	return page.ID, nil
}

// PageProperties maps a listing onto the columns of the job database.
// Empty values are left out so Notion keeps its column defaults.
func PageProperties(listing job.Listing) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{
		"Position": gnt.DatabasePageProperty{Title: richText(listing.Title)},
	}
	setText(props, "Company", listing.CompanyName)
	setText(props, "Location", listing.Location)
	setText(props, "Salary", listing.Salary)
	setText(props, "Tech Stack", listing.TechStack)
	if common.IsHTTPURL(listing.Source) {
		source := listing.Source
		props["Job Posting"] = gnt.DatabasePageProperty{URL: &source}
	} else {
		setText(props, "Source", listing.Source)
	}
	if listing.MatchScore != nil {
		score := float64(*listing.MatchScore)
		props["Match Score"] = gnt.DatabasePageProperty{Number: &score}
	}
	if listing.InterestScore != nil {
		score := float64(*listing.InterestScore)
		props["Interest Score"] = gnt.DatabasePageProperty{Number: &score}
	}

	process := listing.Process
	if process == nil {
		props["Stage"] = gnt.DatabasePageProperty{Select: &gnt.SelectOptions{Name: common.Humanize(listing.ApplicationStatus())}}
		return props
	}
	props["Stage"] = gnt.DatabasePageProperty{Select: &gnt.SelectOptions{Name: process.Status.Display()}}
	setDate(props, "Applied", process.AppliedOn)
	setDate(props, "Posted", process.JobPostedOn)
	setDate(props, "Next Follow Up", process.NextFollowUpOn)
	return props
}

func setText(props gnt.DatabasePageProperties, name, value string) {
	if value == "" {
		return
	}
	props[name] = gnt.DatabasePageProperty{RichText: richText(value)}
}

func setDate(props gnt.DatabasePageProperties, name string, value *common.Date) {
	if value == nil {
		return
	}
	props[name] = gnt.DatabasePageProperty{Date: &gnt.Date{Start: gnt.NewDateTime(value.In(time.UTC), false)}}
}

func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{{Text: &gnt.Text{Content: s}}}
}

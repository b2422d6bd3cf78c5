package posting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var ErrUnsupportedURL = errors.New("posting url must be http or https")

// Posting is what a job page tells us about the opening.
type Posting struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Posting, error)
}

type Client struct {
	httpClient *http.Client
	userAgent  string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "jobtracker/1.0 (+posting import)",
	}
}

func (c *Client) Fetch(ctx context.Context, rawURL string) (*Posting, error) {
	pageURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") || pageURL.Host == "" {
		return nil, ErrUnsupportedURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("posting: building request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting: executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("posting: unexpected status %d", resp.StatusCode)
	}
	return Parse(io.LimitReader(resp.Body, 2<<20), pageURL)
}

// Parse reads a job page. JSON-LD JobPosting data wins over Open Graph
// tags, which win over the plain document title.
func Parse(r io.Reader, pageURL *url.URL) (*Posting, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("posting: parsing HTML: %w", err)
	}
	p := &Posting{}
	if pageURL != nil {
		p.URL = pageURL.String()
		p.Source = strings.TrimPrefix(pageURL.Hostname(), "www.")
	}

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		ld, ok := decodeJobPosting(s.Text())
		if !ok {
			return true
		}
		p.Title = ld.Title
		p.CompanyName = ld.HiringOrganization.Name
		p.Location = ld.location()
		p.Salary = ld.salary()
		p.Description = htmlText(ld.Description)
		return false
	})

	if p.Title == "" {
		p.Title = firstNonEmpty(meta(doc, "og:title"), text(doc.Find("h1").First()), text(doc.Find("title").First()))
	}
	if p.CompanyName == "" {
		p.CompanyName = meta(doc, "og:site_name")
	}
	if p.Description == "" {
		p.Description = firstNonEmpty(meta(doc, "og:description"), meta(doc, "description"))
	}
	if p.Title == "" {
		return nil, errors.New("posting: no title found")
	}
	return p, nil
}

type jobPostingLD struct {
	Type               any    `json:"@type"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
	JobLocation json.RawMessage `json:"jobLocation"`
	BaseSalary  *struct {
		Currency string `json:"currency"`
		Value    struct {
			MinValue float64 `json:"minValue"`
			MaxValue float64 `json:"maxValue"`
			Value    float64 `json:"value"`
			UnitText string  `json:"unitText"`
		} `json:"value"`
	} `json:"baseSalary"`
}

type placeLD struct {
	Address struct {
		Locality string `json:"addressLocality"`
		Region   string `json:"addressRegion"`
		Country  any    `json:"addressCountry"`
	} `json:"address"`
}

func decodeJobPosting(raw string) (jobPostingLD, bool) {
	var ld jobPostingLD
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &ld); err != nil {
		return jobPostingLD{}, false
	}
	switch t := ld.Type.(type) {
	case string:
		return ld, t == "JobPosting"
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "JobPosting" {
				return ld, true
			}
		}
	}
	return jobPostingLD{}, false
}

func (ld jobPostingLD) location() string {
	if len(ld.JobLocation) == 0 {
		return ""
	}
	var places []placeLD
	if err := json.Unmarshal(ld.JobLocation, &places); err != nil {
		var place placeLD
		if err := json.Unmarshal(ld.JobLocation, &place); err != nil {
			return ""
		}
		places = []placeLD{place}
	}
	parts := make([]string, 0, 2)
	for _, place := range places {
		for _, part := range []string{place.Address.Locality, place.Address.Region} {
			if part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			break
		}
	}
	return strings.Join(parts, ", ")
}

func (ld jobPostingLD) salary() string {
	if ld.BaseSalary == nil {
		return ""
	}
	v := ld.BaseSalary.Value
	var amount string
	switch {
	case v.MinValue > 0 && v.MaxValue > 0:
		amount = fmt.Sprintf("%.0f-%.0f", v.MinValue, v.MaxValue)
	case v.Value > 0:
		amount = fmt.Sprintf("%.0f", v.Value)
	default:
		return ""
	}
	out := strings.TrimSpace(ld.BaseSalary.Currency + " " + amount)
	if v.UnitText != "" {
		out += " per " + strings.ToLower(v.UnitText)
	}
	return out
}

func meta(doc *goquery.Document, name string) string {
	selector := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, name, name)
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func text(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// htmlText strips markup from an HTML fragment.
func htmlText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return strings.TrimSpace(fragment)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return text(doc.Selection)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

package app

import (
	"context"
	"errors"
	"strings"

	"jobtracker/internal/common"
	"jobtracker/internal/integration/posting"
)

// ImportResult is a job form prefilled from a posting. CompanyID is set
// when a company with the posting's company name already exists.
type ImportResult struct {
	Posting   posting.Posting
	CompanyID *int64
}

type ImportService struct {
	store   Store
	fetcher posting.Fetcher
	logger  Logger
}

func NewImportService(store Store, fetcher posting.Fetcher, logger Logger) *ImportService {
	return &ImportService{store: store, fetcher: fetcher, logger: logger}
}

func (s *ImportService) Import(ctx context.Context, rawURL string) (*ImportResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !common.IsHTTPURL(rawURL) {
		return nil, common.NewValidationError("invalid url", map[string]string{"url": common.MsgInvalidURL})
	}
	p, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if errors.Is(err, posting.ErrUnsupportedURL) {
			return nil, common.NewValidationError("invalid url", map[string]string{"url": common.MsgInvalidURL})
		}
		if s.logger != nil {
			s.logger.Info("posting fetch failed", "url", rawURL, "error", err.Error())
		}
		return nil, common.NewError(common.CodeUnavailable, "could not read the job posting", err)
	}
	result := &ImportResult{Posting: *p}
	if p.CompanyName == "" {
		return result, nil
	}
	companies, err := s.store.Repositories().Companies.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		if strings.EqualFold(c.Name, p.CompanyName) {
			id := c.ID
			result.CompanyID = &id
			break
		}
	}
	return result, nil
}

package app

import (
	"context"
	"errors"

	"jobtracker/internal/common"
	"jobtracker/internal/integration/notion"
)

type ExportService struct {
	store    Store
	exporter notion.Exporter
	logger   Logger
}

func NewExportService(store Store, exporter notion.Exporter, logger Logger) *ExportService {
	return &ExportService{store: store, exporter: exporter, logger: logger}
}

// ExportJob creates the Notion row for a job once and remembers its page id.
func (s *ExportService) ExportJob(ctx context.Context, jobID int64) (string, error) {
	if s.exporter == nil {
		return "", common.NewError(common.CodeUnavailable, "notion export is not configured", nil)
	}
	repos := s.store.Repositories()
	listing, err := repos.Jobs.GetListing(ctx, jobID)
	if err != nil {
		return "", err
	}
	if listing.Process == nil {
		return "", common.NewError(common.CodeNotFound, "application process not found", nil)
	}
	if listing.Process.NotionPageID != "" {
		return "", common.NewError(common.CodeConflict, "job already exported to notion", nil)
	}
	pageID, err := s.exporter.ExportJob(ctx, *listing)
	if err != nil {
		if errors.Is(err, notion.ErrNotConfigured) {
			return "", common.NewError(common.CodeUnavailable, "notion export is not configured", err)
		}
		if s.logger != nil {
			s.logger.Error("notion export failed", "job_id", jobID, "error", err.Error())
		}
		return "", common.NewError(common.CodeUnavailable, "notion export failed", err)
	}
	if err := repos.Processes.SetNotionPageID(ctx, listing.Process.ID, pageID); err != nil {
		return "", err
	}
	return pageID, nil
}

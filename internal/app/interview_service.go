package app

import (
	"context"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/interview"
)

type InterviewService struct {
	store Store
	clock Clock
}

func NewInterviewService(store Store, clock Clock) *InterviewService {
	return &InterviewService{store: store, clock: clock}
}

// Create schedules an interview on the job's process. It must lie in the future.
func (s *InterviewService) Create(ctx context.Context, jobID int64, item interview.Interview) (*interview.Interview, error) {
	repos := s.store.Repositories()
	process, err := repos.Processes.GetByJobOpening(ctx, jobID)
	if err != nil {
		return nil, err
	}
	item.ApplicationProcessID = process.ID
	if err := item.ValidateNew(s.clock.Current()); err != nil {
		return nil, err
	}
	return repos.Interviews.Create(ctx, item)
}

func (s *InterviewService) Update(ctx context.Context, jobID int64, item interview.Interview) (*interview.Interview, error) {
	repos := s.store.Repositories()
	current, err := s.owned(ctx, repos, jobID, item.ID)
	if err != nil {
		return nil, err
	}
	item.ApplicationProcessID = current.ApplicationProcessID
	item.CreatedAt = current.CreatedAt
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return repos.Interviews.Update(ctx, item)
}

func (s *InterviewService) Delete(ctx context.Context, jobID, id int64) error {
	repos := s.store.Repositories()
	if _, err := s.owned(ctx, repos, jobID, id); err != nil {
		return err
	}
	return repos.Interviews.Delete(ctx, id)
}

// owned loads the interview and checks it belongs to the job.
func (s *InterviewService) owned(ctx context.Context, repos Repositories, jobID, id int64) (*interview.Interview, error) {
	process, err := repos.Processes.GetByJobOpening(ctx, jobID)
	if err != nil {
		return nil, err
	}
	current, err := repos.Interviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.ApplicationProcessID != process.ID {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	return current, nil
}

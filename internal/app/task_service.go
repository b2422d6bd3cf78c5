package app

import (
	"context"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/task"
)

type TaskService struct {
	store Store
	clock Clock
}

func NewTaskService(store Store, clock Clock) *TaskService {
	return &TaskService{store: store, clock: clock}
}

// Create adds a task owned by userID, attached to the job's process when jobID is set.
func (s *TaskService) Create(ctx context.Context, userID int64, jobID *int64, item task.Task) (*task.Task, error) {
	repos := s.store.Repositories()
	item.UserID = userID
	item.ApplicationProcessID = nil
	if jobID != nil {
		process, err := repos.Processes.GetByJobOpening(ctx, *jobID)
		if err != nil {
			return nil, err
		}
		processID := process.ID
		item.ApplicationProcessID = &processID
	}
	item.Normalize()
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return repos.Tasks.Create(ctx, item)
}

func (s *TaskService) ListForUser(ctx context.Context, userID int64) ([]task.Task, error) {
	return s.store.Repositories().Tasks.ListByUser(ctx, userID)
}

// SetCompleted is the calendar's completion toggle. Other users' tasks are not found.
func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID int64, completed bool) (*task.Task, error) {
	repo := s.store.Repositories().Tasks
	item, err := repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, common.NewError(common.CodeNotFound, "task not found", nil)
	}
	item.Completed = completed
	return repo.Update(ctx, *item)
}

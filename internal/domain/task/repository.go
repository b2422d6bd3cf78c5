package task

import "context"

type Repository interface {
	Create(ctx context.Context, item Task) (*Task, error)
	Update(ctx context.Context, item Task) (*Task, error)
	GetByID(ctx context.Context, id int64) (*Task, error)
	// ListByProcess is ordered by created_at.
	ListByProcess(ctx context.Context, processID int64) ([]Task, error)
	ListByUser(ctx context.Context, userID int64) ([]Task, error)
}

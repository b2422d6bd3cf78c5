package interview

import "context"

type Repository interface {
	Create(ctx context.Context, item Interview) (*Interview, error)
	Update(ctx context.Context, item Interview) (*Interview, error)
	GetByID(ctx context.Context, id int64) (*Interview, error)
	Delete(ctx context.Context, id int64) error
	// ListByProcess is ordered by scheduled_at.
	ListByProcess(ctx context.Context, processID int64) ([]Interview, error)
}

package application

import "context"

type Repository interface {
	Create(ctx context.Context, process Process) (*Process, error)
	Update(ctx context.Context, process Process) (*Process, error)
	GetByID(ctx context.Context, id int64) (*Process, error)
	GetByJobOpening(ctx context.Context, jobOpeningID int64) (*Process, error)
	List(ctx context.Context) ([]Process, error)
	SetNotionPageID(ctx context.Context, id int64, pageID string) error
}

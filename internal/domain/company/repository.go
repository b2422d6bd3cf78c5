package company

import "context"

type Repository interface {
	Create(ctx context.Context, company Company) (*Company, error)
	Update(ctx context.Context, company Company) (*Company, error)
	GetByID(ctx context.Context, id int64) (*Company, error)
	List(ctx context.Context) ([]Summary, error)
	// Delete removes the company with its contacts, job openings and
	// everything hanging below them.
	Delete(ctx context.Context, id int64) error
}

package contact

import "context"

type Repository interface {
	Create(ctx context.Context, contact Contact) (*Contact, error)
	Update(ctx context.Context, contact Contact) (*Contact, error)
	GetByID(ctx context.Context, id int64) (*Contact, error)
	List(ctx context.Context) ([]Contact, error)
	ListByIDs(ctx context.Context, ids []int64) ([]Contact, error)
	// ListByJobOpenings groups the linked contacts by job opening id.
	ListByJobOpenings(ctx context.Context, jobOpeningIDs []int64) (map[int64][]Contact, error)
}

package job

import "context"

type Repository interface {
	Create(ctx context.Context, opening JobOpening) (*JobOpening, error)
	Update(ctx context.Context, opening JobOpening) (*JobOpening, error)
	GetByID(ctx context.Context, id int64) (*JobOpening, error)
	GetListing(ctx context.Context, id int64) (*Listing, error)
	List(ctx context.Context) ([]Listing, error)
	// Delete removes the opening, its process and everything below it.
	Delete(ctx context.Context, id int64) error
	ContactIDs(ctx context.Context, id int64) ([]int64, error)
	// ReplaceContacts makes contactIDs the exact set of linked contacts.
	ReplaceContacts(ctx context.Context, id int64, contactIDs []int64) error
}

package app

import (
	"context"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/contact"
)

type ContactService struct {
	store Store
}

func NewContactService(store Store) *ContactService {
	return &ContactService{store: store}
}

func (s *ContactService) List(ctx context.Context) ([]contact.Contact, error) {
	return s.store.Repositories().Contacts.List(ctx)
}

func (s *ContactService) Get(ctx context.Context, id int64) (*contact.Contact, error) {
	return s.store.Repositories().Contacts.GetByID(ctx, id)
}

func (s *ContactService) Create(ctx context.Context, c contact.Contact) (*contact.Contact, error) {
	repos := s.store.Repositories()
	if err := prepareContact(ctx, repos, &c); err != nil {
		return nil, err
	}
	return repos.Contacts.Create(ctx, c)
}

func (s *ContactService) Update(ctx context.Context, c contact.Contact) (*contact.Contact, error) {
	repos := s.store.Repositories()
	if _, err := repos.Contacts.GetByID(ctx, c.ID); err != nil {
		return nil, err
	}
	if err := prepareContact(ctx, repos, &c); err != nil {
		return nil, err
	}
	return repos.Contacts.Update(ctx, c)
}

// prepareContact normalizes and validates c, including that its company exists.
func prepareContact(ctx context.Context, repos Repositories, c *contact.Contact) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	if err := requireCompany(ctx, repos, c.CompanyID); err != nil {
		return err
	}
	return nil
}

func requireCompany(ctx context.Context, repos Repositories, id int64) error {
	if _, err := repos.Companies.GetByID(ctx, id); err != nil {
		if common.Is(err, common.CodeNotFound) {
			return common.NewValidationError("company not found", map[string]string{"company": "must exist"})
		}
		return err
	}
	return nil
}

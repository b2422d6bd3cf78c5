package app

import (
	"context"

	"jobtracker/internal/domain/company"
)

type CompanyService struct {
	store Store
}

func NewCompanyService(store Store) *CompanyService {
	return &CompanyService{store: store}
}

func (s *CompanyService) List(ctx context.Context) ([]company.Summary, error) {
	return s.store.Repositories().Companies.List(ctx)
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*company.Company, error) {
	return s.store.Repositories().Companies.GetByID(ctx, id)
}

func (s *CompanyService) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return s.store.Repositories().Companies.Create(ctx, c)
}

func (s *CompanyService) Update(ctx context.Context, c company.Company) (*company.Company, error) {
	repo := s.store.Repositories().Companies
	current, err := repo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = current.CreatedAt
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return repo.Update(ctx, c)
}

// Delete removes the company and every record that hangs below it.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	return s.store.Do(ctx, func(repos Repositories) error {
		return repos.Companies.Delete(ctx, id)
	})
}

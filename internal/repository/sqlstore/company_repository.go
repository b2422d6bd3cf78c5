package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/company"
)

type CompanyRepository struct {
	q querier
}

const companyColumns = `c.id, c.name, c.industry, c.website, c.linkedin, c.notes, c.tech_stack, c.created_at, c.updated_at`

func scanCompany(row interface{ Scan(...any) error }, c *company.Company, extra ...any) error {
	dest := []any{&c.ID, &c.Name, &c.Industry, &c.Website, &c.LinkedIn, &c.Notes, &c.TechStack, &c.CreatedAt, &c.UpdatedAt}
	return row.Scan(append(dest, extra...)...)
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	const query = `
		INSERT INTO companies (name, industry, website, linkedin, notes, tech_stack, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	ts := now()
	c.CreatedAt, c.UpdatedAt = ts, ts
	if err := r.q.queryRow(ctx, query, c.Name, c.Industry, c.Website, c.LinkedIn, c.Notes, c.TechStack, c.CreatedAt, c.UpdatedAt).Scan(&c.ID); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create company", err)
	}
	return &c, nil
}

func (r *CompanyRepository) Update(ctx context.Context, c company.Company) (*company.Company, error) {
	const query = `
		UPDATE companies
		SET name = $1, industry = $2, website = $3, linkedin = $4, notes = $5, tech_stack = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.q.exec(ctx, query, c.Name, c.Industry, c.Website, c.LinkedIn, c.Notes, c.TechStack, now(), c.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update company", err)
	}
	if err := requireAffected(result, "company not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*company.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies c WHERE c.id = $1`
	var c company.Company
	if err := scanCompany(r.q.queryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company", err)
	}
	return &c, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]company.Summary, error) {
	query := `
		SELECT ` + companyColumns + `,
			(SELECT COUNT(*) FROM job_openings j WHERE j.company_id = c.id),
			(SELECT COUNT(*) FROM contacts ct WHERE ct.company_id = c.id),
			(SELECT COUNT(*) FROM application_processes ap
				JOIN job_openings j ON j.id = ap.job_opening_id
				WHERE j.company_id = c.id AND ap.status NOT IN ('rejected', 'closed'))
		FROM companies c
		ORDER BY c.name, c.id
	`
	rows, err := r.q.query(ctx, query)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list companies", err)
	}
	defer rows.Close()
	items := make([]company.Summary, 0)
	for rows.Next() {
		var item company.Summary
		if err := scanCompany(rows, &item.Company, &item.JobOpeningsCount, &item.ContactsCount, &item.ActiveApplicationsCount); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan company", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list companies", err)
	}
	return items, nil
}

// Delete must run inside a transaction.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	const processes = `SELECT ap.id FROM application_processes ap JOIN job_openings j ON j.id = ap.job_opening_id WHERE j.company_id = $1`
	steps := []struct {
		query string
		args  []any
	}{
		{`DELETE FROM tasks WHERE application_process_id IN (` + processes + `)`, []any{id}},
		{`DELETE FROM interviews WHERE application_process_id IN (` + processes + `)`, []any{id}},
		{`DELETE FROM direct_messages WHERE application_process_id IN (` + processes + `)
			OR contact_id IN (SELECT id FROM contacts WHERE company_id = $2)`, []any{id, id}},
		{`DELETE FROM application_processes WHERE job_opening_id IN (SELECT id FROM job_openings WHERE company_id = $1)`, []any{id}},
		{`DELETE FROM job_opening_contacts WHERE job_opening_id IN (SELECT id FROM job_openings WHERE company_id = $1)
			OR contact_id IN (SELECT id FROM contacts WHERE company_id = $2)`, []any{id, id}},
		{`DELETE FROM job_openings WHERE company_id = $1`, []any{id}},
		{`DELETE FROM contacts WHERE company_id = $1`, []any{id}},
	}
	for _, step := range steps {
		if _, err := r.q.exec(ctx, step.query, step.args...); err != nil {
			return common.NewError(common.CodeInternal, "failed to delete company dependents", err)
		}
	}
	result, err := r.q.exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete company", err)
	}
	return requireAffected(result, "company not found")
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/contact"
)

type ContactRepository struct {
	q querier
}

const contactColumns = `ct.id, ct.company_id, co.name, ct.name, ct.role, ct.email, ct.linkedin, ct.notes, ct.created_at, ct.updated_at`

func scanContact(row interface{ Scan(...any) error }, c *contact.Contact, extra ...any) error {
	dest := []any{&c.ID, &c.CompanyID, &c.CompanyName, &c.Name, &c.Role, &c.Email, &c.LinkedIn, &c.Notes, &c.CreatedAt, &c.UpdatedAt}
	return row.Scan(append(dest, extra...)...)
}

func (r *ContactRepository) Create(ctx context.Context, c contact.Contact) (*contact.Contact, error) {
	const query = `
		INSERT INTO contacts (company_id, name, role, email, linkedin, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	ts := now()
	c.CreatedAt, c.UpdatedAt = ts, ts
	if err := r.q.queryRow(ctx, query, c.CompanyID, c.Name, c.Role, c.Email, c.LinkedIn, c.Notes, c.CreatedAt, c.UpdatedAt).Scan(&c.ID); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create contact", err)
	}
	return &c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c contact.Contact) (*contact.Contact, error) {
	const query = `
		UPDATE contacts
		SET company_id = $1, name = $2, role = $3, email = $4, linkedin = $5, notes = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.q.exec(ctx, query, c.CompanyID, c.Name, c.Role, c.Email, c.LinkedIn, c.Notes, now(), c.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update contact", err)
	}
	if err := requireAffected(result, "contact not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, c.ID)
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ct JOIN companies co ON co.id = ct.company_id WHERE ct.id = $1`
	var c contact.Contact
	if err := scanContact(r.q.queryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "contact not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load contact", err)
	}
	return &c, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ct JOIN companies co ON co.id = ct.company_id ORDER BY ct.name, ct.id`
	return r.list(ctx, query)
}

func (r *ContactRepository) ListByIDs(ctx context.Context, ids []int64) ([]contact.Contact, error) {
	if len(ids) == 0 {
		return []contact.Contact{}, nil
	}
	query := `SELECT ` + contactColumns + ` FROM contacts ct JOIN companies co ON co.id = ct.company_id
		WHERE ct.id IN (` + placeholders(1, len(ids)) + `) ORDER BY ct.name, ct.id`
	return r.list(ctx, query, int64Args(ids)...)
}

func (r *ContactRepository) list(ctx context.Context, query string, args ...any) ([]contact.Contact, error) {
	rows, err := r.q.query(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list contacts", err)
	}
	defer rows.Close()
	items := make([]contact.Contact, 0)
	for rows.Next() {
		var c contact.Contact
		if err := scanContact(rows, &c); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan contact", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list contacts", err)
	}
	return items, nil
}

func (r *ContactRepository) ListByJobOpenings(ctx context.Context, jobOpeningIDs []int64) (map[int64][]contact.Contact, error) {
	grouped := make(map[int64][]contact.Contact, len(jobOpeningIDs))
	if len(jobOpeningIDs) == 0 {
		return grouped, nil
	}
	query := `
		SELECT ` + contactColumns + `, joc.job_opening_id
		FROM job_opening_contacts joc
		JOIN contacts ct ON ct.id = joc.contact_id
		JOIN companies co ON co.id = ct.company_id
		WHERE joc.job_opening_id IN (` + placeholders(1, len(jobOpeningIDs)) + `)
		ORDER BY ct.name, ct.id
	`
	rows, err := r.q.query(ctx, query, int64Args(jobOpeningIDs)...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job opening contacts", err)
	}
	defer rows.Close()
	for rows.Next() {
		var jobOpeningID int64
		var c contact.Contact
		if err := scanContact(rows, &c, &jobOpeningID); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan contact", err)
		}
		grouped[jobOpeningID] = append(grouped[jobOpeningID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job opening contacts", err)
	}
	return grouped, nil
}

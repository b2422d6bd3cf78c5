package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/application"
	"jobtracker/internal/domain/job"
)

type JobRepository struct {
	q querier
}

const jobColumns = `j.id, j.company_id, j.title, j.description, j.source, j.tech_stack, j.salary, j.location,
	j.match_score, j.interest_score, j.is_public, j.created_at, j.updated_at`

const listingQuery = `
	SELECT ` + jobColumns + `, c.name, ` + processColumns + `
	FROM job_openings j
	JOIN companies c ON c.id = j.company_id
	LEFT JOIN application_processes ap ON ap.job_opening_id = j.id
`

func scanJob(row interface{ Scan(...any) error }, j *job.JobOpening, extra ...any) error {
	var match, interest sql.NullInt64
	dest := []any{&j.ID, &j.CompanyID, &j.Title, &j.Description, &j.Source, &j.TechStack, &j.Salary, &j.Location,
		&match, &interest, &j.IsPublic, &j.CreatedAt, &j.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	j.MatchScore = intPtr(match)
	j.InterestScore = intPtr(interest)
	return nil
}

func scanListing(row interface{ Scan(...any) error }, l *job.Listing) error {
	var p nullableProcess
	if err := scanJob(row, &l.JobOpening, append([]any{&l.CompanyName}, p.dest()...)...); err != nil {
		return err
	}
	l.Process = p.process()
	return nil
}

func (r *JobRepository) Create(ctx context.Context, j job.JobOpening) (*job.JobOpening, error) {
	const query = `
		INSERT INTO job_openings (company_id, title, description, source, tech_stack, salary, location,
			match_score, interest_score, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	ts := now()
	j.CreatedAt, j.UpdatedAt = ts, ts
	err := r.q.queryRow(ctx, query, j.CompanyID, j.Title, j.Description, j.Source, j.TechStack, j.Salary, j.Location,
		nullInt(j.MatchScore), nullInt(j.InterestScore), j.IsPublic, j.CreatedAt, j.UpdatedAt).Scan(&j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create job opening", err)
	}
	return &j, nil
}

func (r *JobRepository) Update(ctx context.Context, j job.JobOpening) (*job.JobOpening, error) {
	const query = `
		UPDATE job_openings
		SET company_id = $1, title = $2, description = $3, source = $4, tech_stack = $5, salary = $6, location = $7,
			match_score = $8, interest_score = $9, is_public = $10, updated_at = $11
		WHERE id = $12
	`
	result, err := r.q.exec(ctx, query, j.CompanyID, j.Title, j.Description, j.Source, j.TechStack, j.Salary, j.Location,
		nullInt(j.MatchScore), nullInt(j.InterestScore), j.IsPublic, now(), j.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update job opening", err)
	}
	if err := requireAffected(result, "job opening not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, j.ID)
}

func (r *JobRepository) GetByID(ctx context.Context, id int64) (*job.JobOpening, error) {
	query := `SELECT ` + jobColumns + ` FROM job_openings j WHERE j.id = $1`
	var j job.JobOpening
	if err := scanJob(r.q.queryRow(ctx, query, id), &j); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job opening not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job opening", err)
	}
	return &j, nil
}

func (r *JobRepository) GetListing(ctx context.Context, id int64) (*job.Listing, error) {
	var l job.Listing
	if err := scanListing(r.q.queryRow(ctx, listingQuery+` WHERE j.id = $1`, id), &l); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "job opening not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load job opening", err)
	}
	return &l, nil
}

func (r *JobRepository) List(ctx context.Context) ([]job.Listing, error) {
	rows, err := r.q.query(ctx, listingQuery+` ORDER BY j.created_at DESC, j.id DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job openings", err)
	}
	defer rows.Close()
	items := make([]job.Listing, 0)
	for rows.Next() {
		var l job.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan job opening", err)
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job openings", err)
	}
	return items, nil
}

// Delete must run inside a transaction.
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	const processes = `SELECT id FROM application_processes WHERE job_opening_id = $1`
	steps := []string{
		`DELETE FROM tasks WHERE application_process_id IN (` + processes + `)`,
		`DELETE FROM interviews WHERE application_process_id IN (` + processes + `)`,
		`DELETE FROM direct_messages WHERE application_process_id IN (` + processes + `)`,
		`DELETE FROM application_processes WHERE job_opening_id = $1`,
		`DELETE FROM job_opening_contacts WHERE job_opening_id = $1`,
	}
	for _, query := range steps {
		if _, err := r.q.exec(ctx, query, id); err != nil {
			return common.NewError(common.CodeInternal, "failed to delete job opening dependents", err)
		}
	}
	result, err := r.q.exec(ctx, `DELETE FROM job_openings WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete job opening", err)
	}
	return requireAffected(result, "job opening not found")
}

func (r *JobRepository) ContactIDs(ctx context.Context, id int64) ([]int64, error) {
	rows, err := r.q.query(ctx, `SELECT contact_id FROM job_opening_contacts WHERE job_opening_id = $1 ORDER BY contact_id`, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job opening contacts", err)
	}
	defer rows.Close()
	ids := make([]int64, 0)
	for rows.Next() {
		var contactID int64
		if err := rows.Scan(&contactID); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan contact id", err)
		}
		ids = append(ids, contactID)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job opening contacts", err)
	}
	return ids, nil
}

func (r *JobRepository) ReplaceContacts(ctx context.Context, id int64, contactIDs []int64) error {
	if _, err := r.q.exec(ctx, `DELETE FROM job_opening_contacts WHERE job_opening_id = $1`, id); err != nil {
		return common.NewError(common.CodeInternal, "failed to clear job opening contacts", err)
	}
	const query = `
		INSERT INTO job_opening_contacts (job_opening_id, contact_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_opening_id, contact_id) DO NOTHING
	`
	ts := now()
	for _, contactID := range contactIDs {
		if _, err := r.q.exec(ctx, query, id, contactID, ts); err != nil {
			return common.NewError(common.CodeInternal, "failed to link contact", err)
		}
	}
	return nil
}

// nullableProcess receives the LEFT JOINed application_processes columns.
type nullableProcess struct {
	id             sql.NullInt64
	jobOpeningID   sql.NullInt64
	status         sql.NullString
	appliedOn      common.NullDate
	jobPostedOn    common.NullDate
	lastFollowUpOn common.NullDate
	nextFollowUpOn common.NullDate
	notionPageID   sql.NullString
	createdAt      sql.NullTime
	updatedAt      sql.NullTime
}

func (p *nullableProcess) dest() []any {
	return []any{&p.id, &p.jobOpeningID, &p.status, &p.appliedOn, &p.jobPostedOn, &p.lastFollowUpOn, &p.nextFollowUpOn,
		&p.notionPageID, &p.createdAt, &p.updatedAt}
}

func (p *nullableProcess) process() *application.Process {
	if !p.id.Valid {
		return nil
	}
	return &application.Process{
		ID:             p.id.Int64,
		JobOpeningID:   p.jobOpeningID.Int64,
		Status:         application.Status(p.status.String),
		AppliedOn:      p.appliedOn.Ptr(),
		JobPostedOn:    p.jobPostedOn.Ptr(),
		LastFollowUpOn: p.lastFollowUpOn.Ptr(),
		NextFollowUpOn: p.nextFollowUpOn.Ptr(),
		NotionPageID:   p.notionPageID.String,
		CreatedAt:      p.createdAt.Time,
		UpdatedAt:      p.updatedAt.Time,
	}
}

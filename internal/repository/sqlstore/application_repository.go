package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/application"
)

type ApplicationRepository struct {
	q querier
}

const processColumns = `ap.id, ap.job_opening_id, ap.status, ap.applied_on, ap.job_posted_on, ap.last_follow_up_on,
	ap.next_follow_up_on, ap.notion_page_id, ap.created_at, ap.updated_at`

func scanProcess(row interface{ Scan(...any) error }, p *application.Process) error {
	var applied, posted, last, next common.NullDate
	if err := row.Scan(&p.ID, &p.JobOpeningID, &p.Status, &applied, &posted, &last, &next, &p.NotionPageID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	p.AppliedOn = applied.Ptr()
	p.JobPostedOn = posted.Ptr()
	p.LastFollowUpOn = last.Ptr()
	p.NextFollowUpOn = next.Ptr()
	return nil
}

func (r *ApplicationRepository) Create(ctx context.Context, p application.Process) (*application.Process, error) {
	const query = `
		INSERT INTO application_processes (job_opening_id, status, applied_on, job_posted_on, last_follow_up_on,
			next_follow_up_on, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	ts := now()
	p.CreatedAt, p.UpdatedAt = ts, ts
	err := r.q.queryRow(ctx, query, p.JobOpeningID, string(p.Status), nullDate(p.AppliedOn), nullDate(p.JobPostedOn),
		nullDate(p.LastFollowUpOn), nullDate(p.NextFollowUpOn), p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "job opening already has an application process", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application process", err)
	}
	return &p, nil
}

func (r *ApplicationRepository) Update(ctx context.Context, p application.Process) (*application.Process, error) {
	const query = `
		UPDATE application_processes
		SET status = $1, applied_on = $2, job_posted_on = $3, last_follow_up_on = $4, next_follow_up_on = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.q.exec(ctx, query, string(p.Status), nullDate(p.AppliedOn), nullDate(p.JobPostedOn),
		nullDate(p.LastFollowUpOn), nullDate(p.NextFollowUpOn), now(), p.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application process", err)
	}
	if err := requireAffected(result, "application process not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*application.Process, error) {
	return r.get(ctx, `SELECT `+processColumns+` FROM application_processes ap WHERE ap.id = $1`, id)
}

func (r *ApplicationRepository) GetByJobOpening(ctx context.Context, jobOpeningID int64) (*application.Process, error) {
	return r.get(ctx, `SELECT `+processColumns+` FROM application_processes ap WHERE ap.job_opening_id = $1`, jobOpeningID)
}

func (r *ApplicationRepository) get(ctx context.Context, query string, arg int64) (*application.Process, error) {
	var p application.Process
	if err := scanProcess(r.q.queryRow(ctx, query, arg), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application process not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application process", err)
	}
	return &p, nil
}

func (r *ApplicationRepository) List(ctx context.Context) ([]application.Process, error) {
	rows, err := r.q.query(ctx, `SELECT `+processColumns+` FROM application_processes ap ORDER BY ap.id`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list application processes", err)
	}
	defer rows.Close()
	items := make([]application.Process, 0)
	for rows.Next() {
		var p application.Process
		if err := scanProcess(rows, &p); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application process", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list application processes", err)
	}
	return items, nil
}

func (r *ApplicationRepository) SetNotionPageID(ctx context.Context, id int64, pageID string) error {
	result, err := r.q.exec(ctx, `UPDATE application_processes SET notion_page_id = $1, updated_at = $2 WHERE id = $3`, pageID, now(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to store notion page id", err)
	}
	return requireAffected(result, "application process not found")
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/interview"
)

type InterviewRepository struct {
	q querier
}

const interviewColumns = `i.id, i.application_process_id, i.round_number, i.interview_type, i.scheduled_at, i.duration,
	i.performance_score, i.enjoyment_score, i.notes, i.transcript, i.created_at, i.updated_at`

func scanInterview(row interface{ Scan(...any) error }, item *interview.Interview, extra ...any) error {
	var duration, performance, enjoyment sql.NullInt64
	dest := []any{&item.ID, &item.ApplicationProcessID, &item.RoundNumber, &item.InterviewType, &item.ScheduledAt, &duration,
		&performance, &enjoyment, &item.Notes, &item.Transcript, &item.CreatedAt, &item.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	item.Duration = intPtr(duration)
	item.PerformanceScore = intPtr(performance)
	item.EnjoymentScore = intPtr(enjoyment)
	return nil
}

func (r *InterviewRepository) Create(ctx context.Context, item interview.Interview) (*interview.Interview, error) {
	const query = `
		INSERT INTO interviews (application_process_id, round_number, interview_type, scheduled_at, duration,
			performance_score, enjoyment_score, notes, transcript, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	ts := now()
	item.CreatedAt, item.UpdatedAt = ts, ts
	err := r.q.queryRow(ctx, query, item.ApplicationProcessID, item.RoundNumber, item.InterviewType, item.ScheduledAt.UTC(),
		nullInt(item.Duration), nullInt(item.PerformanceScore), nullInt(item.EnjoymentScore), item.Notes, item.Transcript,
		item.CreatedAt, item.UpdatedAt).Scan(&item.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create interview", err)
	}
	return &item, nil
}

func (r *InterviewRepository) Update(ctx context.Context, item interview.Interview) (*interview.Interview, error) {
	const query = `
		UPDATE interviews
		SET round_number = $1, interview_type = $2, scheduled_at = $3, duration = $4, performance_score = $5,
			enjoyment_score = $6, notes = $7, transcript = $8, updated_at = $9
		WHERE id = $10
	`
	result, err := r.q.exec(ctx, query, item.RoundNumber, item.InterviewType, item.ScheduledAt.UTC(), nullInt(item.Duration),
		nullInt(item.PerformanceScore), nullInt(item.EnjoymentScore), item.Notes, item.Transcript, now(), item.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update interview", err)
	}
	if err := requireAffected(result, "interview not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, item.ID)
}

func (r *InterviewRepository) GetByID(ctx context.Context, id int64) (*interview.Interview, error) {
	var item interview.Interview
	if err := scanInterview(r.q.queryRow(ctx, `SELECT `+interviewColumns+` FROM interviews i WHERE i.id = $1`, id), &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "interview not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load interview", err)
	}
	return &item, nil
}

func (r *InterviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.exec(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete interview", err)
	}
	return requireAffected(result, "interview not found")
}

func (r *InterviewRepository) ListByProcess(ctx context.Context, processID int64) ([]interview.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews i WHERE i.application_process_id = $1 ORDER BY i.scheduled_at, i.id`
	rows, err := r.q.query(ctx, query, processID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list interviews", err)
	}
	defer rows.Close()
	items := make([]interview.Interview, 0)
	for rows.Next() {
		var item interview.Interview
		if err := scanInterview(rows, &item); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan interview", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list interviews", err)
	}
	return items, nil
}

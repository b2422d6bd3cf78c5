package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/task"
)

type TaskRepository struct {
	q querier
}

const taskColumns = `t.id, t.user_id, t.application_process_id, t.title, t.notes, t.due_date, t.completed, t.created_at, t.updated_at`

func scanTask(row interface{ Scan(...any) error }, item *task.Task, extra ...any) error {
	var processID sql.NullInt64
	var due common.NullDate
	dest := []any{&item.ID, &item.UserID, &processID, &item.Title, &item.Notes, &due, &item.Completed, &item.CreatedAt, &item.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	item.ApplicationProcessID = int64Ptr(processID)
	item.DueDate = due.Ptr()
	return nil
}

func (r *TaskRepository) Create(ctx context.Context, item task.Task) (*task.Task, error) {
	const query = `
		INSERT INTO tasks (user_id, application_process_id, title, notes, due_date, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	ts := now()
	item.CreatedAt, item.UpdatedAt = ts, ts
	err := r.q.queryRow(ctx, query, item.UserID, nullInt64(item.ApplicationProcessID), item.Title, item.Notes,
		nullDate(item.DueDate), item.Completed, item.CreatedAt, item.UpdatedAt).Scan(&item.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create task", err)
	}
	return &item, nil
}

func (r *TaskRepository) Update(ctx context.Context, item task.Task) (*task.Task, error) {
	const query = `
		UPDATE tasks
		SET application_process_id = $1, title = $2, notes = $3, due_date = $4, completed = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.q.exec(ctx, query, nullInt64(item.ApplicationProcessID), item.Title, item.Notes, nullDate(item.DueDate),
		item.Completed, now(), item.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update task", err)
	}
	if err := requireAffected(result, "task not found"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, item.ID)
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	var item task.Task
	if err := scanTask(r.q.queryRow(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.id = $1`, id), &item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "task not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load task", err)
	}
	return &item, nil
}

func (r *TaskRepository) ListByProcess(ctx context.Context, processID int64) ([]task.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.application_process_id = $1 ORDER BY t.created_at, t.id`, processID)
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID int64) ([]task.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.user_id = $1 ORDER BY t.created_at, t.id`, userID)
}

func (r *TaskRepository) list(ctx context.Context, query string, arg int64) ([]task.Task, error) {
	rows, err := r.q.query(ctx, query, arg)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list tasks", err)
	}
	defer rows.Close()
	items := make([]task.Task, 0)
	for rows.Next() {
		var item task.Task
		if err := scanTask(rows, &item); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan task", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list tasks", err)
	}
	return items, nil
}

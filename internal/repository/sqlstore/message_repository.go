package sqlstore

import (
	"context"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/message"
)

type MessageRepository struct {
	q querier
}

func (r *MessageRepository) Create(ctx context.Context, item message.Message) (*message.Message, error) {
	const query = `
		INSERT INTO direct_messages (contact_id, application_process_id, content, direction, sent_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	ts := now()
	item.CreatedAt, item.UpdatedAt = ts, ts
	err := r.q.queryRow(ctx, query, item.ContactID, item.ApplicationProcessID, item.Content, string(item.Direction),
		item.SentAt.UTC(), item.CreatedAt, item.UpdatedAt).Scan(&item.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create message", err)
	}
	return &item, nil
}

func (r *MessageRepository) ListByProcess(ctx context.Context, processID int64) ([]message.Message, error) {
	const query = `
		SELECT m.id, m.contact_id, ct.name, m.application_process_id, m.content, m.direction, m.sent_at, m.created_at, m.updated_at
		FROM direct_messages m
		JOIN contacts ct ON ct.id = m.contact_id
		WHERE m.application_process_id = $1
		ORDER BY m.sent_at, m.id
	`
	rows, err := r.q.query(ctx, query, processID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list messages", err)
	}
	defer rows.Close()
	items := make([]message.Message, 0)
	for rows.Next() {
		var item message.Message
		if err := rows.Scan(&item.ID, &item.ContactID, &item.ContactName, &item.ApplicationProcessID, &item.Content,
			&item.Direction, &item.SentAt, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan message", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list messages", err)
	}
	return items, nil
}

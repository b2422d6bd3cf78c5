package message

import "context"

type Repository interface {
	Create(ctx context.Context, item Message) (*Message, error)
	// ListByProcess is ordered by sent_at and carries the contact name.
	ListByProcess(ctx context.Context, processID int64) ([]Message, error)
}

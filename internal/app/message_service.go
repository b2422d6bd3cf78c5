package app

import (
	"context"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/message"
)

type MessageService struct {
	store Store
	clock Clock
}

func NewMessageService(store Store, clock Clock) *MessageService {
	return &MessageService{store: store, clock: clock}
}

// Create records a message exchanged with a contact about the job.
func (s *MessageService) Create(ctx context.Context, jobID int64, item message.Message) (*message.Message, error) {
	repos := s.store.Repositories()
	process, err := repos.Processes.GetByJobOpening(ctx, jobID)
	if err != nil {
		return nil, err
	}
	item.ApplicationProcessID = process.ID
	if err := item.Validate(); err != nil {
		return nil, err
	}
	sender, err := repos.Contacts.GetByID(ctx, item.ContactID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewValidationError("contact not found", map[string]string{"contact": "must exist"})
		}
		return nil, err
	}
	created, err := repos.Messages.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	created.ContactName = sender.Name
	return created, nil
}

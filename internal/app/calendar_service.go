package app

import (
	"context"

	"jobtracker/internal/domain/calendar"
)

type CalendarService struct {
	store Store
	clock Clock
}

func NewCalendarService(store Store, clock Clock) *CalendarService {
	return &CalendarService{store: store, clock: clock}
}

// Feed merges every interview with the user's dated tasks.
func (s *CalendarService) Feed(ctx context.Context, userID int64) (calendar.Feed, error) {
	source := s.store.Repositories().Calendar
	interviews, err := source.Interviews(ctx)
	if err != nil {
		return calendar.Feed{}, err
	}
	tasks, err := source.Tasks(ctx, userID)
	if err != nil {
		return calendar.Feed{}, err
	}
	return calendar.Build(interviews, tasks, s.clock.Today(), s.clock.Zone()), nil
}

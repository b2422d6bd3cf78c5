package app

import (
	"context"
	"time"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/application"
	"jobtracker/internal/domain/calendar"
	"jobtracker/internal/domain/company"
	"jobtracker/internal/domain/contact"
	"jobtracker/internal/domain/interview"
	"jobtracker/internal/domain/job"
	"jobtracker/internal/domain/message"
	"jobtracker/internal/domain/task"
	"jobtracker/internal/domain/user"
)

// Repositories bundles every repository bound to one connection or transaction.
type Repositories struct {
	Companies  company.Repository
	Contacts   contact.Repository
	Jobs       job.Repository
	Processes  application.Repository
	Interviews interview.Repository
	Messages   message.Repository
	Tasks      task.Repository
	Users      user.Repository
	Sessions   user.SessionRepository
	Calendar   calendar.Source
}

// UnitOfWork runs fn inside one transaction; any error rolls everything back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}

// Clock yields "now" and the zone that defines "today".
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Now: time.Now, Location: loc}
}

// Current is now in the clock's zone.
func (c Clock) Current() time.Time {
	if c.Now == nil {
		return time.Now().In(c.Zone())
	}
	return c.Now().In(c.Zone())
}

func (c Clock) Today() common.Date {
	return common.DateOf(c.Current())
}

func (c Clock) Zone() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

// Store hands out pool-bound repositories and runs transactions.
type Store interface {
	UnitOfWork
	Repositories() Repositories
}

type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

package app

import (
	"context"
	"strings"

	"jobtracker/internal/common"
	"jobtracker/internal/domain/application"
	"jobtracker/internal/domain/company"
	"jobtracker/internal/domain/contact"
	"jobtracker/internal/domain/interview"
	"jobtracker/internal/domain/job"
	"jobtracker/internal/domain/message"
	"jobtracker/internal/domain/task"
)

// JobInput is one submission of the job form.
type JobInput struct {
	Job job.JobOpening
	// NewCompany is created and used instead of Job.CompanyID when its name is set.
	NewCompany *company.Company
	// ContactIDs replaces the linked contacts; nil leaves them untouched on update.
	ContactIDs []int64
	NewContact *contact.Contact
	Process    *ProcessInput
}

// ProcessInput carries the application process fields of the job form.
// A blank Status keeps the current one.
type ProcessInput struct {
	Status         application.Status
	AppliedOn      *common.Date
	JobPostedOn    *common.Date
	LastFollowUpOn *common.Date
	NextFollowUpOn *common.Date
}

type JobDetails struct {
	Listing    job.Listing
	Contacts   []contact.Contact
	Messages   []message.Message
	Tasks      []task.Task
	Interviews []interview.Interview
}

type JobService struct {
	store Store
	clock Clock
}

func NewJobService(store Store, clock Clock) *JobService {
	return &JobService{store: store, clock: clock}
}

func (s *JobService) List(ctx context.Context) ([]job.Listing, error) {
	return s.store.Repositories().Jobs.List(ctx)
}

func (s *JobService) Details(ctx context.Context, id int64) (*JobDetails, error) {
	repos := s.store.Repositories()
	listing, err := repos.Jobs.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	contacts, err := repos.Contacts.ListByJobOpenings(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	details := &JobDetails{
		Listing:    *listing,
		Contacts:   contacts[id],
		Messages:   []message.Message{},
		Tasks:      []task.Task{},
		Interviews: []interview.Interview{},
	}
	if details.Contacts == nil {
		details.Contacts = []contact.Contact{}
	}
	if listing.Process == nil {
		return details, nil
	}
	processID := listing.Process.ID
	if details.Messages, err = repos.Messages.ListByProcess(ctx, processID); err != nil {
		return nil, err
	}
	if details.Tasks, err = repos.Tasks.ListByProcess(ctx, processID); err != nil {
		return nil, err
	}
	if details.Interviews, err = repos.Interviews.ListByProcess(ctx, processID); err != nil {
		return nil, err
	}
	return details, nil
}

// Create persists the job, its optional new company and contact, the
// contact links and its application process in one transaction.
func (s *JobService) Create(ctx context.Context, input JobInput) (*job.Listing, error) {
	var id int64
	err := s.store.Do(ctx, func(repos Repositories) error {
		opening := input.Job
		if err := attachNewCompany(ctx, repos, &opening, input.NewCompany); err != nil {
			return err
		}
		if err := prepareJob(ctx, repos, &opening); err != nil {
			return err
		}
		created, err := repos.Jobs.Create(ctx, opening)
		if err != nil {
			return err
		}
		if err := linkContacts(ctx, repos, created.ID, created.CompanyID, input.ContactIDs, input.NewContact); err != nil {
			return err
		}
		process := application.New(created.ID)
		applyProcessInput(&process, input.Process, s.clock.Today())
		if err := process.Validate(); err != nil {
			return err
		}
		if _, err := repos.Processes.Create(ctx, process); err != nil {
			return err
		}
		id = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.store.Repositories().Jobs.GetListing(ctx, id)
}

func (s *JobService) Update(ctx context.Context, id int64, input JobInput) (*job.Listing, error) {
	err := s.store.Do(ctx, func(repos Repositories) error {
		current, err := repos.Jobs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		opening := input.Job
		opening.ID = current.ID
		opening.CreatedAt = current.CreatedAt
		if err := attachNewCompany(ctx, repos, &opening, input.NewCompany); err != nil {
			return err
		}
		if err := prepareJob(ctx, repos, &opening); err != nil {
			return err
		}
		if _, err := repos.Jobs.Update(ctx, opening); err != nil {
			return err
		}
		if input.ContactIDs != nil || hasName(input.NewContact) {
			existing := input.ContactIDs
			if existing == nil {
				if existing, err = repos.Jobs.ContactIDs(ctx, id); err != nil {
					return err
				}
			}
			if err := linkContacts(ctx, repos, id, opening.CompanyID, existing, input.NewContact); err != nil {
				return err
			}
		}
		if input.Process == nil {
			return nil
		}
		process, err := repos.Processes.GetByJobOpening(ctx, id)
		if err != nil {
			return err
		}
		applyProcessInput(process, input.Process, s.clock.Today())
		if err := process.Validate(); err != nil {
			return err
		}
		_, err = repos.Processes.Update(ctx, *process)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.store.Repositories().Jobs.GetListing(ctx, id)
}

func (s *JobService) Delete(ctx context.Context, id int64) error {
	return s.store.Do(ctx, func(repos Repositories) error {
		return repos.Jobs.Delete(ctx, id)
	})
}

// UpdateStatus moves the job's process to status, keeping applied_on in step.
func (s *JobService) UpdateStatus(ctx context.Context, jobID int64, status string) (*application.Process, error) {
	next, err := application.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	repo := s.store.Repositories().Processes
	process, err := repo.GetByJobOpening(ctx, jobID)
	if err != nil {
		return nil, err
	}
	process.TransitionTo(next, s.clock.Today())
	if err := process.Validate(); err != nil {
		return nil, err
	}
	return repo.Update(ctx, *process)
}

// ToggleTask flips completion of a task attached to the job's process.
func (s *JobService) ToggleTask(ctx context.Context, jobID, taskID int64) (*task.Task, error) {
	repos := s.store.Repositories()
	process, err := repos.Processes.GetByJobOpening(ctx, jobID)
	if err != nil {
		return nil, err
	}
	item, err := repos.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if item.ApplicationProcessID == nil || *item.ApplicationProcessID != process.ID {
		return nil, common.NewError(common.CodeNotFound, "task not found", nil)
	}
	item.Toggle()
	return repos.Tasks.Update(ctx, *item)
}

func attachNewCompany(ctx context.Context, repos Repositories, opening *job.JobOpening, attrs *company.Company) error {
	if attrs == nil || strings.TrimSpace(attrs.Name) == "" {
		return nil
	}
	c := *attrs
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	created, err := repos.Companies.Create(ctx, c)
	if err != nil {
		return err
	}
	opening.CompanyID = created.ID
	return nil
}

func prepareJob(ctx context.Context, repos Repositories, opening *job.JobOpening) error {
	opening.Normalize()
	if err := opening.Validate(); err != nil {
		return err
	}
	return requireCompany(ctx, repos, opening.CompanyID)
}

// linkContacts makes ids plus the optional new contact the job's contact set.
func linkContacts(ctx context.Context, repos Repositories, jobID, companyID int64, ids []int64, attrs *contact.Contact) error {
	ids = uniqueIDs(ids)
	if len(ids) > 0 {
		found, err := repos.Contacts.ListByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(found) != len(ids) {
			return common.NewValidationError("contact not found", map[string]string{"contacts": "must exist"})
		}
	}
	if hasName(attrs) {
		c := *attrs
		if c.CompanyID == 0 {
			c.CompanyID = companyID
		}
		if err := prepareContact(ctx, repos, &c); err != nil {
			return err
		}
		created, err := repos.Contacts.Create(ctx, c)
		if err != nil {
			return err
		}
		ids = append(ids, created.ID)
	}
	return repos.Jobs.ReplaceContacts(ctx, jobID, ids)
}

func applyProcessInput(process *application.Process, input *ProcessInput, today common.Date) {
	if input == nil {
		return
	}
	process.AppliedOn = input.AppliedOn
	process.JobPostedOn = input.JobPostedOn
	process.LastFollowUpOn = input.LastFollowUpOn
	process.NextFollowUpOn = input.NextFollowUpOn
	if input.Status != "" {
		process.TransitionTo(input.Status, today)
	}
}

func hasName(c *contact.Contact) bool {
	return c != nil && strings.TrimSpace(c.Name) != ""
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

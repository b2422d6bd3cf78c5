package app_test

import (
	"context"
	"testing"
	"time"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/domain/application"
	"jobtracker/internal/domain/company"
	"jobtracker/internal/domain/contact"
	"jobtracker/internal/domain/interview"
	"jobtracker/internal/domain/job"
	"jobtracker/internal/domain/message"
	"jobtracker/internal/domain/task"
)

func TestJobServiceCreateWithNewCompany(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	jobs := app.NewJobService(store, fixedClock())

	listing, err := jobs.Create(ctx, app.JobInput{
		Job:        job.JobOpening{Title: " Backend Engineer ", IsPublic: true},
		NewCompany: &company.Company{Name: "Acme"},
		NewContact: &contact.Contact{Name: "Dana", Email: "dana@acme.test"},
		Process:    &app.ProcessInput{Status: application.StatusApplied},
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if listing.Title != "Backend Engineer" || listing.CompanyName != "Acme" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if listing.Process == nil || listing.Process.Status != application.StatusApplied {
		t.Fatalf("expected applied process, got %+v", listing.Process)
	}
	if listing.Process.AppliedOn == nil || *listing.Process.AppliedOn != today() {
		t.Fatalf("expected applied_on %s, got %v", today(), listing.Process.AppliedOn)
	}

	companies, err := app.NewCompanyService(store).List(ctx)
	if err != nil {
		t.Fatalf("list companies: %v", err)
	}
	if len(companies) != 1 {
		t.Fatalf("expected exactly one company, got %d", len(companies))
	}
	if companies[0].JobOpeningsCount != 1 || companies[0].ContactsCount != 1 || companies[0].ActiveApplicationsCount != 1 {
		t.Fatalf("unexpected company counts: %+v", companies[0])
	}

	details, err := jobs.Details(ctx, listing.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(details.Contacts) != 1 || details.Contacts[0].CompanyID != listing.CompanyID {
		t.Fatalf("expected new contact linked to the new company, got %+v", details.Contacts)
	}
}

func TestJobServiceCreateRollsBackOnInvalidProcess(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	jobs := app.NewJobService(store, fixedClock())

	_, err := jobs.Create(ctx, app.JobInput{
		Job:        job.JobOpening{Title: "Platform Engineer"},
		NewCompany: &company.Company{Name: "Initech"},
		Process:    &app.ProcessInput{Status: application.StatusInReview},
	})
	appErr := expectCode(t, err, common.CodeValidation)
	if appErr.Fields["applied_on"] == "" {
		t.Fatalf("expected applied_on error, got %v", appErr.Fields)
	}

	companies, err := app.NewCompanyService(store).List(ctx)
	if err != nil {
		t.Fatalf("list companies: %v", err)
	}
	listings, err := jobs.List(ctx)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(companies) != 0 || len(listings) != 0 {
		t.Fatalf("expected rollback, got %d companies and %d jobs", len(companies), len(listings))
	}
}

func TestJobServiceCreateRequiresExistingCompany(t *testing.T) {
	jobs := app.NewJobService(newStore(t), fixedClock())
	_, err := jobs.Create(context.Background(), app.JobInput{Job: job.JobOpening{Title: "SRE", CompanyID: 42}})
	appErr := expectCode(t, err, common.CodeValidation)
	if appErr.Fields["company"] != "must exist" {
		t.Fatalf("unexpected fields: %v", appErr.Fields)
	}
}

func TestJobServiceCreateRejectsUnknownContacts(t *testing.T) {
	jobs := app.NewJobService(newStore(t), fixedClock())
	_, err := jobs.Create(context.Background(), app.JobInput{
		Job:        job.JobOpening{Title: "SRE"},
		NewCompany: &company.Company{Name: "Acme"},
		ContactIDs: []int64{99},
	})
	expectCode(t, err, common.CodeValidation)
}

func TestJobServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	jobs := app.NewJobService(store, fixedClock())
	listing := createJob(t, jobs, "Acme", "Backend Engineer")
	if listing.Process.Status != application.StatusDraft || listing.Process.AppliedOn != nil {
		t.Fatalf("expected draft process, got %+v", listing.Process)
	}

	process, err := jobs.UpdateStatus(ctx, listing.ID, "applied")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if process.AppliedOn == nil || *process.AppliedOn != today() {
		t.Fatalf("expected applied_on today, got %v", process.AppliedOn)
	}

	process, err = jobs.UpdateStatus(ctx, listing.ID, "draft")
	if err != nil {
		t.Fatalf("back to draft: %v", err)
	}
	if process.AppliedOn != nil {
		t.Fatalf("expected applied_on cleared, got %v", process.AppliedOn)
	}

	_, err = jobs.UpdateStatus(ctx, listing.ID, "ghosted")
	expectCode(t, err, common.CodeValidation)

	_, err = jobs.UpdateStatus(ctx, listing.ID+100, "applied")
	expectCode(t, err, common.CodeNotFound)
}

func TestJobServiceUpdateKeepsContactsWhenNotGiven(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	jobs := app.NewJobService(store, fixedClock())
	listing, err := jobs.Create(ctx, app.JobInput{
		Job:        job.JobOpening{Title: "Backend Engineer"},
		NewCompany: &company.Company{Name: "Acme"},
		NewContact: &contact.Contact{Name: "Dana"},
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	applied := today().AddDays(-2)
	updated, err := jobs.Update(ctx, listing.ID, app.JobInput{
		Job:     job.JobOpening{Title: "Senior Backend Engineer", CompanyID: listing.CompanyID},
		Process: &app.ProcessInput{Status: application.StatusInterviewing, AppliedOn: &applied},
	})
	if err != nil {
		t.Fatalf("update job: %v", err)
	}
	if updated.Title != "Senior Backend Engineer" || updated.Process.Status != application.StatusInterviewing {
		t.Fatalf("unexpected listing: %+v", updated)
	}
	if *updated.Process.AppliedOn != applied {
		t.Fatalf("expected applied_on %s, got %s", applied, updated.Process.AppliedOn)
	}
	details, err := jobs.Details(ctx, listing.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if len(details.Contacts) != 1 {
		t.Fatalf("expected contact links to survive, got %d", len(details.Contacts))
	}
}

func TestJobServiceToggleTaskChecksOwnership(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	account := createUser(t, store, "me@example.com")
	jobs := app.NewJobService(store, fixedClock())
	tasks := app.NewTaskService(store, fixedClock())
	first := createJob(t, jobs, "Acme", "Backend Engineer")
	second := createJob(t, jobs, "Initech", "Platform Engineer")

	item, err := tasks.Create(ctx, account.ID, &second.ID, task.Task{Title: "Send portfolio"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	_, err = jobs.ToggleTask(ctx, first.ID, item.ID)
	expectCode(t, err, common.CodeNotFound)

	toggled, err := jobs.ToggleTask(ctx, second.ID, item.ID)
	if err != nil {
		t.Fatalf("toggle task: %v", err)
	}
	if !toggled.Completed {
		t.Fatalf("expected task completed")
	}
}

func TestJobServiceDeleteRemovesDependents(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	account := createUser(t, store, "me@example.com")
	clock := fixedClock()
	jobs := app.NewJobService(store, clock)
	listing, err := jobs.Create(ctx, app.JobInput{
		Job:        job.JobOpening{Title: "Backend Engineer"},
		NewCompany: &company.Company{Name: "Acme"},
		NewContact: &contact.Contact{Name: "Dana"},
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	details, err := jobs.Details(ctx, listing.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}

	item, err := app.NewTaskService(store, clock).Create(ctx, account.ID, &listing.ID, task.Task{Title: "Prepare"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := app.NewInterviewService(store, clock).Create(ctx, listing.ID, interview.Interview{
		RoundNumber: 1, InterviewType: interview.TypeTechnical, ScheduledAt: testNow.Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("create interview: %v", err)
	}
	if _, err := app.NewMessageService(store, clock).Create(ctx, listing.ID, message.Message{
		ContactID: details.Contacts[0].ID, Content: "Hello", Direction: message.DirectionSent,
	}); err != nil {
		t.Fatalf("create message: %v", err)
	}

	if err := jobs.Delete(ctx, listing.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	_, err = jobs.Details(ctx, listing.ID)
	expectCode(t, err, common.CodeNotFound)
	_, err = store.Repositories().Tasks.GetByID(ctx, item.ID)
	expectCode(t, err, common.CodeNotFound)

	contacts, err := app.NewContactService(store).List(ctx)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("contacts belong to the company and must survive, got %d", len(contacts))
	}
}

func createJob(t *testing.T, jobs *app.JobService, companyName, title string) *job.Listing {
	t.Helper()
	listing, err := jobs.Create(context.Background(), app.JobInput{
		Job:        job.JobOpening{Title: title},
		NewCompany: &company.Company{Name: companyName},
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return listing
}

func TestJobServiceUpdateStatusBetweenSentStatuses(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	jobs := app.NewJobService(store, fixedClock())
	listing := createJob(t, jobs, "Acme", "Backend Engineer")

	if _, err := jobs.UpdateStatus(ctx, listing.ID, "applied"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	process, err := jobs.UpdateStatus(ctx, listing.ID, "in_review")
	if err != nil {
		t.Fatalf("move to in_review: %v", err)
	}
	if process.Status != application.StatusInReview || process.AppliedOn == nil || *process.AppliedOn != today() {
		t.Fatalf("expected applied_on kept at %s, got %+v", today(), process)
	}
}

func TestJobServiceUpdateStatusSkippingDraftFails(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	jobs := app.NewJobService(store, fixedClock())
	listing := createJob(t, jobs, "Acme", "Backend Engineer")

	_, err := jobs.UpdateStatus(ctx, listing.ID, "in_review")
	appErr := expectCode(t, err, common.CodeValidation)
	if appErr.Fields["applied_on"] != common.MsgBlank {
		t.Fatalf("unexpected fields: %v", appErr.Fields)
	}

	details, err := jobs.Details(ctx, listing.ID)
	if err != nil {
		t.Fatalf("details: %v", err)
	}
	if p := details.Listing.Process; p == nil || p.Status != application.StatusDraft || p.AppliedOn != nil {
		t.Fatalf("expected the process to stay draft, got %+v", p)
	}
}

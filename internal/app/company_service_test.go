package app_test

import (
	"context"
	"testing"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/domain/company"
	"jobtracker/internal/domain/contact"
	"jobtracker/internal/domain/job"
	"jobtracker/internal/domain/task"
)

func TestCompanyServiceDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	account := createUser(t, store, "me@example.com")
	companies := app.NewCompanyService(store)
	jobs := app.NewJobService(store, fixedClock())

	acme, err := companies.Create(ctx, company.Company{Name: "Acme", Website: "https://acme.test"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	other, err := companies.Create(ctx, company.Company{Name: "Initech"})
	if err != nil {
		t.Fatalf("create company: %v", err)
	}
	listing, err := jobs.Create(ctx, app.JobInput{
		Job:        job.JobOpening{Title: "Backend Engineer", CompanyID: acme.ID},
		NewContact: &contact.Contact{Name: "Dana"},
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if _, err := app.NewTaskService(store, fixedClock()).Create(ctx, account.ID, &listing.ID, task.Task{Title: "Follow up"}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := app.NewContactService(store).Create(ctx, contact.Contact{Name: "Sam", CompanyID: other.ID}); err != nil {
		t.Fatalf("create contact: %v", err)
	}

	if err := companies.Delete(ctx, acme.ID); err != nil {
		t.Fatalf("delete company: %v", err)
	}

	remaining, err := companies.List(ctx)
	if err != nil {
		t.Fatalf("list companies: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != other.ID {
		t.Fatalf("unexpected companies: %+v", remaining)
	}
	listings, err := jobs.List(ctx)
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("expected jobs removed, got %d", len(listings))
	}
	contacts, err := app.NewContactService(store).List(ctx)
	if err != nil {
		t.Fatalf("list contacts: %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Sam" {
		t.Fatalf("unexpected contacts: %+v", contacts)
	}
	tasks, err := app.NewTaskService(store, fixedClock()).ListForUser(ctx, account.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected tasks removed, got %d", len(tasks))
	}

	err = companies.Delete(ctx, acme.ID)
	expectCode(t, err, common.CodeNotFound)
}

func TestCompanyServiceValidates(t *testing.T) {
	companies := app.NewCompanyService(newStore(t))
	_, err := companies.Create(context.Background(), company.Company{Name: " ", Website: "acme"})
	appErr := expectCode(t, err, common.CodeValidation)
	if appErr.Fields["name"] != common.MsgBlank || appErr.Fields["website"] != common.MsgInvalidURL {
		t.Fatalf("unexpected fields: %v", appErr.Fields)
	}

	_, err = companies.Update(context.Background(), company.Company{ID: 7, Name: "Acme"})
	expectCode(t, err, common.CodeNotFound)
}

func TestContactServiceRequiresCompany(t *testing.T) {
	_, err := app.NewContactService(newStore(t)).Create(context.Background(), contact.Contact{Name: "Dana", CompanyID: 3})
	appErr := expectCode(t, err, common.CodeValidation)
	if appErr.Fields["company"] != "must exist" {
		t.Fatalf("unexpected fields: %v", appErr.Fields)
	}
}

package application

import (
	"testing"
	"time"

	"jobtracker/internal/common"
)

var today = common.NewDate(2024, time.June, 10)

func TestTransitionToAppliedStampsToday(t *testing.T) {
	process := New(1)
	process.TransitionTo(StatusApplied, today)
	if process.AppliedOn == nil || *process.AppliedOn != today {
		t.Fatalf("expected applied_on to be today, got %v", process.AppliedOn)
	}
	if err := process.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestTransitionToAppliedKeepsExistingDate(t *testing.T) {
	earlier := today.AddDays(-3)
	process := New(1)
	process.AppliedOn = &earlier
	process.TransitionTo(StatusApplied, today)
	if *process.AppliedOn != earlier {
		t.Fatalf("expected applied_on to stay %s, got %s", earlier, process.AppliedOn)
	}
}

func TestTransitionBackToDraftClearsAppliedOn(t *testing.T) {
	process := New(1)
	process.TransitionTo(StatusApplied, today)
	process.TransitionTo(StatusInterviewing, today)
	process.TransitionTo(StatusDraft, today)
	if process.AppliedOn != nil {
		t.Fatalf("expected applied_on to be cleared, got %v", process.AppliedOn)
	}
}

func TestTransitionBetweenSentStatusesKeepsAppliedOn(t *testing.T) {
	process := New(1)
	process.TransitionTo(StatusApplied, today.AddDays(-5))
	stamped := *process.AppliedOn

	for _, next := range []Status{StatusInReview, StatusInterviewing, StatusOffer, StatusRejected, StatusApplied} {
		process.TransitionTo(next, today)
		if process.AppliedOn == nil || *process.AppliedOn != stamped {
			t.Fatalf("moving to %s changed applied_on to %v", next, process.AppliedOn)
		}
		if err := process.Validate(); err != nil {
			t.Fatalf("moving to %s: unexpected validation error: %v", next, err)
		}
	}
}

func TestSkippingDraftRequiresAppliedOn(t *testing.T) {
	process := New(1)
	process.TransitionTo(StatusInReview, today)
	err := process.Validate()
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	appErr, _ := common.As(err)
	if appErr.Fields["applied_on"] != common.MsgBlank {
		t.Fatalf("unexpected fields: %v", appErr.Fields)
	}
}

func TestValidateFollowUpOrder(t *testing.T) {
	last := today
	next := today.AddDays(-1)
	process := Process{Status: StatusDraft, LastFollowUpOn: &last, NextFollowUpOn: &next}
	appErr, ok := common.As(process.Validate())
	if !ok || appErr.Fields["next_follow_up_on"] == "" {
		t.Fatalf("expected next_follow_up_on error, got %v", appErr)
	}

	same := today
	process.NextFollowUpOn = &same
	if err := process.Validate(); err != nil {
		t.Fatalf("same day follow up should be valid: %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" In_Review ")
	if err != nil || status != StatusInReview {
		t.Fatalf("unexpected parse result: %v %v", status, err)
	}
	if _, err := ParseStatus("ghosted"); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNeedsFollowUpAndAppliedWithin(t *testing.T) {
	due := today
	applied := today.AddDays(-30)
	process := Process{Status: StatusApplied, AppliedOn: &applied, NextFollowUpOn: &due}
	if !process.NeedsFollowUp(today) {
		t.Fatalf("expected follow up due today")
	}
	if !process.AppliedWithin(today, 30) {
		t.Fatalf("expected application 30 days ago to count as recent")
	}
	if process.AppliedWithin(today, 29) {
		t.Fatalf("expected application outside 29 day window")
	}
	if days := process.DaysSinceApplied(today); days == nil || *days != 30 {
		t.Fatalf("unexpected days since applied: %v", days)
	}
	if !process.Active() || (Process{Status: StatusRejected}).Active() {
		t.Fatalf("unexpected active flags")
	}
}

package common

import (
	"strings"
	"testing"
)

func TestValidationCollectsFieldErrors(t *testing.T) {
	var v Validation
	v.Required("name", "  ")
	v.MaxLength("title", strings.Repeat("a", MaxStringLength+1))
	v.HTTPURL("website", "ftp://example.com")
	v.Email("email", "not-an-email")
	score := 11
	v.Range("performance_score", &score, 0, 10)

	err := v.Err()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	appErr, ok := As(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if appErr.Code != CodeValidation {
		t.Fatalf("unexpected code: %s", appErr.Code)
	}
	want := map[string]string{
		"name":              MsgBlank,
		"title":             MsgTooLong,
		"website":           MsgInvalidURL,
		"email":             MsgInvalid,
		"performance_score": "must be less than or equal to 10",
	}
	for field, message := range want {
		if appErr.Fields[field] != message {
			t.Fatalf("field %s: got %q want %q", field, appErr.Fields[field], message)
		}
	}
	if appErr.Messages[0] != "Name can't be blank" {
		t.Fatalf("unexpected full message: %q", appErr.Messages[0])
	}
}

func TestValidationKeepsFirstMessagePerField(t *testing.T) {
	var v Validation
	v.Add("status", "first")
	v.Add("status", "second")
	appErr, ok := As(v.Err())
	if !ok {
		t.Fatalf("expected *Error")
	}
	if appErr.Fields["status"] != "first" || len(appErr.Messages) != 2 {
		t.Fatalf("unexpected error: %+v", appErr)
	}
}

func TestValidationEmpty(t *testing.T) {
	var v Validation
	v.HTTPURL("website", "")
	v.Email("email", "")
	v.Range("score", nil, 0, 10)
	if err := v.Err(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestHumanize(t *testing.T) {
	cases := map[string]string{
		"hr_screening":      "Hr screening",
		"next_follow_up_on": "Next follow up on",
		"":                  "",
		"IN_REVIEW":         "In review",
	}
	for input, want := range cases {
		if got := Humanize(input); got != want {
			t.Fatalf("Humanize(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestIsHTTPURL(t *testing.T) {
	if !IsHTTPURL("https://example.com/jobs/1") {
		t.Fatalf("expected https url to be valid")
	}
	for _, value := range []string{"example.com", "mailto:a@b.c", "https://"} {
		if IsHTTPURL(value) {
			t.Fatalf("expected %q to be invalid", value)
		}
	}
}

package common

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.February, 28)
	if got := d.AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("unexpected leap day: %s", got)
	}
	if got := d.DaysUntil(NewDate(2024, time.March, 2)); got != 3 {
		t.Fatalf("unexpected days until: %d", got)
	}
	if got := d.DaysUntil(NewDate(2024, time.February, 20)); got != -8 {
		t.Fatalf("unexpected negative days: %d", got)
	}
	if !d.Before(d.AddDays(1)) || d.After(d) {
		t.Fatalf("unexpected ordering")
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	instant := time.Date(2024, time.March, 1, 2, 0, 0, 0, time.UTC)
	if got := DateOf(instant.In(loc)).String(); got != "2024-02-29" {
		t.Fatalf("expected previous day in local zone, got %s", got)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2024-05-06 00:00:00+00:00"); err != nil {
		t.Fatalf("scan text: %v", err)
	}
	if d != NewDate(2024, time.May, 6) {
		t.Fatalf("unexpected date: %v", d)
	}
	if err := d.Scan(time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2023-01-02" {
		t.Fatalf("unexpected date: %s", d)
	}
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error for int source")
	}

	var n NullDate
	if err := n.Scan(nil); err != nil || n.Ptr() != nil {
		t.Fatalf("expected null date, got %v %v", n, err)
	}
}

func TestDateJSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		On Date `json:"on"`
	}{On: NewDate(2024, time.July, 4)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != `{"on":"2024-07-04"}` {
		t.Fatalf("unexpected payload: %s", payload)
	}

	var decoded struct {
		On Date `json:"on"`
	}
	if err := json.Unmarshal([]byte(`{"on":"not-a-date"}`), &decoded); err == nil {
		t.Fatalf("expected parse error")
	}
}

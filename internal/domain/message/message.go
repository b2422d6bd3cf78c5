package message

import (
	"strings"
	"time"
	"unicode/utf8"

	"jobtracker/internal/common"
)

type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "received"
)

const DefaultShortLength = 100

func ParseDirection(value string) (Direction, error) {
	direction := Direction(strings.ToLower(strings.TrimSpace(value)))
	if !direction.Valid() {
		return "", common.NewValidationError("invalid direction", map[string]string{"direction": "is not included in the list"})
	}
	return direction, nil
}

func (d Direction) Valid() bool {
	switch d {
	case DirectionSent, DirectionReceived:
		return true
	default:
		return false
	}
}

// Display renders the direction from the user's point of view.
func (d Direction) Display() string {
	switch d {
	case DirectionSent:
		return "To"
	case DirectionReceived:
		return "From"
	default:
		return ""
	}
}

type Message struct {
	ID                   int64     `json:"id"`
	ContactID            int64     `json:"contact_id"`
	ContactName          string    `json:"contact_name,omitempty"`
	ApplicationProcessID int64     `json:"application_process_id"`
	Content              string    `json:"content"`
	Direction            Direction `json:"direction"`
	SentAt               time.Time `json:"sent_at"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (m Message) Validate() error {
	var v common.Validation
	if m.ContactID <= 0 {
		v.Add("contact", "must exist")
	}
	if m.ApplicationProcessID <= 0 {
		v.Add("application_process", "must exist")
	}
	v.Required("content", m.Content)
	if m.Direction == "" {
		v.Add("direction", common.MsgBlank)
	} else if !m.Direction.Valid() {
		v.Add("direction", "is not included in the list")
	}
	if m.SentAt.IsZero() {
		v.Add("sent_at", common.MsgBlank)
	}
	return v.Err()
}

// ShortContent truncates to limit runes, the last three being "...".
func (m Message) ShortContent(limit int) string {
	if utf8.RuneCountInString(m.Content) <= limit {
		return m.Content
	}
	runes := []rune(m.Content)
	cut := limit - 3
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + "..."
}

// DaysAgo counts calendar days in now's location.
func (m Message) DaysAgo(now time.Time) int {
	return common.DateOf(m.SentAt.In(now.Location())).DaysUntil(common.DateOf(now))
}

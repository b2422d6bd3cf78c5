package common

import (
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MsgBlank      = "can't be blank"
	MsgTooLong    = "is too long (maximum is 255 characters)"
	MsgInvalidURL = "must be a valid URL"
	MsgInvalid    = "is invalid"
)

const MaxStringLength = 255

// Validation accumulates field errors for one record.
type Validation struct {
	fields   map[string]string
	messages []string
}

func (v *Validation) Add(field, message string) {
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, exists := v.fields[field]; !exists {
		v.fields[field] = message
	}
	v.messages = append(v.messages, FullMessage(field, message))
}

func (v *Validation) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, MsgBlank)
	}
}

func (v *Validation) MaxLength(field, value string) {
	if utf8.RuneCountInString(value) > MaxStringLength {
		v.Add(field, MsgTooLong)
	}
}

func (v *Validation) HTTPURL(field, value string) {
	if value != "" && !IsHTTPURL(value) {
		v.Add(field, MsgInvalidURL)
	}
}

func (v *Validation) Email(field, value string) {
	if value != "" && !IsEmail(value) {
		v.Add(field, MsgInvalid)
	}
}

// Range checks an optional integer against inclusive bounds.
func (v *Validation) Range(field string, value *int, min, max int) {
	if value == nil {
		return
	}
	if *value < min {
		v.Add(field, "must be greater than or equal to "+strconv.Itoa(min))
	} else if *value > max {
		v.Add(field, "must be less than or equal to "+strconv.Itoa(max))
	}
}

func (v *Validation) Valid() bool {
	return len(v.messages) == 0
}

// Err returns nil when no error was added.
func (v *Validation) Err() error {
	if v.Valid() {
		return nil
	}
	fields := make(map[string]string, len(v.fields))
	for key, value := range v.fields {
		fields[key] = value
	}
	return &Error{
		Code:     CodeValidation,
		Message:  "validation failed",
		Fields:   fields,
		Messages: append([]string(nil), v.messages...),
	}
}

// FullMessage renders "applied_on", "can't be blank" as "Applied on can't be blank".
func FullMessage(field, message string) string {
	return Humanize(field) + " " + message
}

// Humanize turns snake_case identifiers into a capitalised phrase.
func Humanize(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", " "))
	if value == "" {
		return ""
	}
	value = strings.ToLower(value)
	return strings.ToUpper(value[:1]) + value[1:]
}

func IsHTTPURL(value string) bool {
	parsed, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}

func IsEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	at := strings.LastIndex(value, "@")
	return at > 0 && at < len(value)-1
}

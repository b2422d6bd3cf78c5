package common

import (
	"errors"
	"sort"
)

type Code string

const (
	CodeValidation   Code = "validation_error"
	CodeNotFound     Code = "not_found"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeConflict     Code = "conflict"
	CodeRateLimited  Code = "rate_limited"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal"
)

// Error is the error type every layer returns to the HTTP boundary.
// Fields keeps the first message per field, Messages the full
// human-readable messages in the order they were added.
type Error struct {
	Code     Code
	Message  string
	Fields   map[string]string
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(code Code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func NewValidationError(message string, fields map[string]string) *Error {
	messages := make([]string, 0, len(fields))
	for _, field := range sortedKeys(fields) {
		messages = append(messages, FullMessage(field, fields[field]))
	}
	return &Error{Code: CodeValidation, Message: message, Fields: fields, Messages: messages}
}

func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

func Is(err error, code Code) bool {
	target, ok := As(err)
	return ok && target.Code == code
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

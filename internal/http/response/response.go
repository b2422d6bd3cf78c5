package response

import (
	"encoding/json"
	"net/http"

	"jobtracker/internal/common"
)

type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Errors  []string          `json:"errors,omitempty"`
}

// errorRecorder is implemented by the logging middleware's writer so that
// causes of internal errors end up in the request log.
type errorRecorder interface {
	RecordError(err error)
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Error(w http.ResponseWriter, err error) {
	appErr, ok := common.As(err)
	if !ok {
		appErr = common.NewError(common.CodeInternal, "internal error", err)
	}
	status := StatusFor(appErr.Code)
	if status >= http.StatusInternalServerError {
		if recorder, ok := w.(errorRecorder); ok {
			recorder.RecordError(err)
		}
	}
	message := appErr.Message
	if appErr.Code == common.CodeInternal {
		message = "internal error"
	}
	JSON(w, status, errorBody{
		Error:   string(appErr.Code),
		Message: message,
		Fields:  appErr.Fields,
		Errors:  appErr.Messages,
	})
}

// Messages returns the human-readable messages of a validation error,
// falling back to the error message itself.
func Messages(err error) []string {
	appErr, ok := common.As(err)
	if !ok {
		return []string{"internal error"}
	}
	if len(appErr.Messages) > 0 {
		return appErr.Messages
	}
	return []string{appErr.Message}
}

func StatusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusUnprocessableEntity
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeUnavailable:
		return http.StatusServiceUnavailable
	case common.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

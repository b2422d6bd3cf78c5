package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobtracker/internal/common"
	"jobtracker/internal/http/middleware"
	"jobtracker/internal/http/response"
)

// Accepted layouts for datetime fields. Values without an offset come from
// datetime-local or date inputs and are read in the configured time zone;
// a bare date means midnight.
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewError(common.CodeValidation, "request body is empty", err)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return common.NewError(common.CodeValidation, "request body is too large", err)
		}
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

func idFromPath(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewError(common.CodeNotFound, "record not found", err)
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func currentUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return 0, false
	}
	return userID, true
}

// parseDate reads an optional "2006-01-02" field; blank means absent.
func parseDate(v *common.Validation, field, value string) *common.Date {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	date, err := common.ParseDate(value)
	if err != nil {
		v.Add(field, common.MsgInvalid)
		return nil
	}
	return &date
}

// parseTime reads an optional datetime field; blank yields the zero time.
func parseTime(v *common.Validation, field, value string, loc *time.Location) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed
		}
	}
	v.Add(field, common.MsgInvalid)
	return time.Time{}
}

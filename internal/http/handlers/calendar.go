package handlers

import (
	"net/http"

	"jobtracker/internal/app"
	"jobtracker/internal/http/response"
)

type CalendarHandler struct {
	calendar *app.CalendarService
}

func NewCalendarHandler(calendar *app.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

func (h *CalendarHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	feed, err := h.calendar.Feed(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Render(w, r, "Calendar/Index", feed)
}

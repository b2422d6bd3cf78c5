package handlers

import (
	"net/http"

	"jobtracker/internal/app"
	"jobtracker/internal/common"
	"jobtracker/internal/domain/message"
	"jobtracker/internal/http/response"
)

type MessageHandler struct {
	messages *app.MessageService
	clock    app.Clock
}

func NewMessageHandler(messages *app.MessageService, clock app.Clock) *MessageHandler {
	return &MessageHandler{messages: messages, clock: clock}
}

type messageFields struct {
	ContactID int64  `json:"contact_id"`
	Content   string `json:"content"`
	Direction string `json:"direction"`
	SentAt    string `json:"sent_at"`
}

type messageRequest struct {
	Message messageFields `json:"message"`
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}
	jobID, err := idFromPath(r, "id")
	if err != nil {
		response.Error(w, err)
		return
	}
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	var v common.Validation
	item := message.Message{
		ContactID: req.Message.ContactID,
		Content:   req.Message.Content,
		Direction: message.Direction(req.Message.Direction),
		SentAt:    parseTime(&v, "sent_at", req.Message.SentAt, h.clock.Zone()),
	}
	if err := v.Err(); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.messages.Create(r.Context(), jobID, item)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, newMessageView(*created, h.clock.Current()))
}

// File: internal/handlers/message_handler.go
package handlers

import (
	"net/http"

	"github.com/teamspace/go-teamspace/internal/dtos"
	"github.com/teamspace/go-teamspace/internal/middleware"
	"github.com/teamspace/go-teamspace/internal/services"
)

type MessageHandler struct {
	MessageService *services.MessageService
}

func NewMessageHandler(ms *services.MessageService) *MessageHandler {
	return &MessageHandler{MessageService: ms}
}

// GetChannelMessages returns a channel timeline, oldest first.
func (h *MessageHandler) GetChannelMessages(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	channelID, ok := parseChannelID(w, r)
	if !ok {
		return
	}

	messages, err := h.MessageService.ListByChannel(r.Context(), channelID, user.ID)
	if err != nil {
		writeServiceError(w, err, "could not retrieve messages")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// PostMessage appends a message to a channel the caller belongs to.
func (h *MessageHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	channelID, ok := parseChannelID(w, r)
	if !ok {
		return
	}

	var req dtos.PostMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.MessageService.Append(r.Context(), channelID, user.ID, req.Content)
	if err != nil {
		writeServiceError(w, err, "could not post message")
		return
	}

	writeJSON(w, http.StatusCreated, message)
}

// GetMyMessages returns the caller's own messages, newest first.
func (h *MessageHandler) GetMyMessages(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	messages, err := h.MessageService.ListBySender(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "could not retrieve messages")
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

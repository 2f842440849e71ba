// File: internal/handlers/ai_chat_handler.go
package handlers

import (
	"net/http"

	"github.com/teamspace/go-teamspace/internal/dtos"
	"github.com/teamspace/go-teamspace/internal/middleware"
	"github.com/teamspace/go-teamspace/internal/services"
)

type AIChatHandler struct {
	AIChatService *services.AIChatService
}

func NewAIChatHandler(acs *services.AIChatService) *AIChatHandler {
	return &AIChatHandler{AIChatService: acs}
}

// Converse runs one quota-gated assistant exchange.
func (h *AIChatHandler) Converse(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req dtos.AiChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	response, remaining, err := h.AIChatService.Converse(r.Context(), user.ID, req.Message)
	if err != nil {
		writeServiceError(w, err, "could not process ai chat")
		return
	}

	writeJSON(w, http.StatusOK, dtos.AiChatResponse{
		Response:       response,
		RemainingToday: remaining,
	})
}

// GetHistory returns the caller's recent exchanges, newest first.
func (h *AIChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	records, err := h.AIChatService.History(r.Context(), user.ID, services.DefaultHistoryLimit)
	if err != nil {
		writeServiceError(w, err, "could not retrieve history")
		return
	}

	writeJSON(w, http.StatusOK, dtos.AiChatHistoryResponse{Chats: records})
}

// GetRemaining reports today's remaining quota.
func (h *AIChatHandler) GetRemaining(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	remaining, err := h.AIChatService.RemainingUsage(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "could not check remaining usage")
		return
	}

	writeJSON(w, http.StatusOK, dtos.AiChatRemainingResponse{Remaining: remaining})
}

// File: internal/handlers/channel_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/teamspace/go-teamspace/internal/dtos"
	"github.com/teamspace/go-teamspace/internal/middleware"
	"github.com/teamspace/go-teamspace/internal/services"
)

type ChannelHandler struct {
	ChannelService *services.ChannelService
}

func NewChannelHandler(cs *services.ChannelService) *ChannelHandler {
	return &ChannelHandler{ChannelService: cs}
}

// ListChannels returns every channel the caller belongs to.
func (h *ChannelHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	channels, err := h.ChannelService.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "could not retrieve channels")
		return
	}

	writeJSON(w, http.StatusOK, channels)
}

// GetChannel returns one channel, members only.
func (h *ChannelHandler) GetChannel(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	channelID, ok := parseChannelID(w, r)
	if !ok {
		return
	}

	channel, err := h.ChannelService.Get(r.Context(), channelID, user.ID)
	if err != nil {
		writeServiceError(w, err, "could not retrieve channel")
		return
	}

	writeJSON(w, http.StatusOK, channel)
}

// CreateChannel creates a group channel with the caller as its first
// member.
func (h *ChannelHandler) CreateChannel(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req dtos.CreateChannelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	channel, err := h.ChannelService.CreateGroup(r.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err, "invalid channel data")
		return
	}

	writeJSON(w, http.StatusCreated, channel)
}

// AddMembers invites users to a channel the caller belongs to.
func (h *ChannelHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	channelID, ok := parseChannelID(w, r)
	if !ok {
		return
	}

	var req dtos.AddMembersRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	channel, allAlreadyMembers, err := h.ChannelService.AddMembers(r.Context(), channelID, user.ID, req.UserIDs)
	if err != nil {
		writeServiceError(w, err, "invalid member data")
		return
	}

	if allAlreadyMembers {
		// Designed idempotence: requesting only existing members is a
		// success, not an error.
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "all requested users are already members",
			"channel": channel,
		})
		return
	}

	writeJSON(w, http.StatusOK, channel)
}

// CreateDirectMessage opens (or returns) the 1:1 channel with another
// user.
func (h *ChannelHandler) CreateDirectMessage(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req dtos.CreateDirectMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	channel, err := h.ChannelService.CreateOrGetDirect(r.Context(), user.ID, req.UserID)
	if err != nil {
		writeServiceError(w, err, "could not open direct message")
		return
	}

	writeJSON(w, http.StatusOK, channel)
}

// parseChannelID reads the numeric channel ID path parameter.
func parseChannelID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil || id == 0 {
		writeError(w, "invalid channel ID", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// File: internal/handlers/user_handler.go
package handlers

import (
	"net/http"

	"github.com/teamspace/go-teamspace/internal/dtos"
	"github.com/teamspace/go-teamspace/internal/middleware"
	"github.com/teamspace/go-teamspace/internal/services/user_services"
)

type UserHandler struct {
	UserService *user_services.UserService
}

func NewUserHandler(us *user_services.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

// GetMe returns the authenticated user's own profile.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, dtos.UserFromDomain(user))
}

// UpdateMe renames the authenticated user.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req dtos.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.UserService.UpdateName(r.Context(), user.ID, req.Name)
	if err != nil {
		writeServiceError(w, err, "could not update profile")
		return
	}

	writeJSON(w, http.StatusOK, dtos.UserFromDomain(updated))
}

// ListUsers returns every other user restricted to id and name, for
// the member picker.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		writeError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	users, err := h.UserService.ListOthers(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "could not list users")
		return
	}

	writeJSON(w, http.StatusOK, dtos.MembersFromUsers(users))
}

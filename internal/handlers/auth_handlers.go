// File: internal/handlers/auth_handlers.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/teamspace/go-teamspace/internal/dtos"
	"github.com/teamspace/go-teamspace/internal/services/user_services"
)

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	AuthService *user_services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *user_services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: service}
}

// Signup handles new account registrations.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dtos.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user_services.ErrEmailTaken) {
			writeError(w, "email already registered", http.StatusConflict)
			return
		}
		writeServiceError(w, err, "could not create account")
		return
	}

	setAuthCookie(w, token)
	writeJSON(w, http.StatusCreated, dtos.LoginResponse{
		User:  dtos.UserFromDomain(user),
		Token: token,
	})
}

// Login validates credentials and sets the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user_services.ErrInvalidCredentials) {
			writeError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		writeServiceError(w, err, "could not log in")
		return
	}

	setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, dtos.LoginResponse{
		User:  dtos.UserFromDomain(user),
		Token: token,
	})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
}

// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/services/user_services"
)

// NewAuthMiddleware wraps API handlers with identity resolution. The
// session token comes from the auth_token cookie (or a Bearer header
// for non-browser clients); its subject is resolved to an internal
// user record which is injected into the request context. Unauthorized
// requests never reach the wrapped handler.
func NewAuthMiddleware(authService *user_services.AuthService, userService *user_services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			authID, err := authService.ValidateJWTToken(token)
			if err != nil {
				log.Printf("[AuthMiddleware] Invalid token: %v", err)
				clearAuthCookie(w)
				writeAuthError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			user, err := userService.ResolveAuthIdentity(r.Context(), authID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Valid session but no matching user row; keep the
					// response generic.
					writeAuthError(w, http.StatusNotFound, "user record not found")
					return
				}
				log.Printf("[AuthMiddleware] Identity resolution failed: %v", err)
				writeAuthError(w, http.StatusInternalServerError, "authentication failed")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("auth_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

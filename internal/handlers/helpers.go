// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/teamspace/go-teamspace/internal/domain"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeValidationError returns the field-level error map alongside a
// generic message.
func writeValidationError(w http.ResponseWriter, verr *domain.ValidationError, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   verr.Fields,
		"message": message,
	})
}

// writeServiceError maps the shared error taxonomy to status codes in
// one place. Anything unrecognized is logged and surfaced as a generic
// 500 so internal detail never leaks to callers.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr, fallback)
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, "not authenticated", http.StatusUnauthorized)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, "access denied", http.StatusForbidden)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeError(w, "daily usage limit exceeded, please wait until tomorrow", http.StatusTooManyRequests)
	default:
		log.Printf("[Handlers] Internal error: %v", err)
		writeError(w, fallback, http.StatusInternalServerError)
	}
}

// decodeJSON parses a request body, rejecting unparsable payloads
// before any validation runs.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// File: internal/middleware/constants.go
package middleware

import (
	"context"

	"github.com/teamspace/go-teamspace/internal/domain"
)

// Context keys for middleware communication
type contextKey string

const (
	UserKey contextKey = "user"
)

// UserFromContext returns the authenticated user injected by the auth
// middleware, or nil outside an authenticated request.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(UserKey).(*domain.User)
	return u
}

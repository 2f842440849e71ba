// File: internal/repository/aichat/interface.go
package aichat

import (
	"context"
	"time"

	"github.com/teamspace/go-teamspace/internal/domain"
)

// AiChatRepository defines storage operations for the assistant
// exchange ledger. CountSince is the quota-accounting read; every
// quota decision goes through it with the same window start.
type AiChatRepository interface {
	Create(ctx context.Context, record *domain.AiChatRecord) (*domain.AiChatRecord, error)
	CountSince(ctx context.Context, userID uint, since time.Time) (int64, error)
	FindRecentByUserID(ctx context.Context, userID uint, limit int) ([]domain.AiChatRecord, error)
}

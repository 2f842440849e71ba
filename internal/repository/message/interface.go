// File: internal/repository/message/interface.go
package message

import (
	"context"

	"github.com/teamspace/go-teamspace/internal/domain"
)

// MessageRepository defines storage operations for the append-only
// message ledger. Create is the only write.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (*domain.Message, error)
	FindByChannelID(ctx context.Context, channelID uint) ([]domain.Message, error)
	FindBySenderID(ctx context.Context, senderID uint) ([]domain.Message, error)
}

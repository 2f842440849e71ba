// File: internal/repository/channel/interface.go
package channel

import (
	"context"

	"github.com/teamspace/go-teamspace/internal/domain"
)

// ChannelRepository defines storage operations for channels and their
// membership rows. Every read returns channels with the member set
// preloaded; access decisions upstream depend on it.
type ChannelRepository interface {
	Create(ctx context.Context, ch *domain.Channel) (*domain.Channel, error)
	FindByID(ctx context.Context, channelID uint) (*domain.Channel, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Channel, error)
	AddMembers(ctx context.Context, channelID uint, userIDs []uint) (*domain.Channel, error)
	FindOrCreateDirect(ctx context.Context, userA, userB uint) (*domain.Channel, error)
	IsMember(ctx context.Context, channelID, userID uint) (bool, error)
}

// File: internal/domain/channel.go
package domain

import (
	"fmt"
	"time"
)

// ChannelKind distinguishes named group channels from 1:1 direct channels.
type ChannelKind string

const (
	ChannelKindGroup  ChannelKind = "group"
	ChannelKindDirect ChannelKind = "direct"
)

const (
	ChannelNameMaxLength        = 50
	ChannelDescriptionMaxLength = 200
)

// Channel is a container of messages with an explicit member set.
// Group channels carry a name and description; direct channels are
// anonymous and hold exactly two members. DirectKey is the normalized
// unordered member pair of a direct channel; its unique index is what
// guarantees at most one direct channel per user pair even under
// concurrent create requests.
type Channel struct {
	ID          uint            `gorm:"primarykey"`
	Kind        ChannelKind     `gorm:"not null;size:10;index"`
	Name        string          `gorm:"size:50"`
	Description string          `gorm:"size:200"`
	DirectKey   *string         `gorm:"uniqueIndex;size:64"`
	Members     []ChannelMember `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ChannelMember is the membership join row. The composite unique index
// makes duplicate member inserts a storage-level error rather than a
// silent data corruption.
type ChannelMember struct {
	ID        uint `gorm:"primarykey"`
	ChannelID uint `gorm:"not null;uniqueIndex:idx_channel_member"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_channel_member;index"`
	CreatedAt time.Time
}

// DirectChannelKey normalizes an unordered user pair into the unique
// lookup key for direct channels.
func DirectChannelKey(userA, userB uint) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("%d:%d", userA, userB)
}

// HasMember reports whether the given user is in the loaded member set.
func (c *Channel) HasMember(userID uint) bool {
	for _, m := range c.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// File: internal/domain/message.go
package domain

import "time"

// Message is a single immutable post within a channel. Messages are
// append-only: there is no edit or delete path.
type Message struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ChannelID uint      `json:"channel_id" gorm:"not null;index"`
	SenderID  uint      `json:"sender_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"not null;size:1000"`
	CreatedAt time.Time `json:"created_at"`
}

const MessageContentMaxLength = 1000

// File: internal/domain/ai_chat.go
package domain

import "time"

// AiChatRecord is one assistant exchange. Rows double as the quota
// ledger: counting a user's records since local midnight yields today's
// usage.
type AiChatRecord struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index:idx_ai_chat_user_created"`
	Message   string    `json:"message" gorm:"not null"`
	Response  string    `json:"response" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_ai_chat_user_created"`
}

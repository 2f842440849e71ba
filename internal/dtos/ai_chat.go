// File: internal/dtos/ai_chat.go
package dtos

import "github.com/teamspace/go-teamspace/internal/domain"

// AiChatRequest is the payload for one assistant exchange.
type AiChatRequest struct {
	Message string `json:"message"`
}

// AiChatResponse returns the assistant reply and the post-exchange
// remaining quota for today.
type AiChatResponse struct {
	Response       string `json:"response"`
	RemainingToday int    `json:"remainingToday"`
}

// AiChatHistoryResponse wraps the conversation history list.
type AiChatHistoryResponse struct {
	Chats []domain.AiChatRecord `json:"chats"`
}

// AiChatRemainingResponse reports today's remaining quota.
type AiChatRemainingResponse struct {
	Remaining int `json:"remaining"`
}

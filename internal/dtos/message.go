// File: internal/dtos/message.go
package dtos

import (
	"time"

	"github.com/teamspace/go-teamspace/internal/domain"
)

// MessageResponse is the API view of a message with the sender resolved
// to id and name.
type MessageResponse struct {
	ID        uint           `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Sender    MemberResponse `json:"sender"`
	ChannelID uint           `json:"channelId"`
}

// PostMessageRequest is the payload for posting into a channel.
type PostMessageRequest struct {
	Content string `json:"content"`
}

// MessageFromDomain maps a message and a user lookup table to the API
// view.
func MessageFromDomain(msg *domain.Message, usersByID map[uint]domain.User) MessageResponse {
	sender := MemberResponse{ID: msg.SenderID}
	if u, ok := usersByID[msg.SenderID]; ok {
		sender.Name = u.Name
	}
	return MessageResponse{
		ID:        msg.ID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
		Sender:    sender,
		ChannelID: msg.ChannelID,
	}
}

// MessagesFromDomain maps a slice of messages preserving order.
func MessagesFromDomain(msgs []domain.Message, usersByID map[uint]domain.User) []MessageResponse {
	out := make([]MessageResponse, len(msgs))
	for i := range msgs {
		out[i] = MessageFromDomain(&msgs[i], usersByID)
	}
	return out
}

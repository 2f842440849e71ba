// File: internal/dtos/channel.go
package dtos

import (
	"github.com/teamspace/go-teamspace/internal/domain"
)

// MemberResponse is the only shape in which other users appear inside
// channel and message payloads: id and name, never email.
type MemberResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ChannelResponse is the API view of a channel with its member list
// resolved to display names.
type ChannelResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ChannelType string           `json:"channelType"`
	Members     []MemberResponse `json:"members"`
}

// CreateChannelRequest is the payload for creating a group channel.
type CreateChannelRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AddMembersRequest is the payload for inviting users to a channel.
type AddMembersRequest struct {
	UserIDs []uint `json:"userIds"`
}

// CreateDirectMessageRequest is the payload for opening a DM thread.
type CreateDirectMessageRequest struct {
	UserID uint `json:"userId"`
}

// ChannelFromDomain maps a channel and a user lookup table to the API
// view. Members whose user row has vanished are skipped rather than
// rendered nameless.
func ChannelFromDomain(ch *domain.Channel, usersByID map[uint]domain.User) ChannelResponse {
	members := make([]MemberResponse, 0, len(ch.Members))
	for _, m := range ch.Members {
		u, ok := usersByID[m.UserID]
		if !ok {
			continue
		}
		members = append(members, MemberResponse{ID: u.ID, Name: u.Name})
	}
	return ChannelResponse{
		ID:          ch.ID,
		Name:        ch.Name,
		Description: ch.Description,
		ChannelType: string(ch.Kind),
		Members:     members,
	}
}

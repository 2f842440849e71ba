// File: internal/services/message_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/dtos"
	"github.com/teamspace/go-teamspace/internal/repository/channel"
	"github.com/teamspace/go-teamspace/internal/repository/message"
	"github.com/teamspace/go-teamspace/internal/repository/user"
)

// MessageService implements the append-only message ledger. Membership
// is verified on every read and write against the channel store, not
// against anything the client claims.
type MessageService struct {
	messageRepo message.MessageRepository
	channelRepo channel.ChannelRepository
	userRepo    user.UserRepository
	logger      Logger
}

func NewMessageService(messageRepo message.MessageRepository, channelRepo channel.ChannelRepository, userRepo user.UserRepository, logger Logger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		channelRepo: channelRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// ListByChannel returns a channel's timeline in ascending order, only
// to members.
func (s *MessageService) ListByChannel(ctx context.Context, channelID, callerID uint) ([]dtos.MessageResponse, error) {
	if err := s.requireMembership(ctx, channelID, callerID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.FindByChannelID(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return s.toResponses(ctx, messages)
}

// ListBySender returns the caller's own messages, newest first.
func (s *MessageService) ListBySender(ctx context.Context, senderID uint) ([]dtos.MessageResponse, error) {
	messages, err := s.messageRepo.FindBySenderID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return s.toResponses(ctx, messages)
}

// Append posts a message into a channel the sender belongs to. This is
// the ledger's only write; content is validated before storage is
// touched.
func (s *MessageService) Append(ctx context.Context, channelID, senderID uint, content string) (*dtos.MessageResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.NewValidationError("content", "message must not be empty")
	}
	if len(content) > domain.MessageContentMaxLength {
		return nil, domain.NewValidationError("content", "message must be 1000 characters or fewer")
	}

	if err := s.requireMembership(ctx, channelID, senderID); err != nil {
		return nil, err
	}

	msg, err := s.messageRepo.Create(ctx, &domain.Message{
		ChannelID: channelID,
		SenderID:  senderID,
		Content:   content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	s.logger.Info("message posted", "message_id", msg.ID, "channel_id", channelID, "sender_id", senderID)

	responses, err := s.toResponses(ctx, []domain.Message{*msg})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// ===== PRIVATE HELPERS =====

// requireMembership maps "channel missing" to NotFound and
// "non-member" to Forbidden, in that order.
func (s *MessageService) requireMembership(ctx context.Context, channelID, userID uint) error {
	if _, err := s.channelRepo.FindByID(ctx, channelID); err != nil {
		if errors.Is(err, channel.ErrChannelNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to load channel: %w", err)
	}

	ok, err := s.channelRepo.IsMember(ctx, channelID, userID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !ok {
		s.logger.Warn("message access denied", "channel_id", channelID, "user_id", userID)
		return domain.ErrForbidden
	}
	return nil
}

func (s *MessageService) toResponses(ctx context.Context, messages []domain.Message) ([]dtos.MessageResponse, error) {
	idSet := map[uint]bool{}
	ids := []uint{}
	for i := range messages {
		if !idSet[messages[i].SenderID] {
			idSet[messages[i].SenderID] = true
			ids = append(ids, messages[i].SenderID)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve senders: %w", err)
	}

	byID := make(map[uint]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	return dtos.MessagesFromDomain(messages, byID), nil
}

// File: internal/repository/message/message_repository.go
package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/teamspace/go-teamspace/internal/domain"
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create - Enhanced with input validation and secure logging
func (r *gormMessageRepository) Create(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if err := r.validateMessageInput(msg); err != nil {
		log.Printf("[MessageRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		log.Printf("[MessageRepository] Database error creating message in channel ID %d: %v", msg.ChannelID, err)
		return nil, errors.New("database error creating message")
	}

	log.Printf("[MessageRepository] Message created successfully with ID: %d in channel: %d", msg.ID, msg.ChannelID)
	return msg, nil
}

// FindByChannelID returns a channel timeline in ascending order.
// The id tie-break makes the ordering total when timestamps collide.
func (r *gormMessageRepository) FindByChannelID(ctx context.Context, channelID uint) ([]domain.Message, error) {
	if channelID == 0 {
		return nil, errors.New("invalid channel ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for channel ID %d: %v", channelID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

// FindBySenderID returns a user's own messages, newest first.
func (r *gormMessageRepository) FindBySenderID(ctx context.Context, senderID uint) ([]domain.Message, error) {
	if senderID == 0 {
		return nil, errors.New("invalid sender ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ?", senderID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for sender ID %d: %v", senderID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

// ===== PRIVATE HELPERS =====

func (r *gormMessageRepository) validateMessageInput(msg *domain.Message) error {
	if msg == nil {
		return errors.New("message cannot be nil")
	}
	if msg.ChannelID == 0 {
		return errors.New("channel ID is required")
	}
	if msg.SenderID == 0 {
		return errors.New("sender ID is required")
	}
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return errors.New("message content cannot be empty")
	}
	if len(msg.Content) > domain.MessageContentMaxLength {
		return fmt.Errorf("message content exceeds %d characters", domain.MessageContentMaxLength)
	}
	return nil
}

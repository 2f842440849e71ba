// File: internal/repository/aichat/aichat_repository.go
package aichat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/teamspace/go-teamspace/internal/domain"
)

type gormAiChatRepository struct {
	db *gorm.DB
}

func NewAiChatRepository(db *gorm.DB) AiChatRepository {
	return &gormAiChatRepository{db: db}
}

// Create persists one completed exchange. Records are immutable once
// written; there is no update or delete path.
func (r *gormAiChatRepository) Create(ctx context.Context, record *domain.AiChatRecord) (*domain.AiChatRecord, error) {
	if err := r.validateRecordInput(record); err != nil {
		log.Printf("[AiChatRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		log.Printf("[AiChatRepository] Database error creating record for user ID %d: %v", record.UserID, err)
		return nil, errors.New("database error creating ai chat record")
	}

	log.Printf("[AiChatRepository] Record created successfully with ID: %d for user: %d", record.ID, record.UserID)
	return record, nil
}

// CountSince counts a user's exchanges at or after the given instant.
func (r *gormAiChatRepository) CountSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	if userID == 0 {
		return 0, errors.New("invalid user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.AiChatRecord{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	if err != nil {
		log.Printf("[AiChatRepository] Database error counting records for user ID %d: %v", userID, err)
		return 0, errors.New("database error counting ai chat records")
	}

	return count, nil
}

// FindRecentByUserID returns conversation history, newest first.
func (r *gormAiChatRepository) FindRecentByUserID(ctx context.Context, userID uint, limit int) ([]domain.AiChatRecord, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	if limit <= 0 || limit > 1000 {
		limit = 50 // Safe default
	}

	var records []domain.AiChatRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		log.Printf("[AiChatRepository] Database error finding records for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching ai chat records")
	}

	return records, nil
}

// ===== PRIVATE HELPERS =====

func (r *gormAiChatRepository) validateRecordInput(record *domain.AiChatRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	if record.UserID == 0 {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(record.Message) == "" {
		return errors.New("message is required")
	}
	if record.Response == "" {
		return errors.New("response is required")
	}
	return nil
}

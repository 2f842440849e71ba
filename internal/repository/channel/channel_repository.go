// File: internal/repository/channel/channel_repository.go
package channel

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/teamspace/go-teamspace/internal/domain"
)

var ErrChannelNotFound = errors.New("channel not found")

type gormChannelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &gormChannelRepository{db: db}
}

// Create - Enhanced with input validation and secure logging
func (r *gormChannelRepository) Create(ctx context.Context, ch *domain.Channel) (*domain.Channel, error) {
	if err := r.validateChannelInput(ch); err != nil {
		log.Printf("[ChannelRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(ch).Error; err != nil {
		log.Printf("[ChannelRepository] Database error during channel creation: %v", err)
		return nil, errors.New("database error creating channel")
	}

	log.Printf("[ChannelRepository] Channel created successfully with ID: %d kind: %s", ch.ID, ch.Kind)
	return r.FindByID(ctx, ch.ID)
}

// FindByID loads a channel with its full member set.
func (r *gormChannelRepository) FindByID(ctx context.Context, channelID uint) (*domain.Channel, error) {
	if channelID == 0 {
		return nil, errors.New("invalid channel ID")
	}

	var ch domain.Channel
	err := r.db.WithContext(ctx).Preload("Members").First(&ch, channelID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		log.Printf("[ChannelRepository] Database error in FindByID for channel ID %d: %v", channelID, err)
		return nil, errors.New("database error finding channel")
	}

	return &ch, nil
}

// FindByUserID returns every channel the user belongs to, members
// preloaded, newest activity first.
func (r *gormChannelRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Channel, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var channelIDs []uint
	err := r.db.WithContext(ctx).Model(&domain.ChannelMember{}).
		Where("user_id = ?", userID).
		Pluck("channel_id", &channelIDs).Error
	if err != nil {
		log.Printf("[ChannelRepository] Database error finding memberships for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching channels")
	}

	if len(channelIDs) == 0 {
		return []domain.Channel{}, nil
	}

	var channels []domain.Channel
	err = r.db.WithContext(ctx).
		Preload("Members").
		Where("id IN ?", channelIDs).
		Order("updated_at DESC, id DESC").
		Find(&channels).Error
	if err != nil {
		log.Printf("[ChannelRepository] Database error finding channels for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching channels")
	}

	return channels, nil
}

// AddMembers inserts membership rows for the given users. Callers are
// expected to have filtered out existing members; a duplicate that
// slips through a concurrent add is skipped per row, so the rest of
// the batch still lands.
func (r *gormChannelRepository) AddMembers(ctx context.Context, channelID uint, userIDs []uint) (*domain.Channel, error) {
	if channelID == 0 {
		return nil, errors.New("invalid channel ID")
	}
	if len(userIDs) == 0 {
		return nil, errors.New("no user IDs provided")
	}

	members := make([]domain.ChannelMember, 0, len(userIDs))
	for _, id := range userIDs {
		if id == 0 {
			return nil, errors.New("invalid user ID in batch")
		}
		members = append(members, domain.ChannelMember{ChannelID: channelID, UserID: id})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&members).Error
	if err != nil {
		log.Printf("[ChannelRepository] Database error adding members to channel ID %d: %v", channelID, err)
		return nil, errors.New("database error adding channel members")
	}

	log.Printf("[ChannelRepository] Added %d members to channel ID %d", len(members), channelID)
	return r.FindByID(ctx, channelID)
}

// FindOrCreateDirect returns the direct channel for the unordered user
// pair, creating it on first request. The lookup-then-create race is
// settled by the unique index on direct_key: the losing writer gets a
// constraint rejection and falls back to re-reading the winner's row.
func (r *gormChannelRepository) FindOrCreateDirect(ctx context.Context, userA, userB uint) (*domain.Channel, error) {
	if userA == 0 || userB == 0 {
		return nil, errors.New("invalid user ID")
	}
	if userA == userB {
		return nil, errors.New("direct channel requires two distinct users")
	}

	key := domain.DirectChannelKey(userA, userB)

	existing, err := r.findByDirectKey(ctx, key)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrChannelNotFound) {
		return nil, err
	}

	ch := &domain.Channel{
		Kind:      domain.ChannelKindDirect,
		DirectKey: &key,
		Members: []domain.ChannelMember{
			{UserID: userA},
			{UserID: userB},
		},
	}

	if err := r.db.WithContext(ctx).Create(ch).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost a concurrent creation race; the channel now exists.
			log.Printf("[ChannelRepository] Direct channel for key %s already created concurrently", key)
			return r.findByDirectKey(ctx, key)
		}
		log.Printf("[ChannelRepository] Database error creating direct channel for key %s: %v", key, err)
		return nil, errors.New("database error creating direct channel")
	}

	log.Printf("[ChannelRepository] Direct channel created successfully with ID: %d", ch.ID)
	return r.FindByID(ctx, ch.ID)
}

// IsMember checks membership without loading the full channel.
func (r *gormChannelRepository) IsMember(ctx context.Context, channelID, userID uint) (bool, error) {
	if channelID == 0 || userID == 0 {
		return false, errors.New("invalid channel ID or user ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Count(&count).Error
	if err != nil {
		log.Printf("[ChannelRepository] Database error checking membership for channel ID %d, user ID %d: %v", channelID, userID, err)
		return false, errors.New("database error checking channel membership")
	}

	return count > 0, nil
}

// ===== PRIVATE HELPERS =====

func (r *gormChannelRepository) findByDirectKey(ctx context.Context, key string) (*domain.Channel, error) {
	var ch domain.Channel
	err := r.db.WithContext(ctx).Preload("Members").
		Where("direct_key = ?", key).
		First(&ch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		log.Printf("[ChannelRepository] Database error finding direct channel for key %s: %v", key, err)
		return nil, errors.New("database error finding direct channel")
	}
	return &ch, nil
}

func (r *gormChannelRepository) validateChannelInput(ch *domain.Channel) error {
	if ch == nil {
		return errors.New("channel cannot be nil")
	}
	switch ch.Kind {
	case domain.ChannelKindGroup:
		if strings.TrimSpace(ch.Name) == "" {
			return errors.New("group channel requires a name")
		}
	case domain.ChannelKindDirect:
		if len(ch.Members) != 2 {
			return errors.New("direct channel requires exactly two members")
		}
		if ch.DirectKey == nil || *ch.DirectKey == "" {
			return errors.New("direct channel requires a direct key")
		}
	default:
		return fmt.Errorf("unknown channel kind: %q", ch.Kind)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

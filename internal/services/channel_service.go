// File: internal/services/channel_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/dtos"
	"github.com/teamspace/go-teamspace/internal/repository/channel"
	"github.com/teamspace/go-teamspace/internal/repository/user"
)

// ChannelService implements the membership-gated channel store. Every
// read and write re-checks membership server-side; client-side
// filtering is never trusted.
type ChannelService struct {
	channelRepo channel.ChannelRepository
	userRepo    user.UserRepository
	logger      Logger
}

func NewChannelService(channelRepo channel.ChannelRepository, userRepo user.UserRepository, logger Logger) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// ListForUser returns every channel the user belongs to, with member
// lists resolved to id and name.
func (s *ChannelService) ListForUser(ctx context.Context, userID uint) ([]dtos.ChannelResponse, error) {
	channels, err := s.channelRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	usersByID, err := s.resolveMembers(ctx, channels)
	if err != nil {
		return nil, err
	}

	out := make([]dtos.ChannelResponse, len(channels))
	for i := range channels {
		out[i] = dtos.ChannelFromDomain(&channels[i], usersByID)
	}
	return out, nil
}

// Get returns one channel, only to its members.
func (s *ChannelService) Get(ctx context.Context, channelID, callerID uint) (*dtos.ChannelResponse, error) {
	ch, err := s.findChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if !ch.HasMember(callerID) {
		s.logger.Warn("channel access denied", "channel_id", channelID, "user_id", callerID)
		return nil, domain.ErrForbidden
	}

	return s.toResponse(ctx, ch)
}

// CreateGroup creates a named group channel with the creator as its
// sole initial member.
func (s *ChannelService) CreateGroup(ctx context.Context, creatorID uint, name, description string) (*dtos.ChannelResponse, error) {
	name = strings.TrimSpace(name)
	fields := map[string]string{}
	if name == "" {
		fields["name"] = "channel name is required"
	} else if len(name) > domain.ChannelNameMaxLength {
		fields["name"] = "channel name must be 50 characters or fewer"
	}
	if len(description) > domain.ChannelDescriptionMaxLength {
		fields["description"] = "description must be 200 characters or fewer"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	ch := &domain.Channel{
		Kind:        domain.ChannelKindGroup,
		Name:        name,
		Description: description,
		Members:     []domain.ChannelMember{{UserID: creatorID}},
	}

	created, err := s.channelRepo.Create(ctx, ch)
	if err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	s.logger.Info("group channel created", "channel_id", created.ID, "creator_id", creatorID)
	return s.toResponse(ctx, created)
}

// AddMembers invites users into a channel the caller belongs to.
// Requested users who are already members are silently dropped; if
// everyone requested is already a member the call succeeds without
// mutating anything and reports allAlreadyMembers.
func (s *ChannelService) AddMembers(ctx context.Context, channelID, callerID uint, userIDs []uint) (resp *dtos.ChannelResponse, allAlreadyMembers bool, err error) {
	if len(userIDs) == 0 {
		return nil, false, domain.NewValidationError("userIds", "specify at least one user to add")
	}

	ch, err := s.findChannel(ctx, channelID)
	if err != nil {
		return nil, false, err
	}

	if !ch.HasMember(callerID) {
		s.logger.Warn("member add denied", "channel_id", channelID, "user_id", callerID)
		return nil, false, domain.ErrForbidden
	}

	// Drop ids that are already members (and duplicates in the request).
	seen := map[uint]bool{}
	newIDs := make([]uint, 0, len(userIDs))
	for _, id := range userIDs {
		if id == 0 {
			return nil, false, domain.NewValidationError("userIds", "user IDs must be positive")
		}
		if seen[id] || ch.HasMember(id) {
			seen[id] = true
			continue
		}
		seen[id] = true
		newIDs = append(newIDs, id)
	}

	if len(newIDs) == 0 {
		resp, err := s.toResponse(ctx, ch)
		return resp, true, err
	}

	ok, err := s.userRepo.ExistsByIDs(ctx, newIDs)
	if err != nil {
		return nil, false, fmt.Errorf("failed to verify users: %w", err)
	}
	if !ok {
		return nil, false, domain.NewValidationError("userIds", "one or more users do not exist")
	}

	updated, err := s.channelRepo.AddMembers(ctx, channelID, newIDs)
	if err != nil {
		return nil, false, fmt.Errorf("failed to add members: %w", err)
	}

	s.logger.Info("channel members added", "channel_id", channelID, "added", len(newIDs), "caller_id", callerID)
	resp, err = s.toResponse(ctx, updated)
	return resp, false, err
}

// CreateOrGetDirect returns the 1:1 channel between the caller and the
// other user, creating it on first request. Calling it repeatedly, even
// concurrently, yields the same channel.
func (s *ChannelService) CreateOrGetDirect(ctx context.Context, callerID, otherID uint) (*dtos.ChannelResponse, error) {
	if otherID == 0 {
		return nil, domain.NewValidationError("userId", "user ID is required")
	}
	if callerID == otherID {
		return nil, domain.NewValidationError("userId", "cannot start a direct message with yourself")
	}

	if _, err := s.userRepo.FindByID(ctx, otherID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	ch, err := s.channelRepo.FindOrCreateDirect(ctx, callerID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to open direct channel: %w", err)
	}

	return s.toResponse(ctx, ch)
}

// IsMember is the membership re-check used by the message ledger.
func (s *ChannelService) IsMember(ctx context.Context, channelID, userID uint) (bool, error) {
	return s.channelRepo.IsMember(ctx, channelID, userID)
}

// ===== PRIVATE HELPERS =====

func (s *ChannelService) findChannel(ctx context.Context, channelID uint) (*domain.Channel, error) {
	ch, err := s.channelRepo.FindByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, channel.ErrChannelNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load channel: %w", err)
	}
	return ch, nil
}

func (s *ChannelService) toResponse(ctx context.Context, ch *domain.Channel) (*dtos.ChannelResponse, error) {
	usersByID, err := s.resolveMembers(ctx, []domain.Channel{*ch})
	if err != nil {
		return nil, err
	}
	resp := dtos.ChannelFromDomain(ch, usersByID)
	return &resp, nil
}

// resolveMembers loads every distinct member of the given channels in
// one query and indexes them by ID.
func (s *ChannelService) resolveMembers(ctx context.Context, channels []domain.Channel) (map[uint]domain.User, error) {
	idSet := map[uint]bool{}
	ids := []uint{}
	for i := range channels {
		for _, m := range channels[i].Members {
			if !idSet[m.UserID] {
				idSet[m.UserID] = true
				ids = append(ids, m.UserID)
			}
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve members: %w", err)
	}

	byID := make(map[uint]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

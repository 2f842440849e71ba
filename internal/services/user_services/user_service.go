// File: internal/services/user_services/user_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/repository/user"
	"github.com/teamspace/go-teamspace/internal/services"
)

// UserService covers profile operations: resolving identities, listing
// workspace members, and renaming oneself.
type UserService struct {
	userRepo user.UserRepository
	logger   services.Logger
}

func NewUserService(userRepo user.UserRepository, logger services.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ResolveAuthIdentity maps an external auth identity to the internal
// user record. The middleware is its only caller.
func (s *UserService) ResolveAuthIdentity(ctx context.Context, authID string) (*domain.User, error) {
	u, err := s.userRepo.FindByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve auth identity: %w", err)
	}
	return u, nil
}

// UpdateName renames the calling user. Only the owner can change their
// own name; the handler never passes anyone else's ID here.
func (s *UserService) UpdateName(ctx context.Context, userID uint, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "name must be at least 1 character")
	}
	if len(name) > domain.UserNameMaxLength {
		return nil, domain.NewValidationError("name", "name must be 30 characters or fewer")
	}

	updated, err := s.userRepo.UpdateName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update name: %w", err)
	}

	s.logger.Info("user renamed", "user_id", userID)
	return updated, nil
}

// ListOthers returns every user except the caller, restricted to id
// and name.
func (s *UserService) ListOthers(ctx context.Context, userID uint) ([]domain.User, error) {
	users, err := s.userRepo.FindAllExcept(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// File: internal/repository/user/interface.go
package user

import (
	"context"

	"github.com/teamspace/go-teamspace/internal/domain"
)

// UserRepository defines storage operations for workspace users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByAuthID(ctx context.Context, authID string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateName(ctx context.Context, userID uint, name string) (*domain.User, error)
	FindAllExcept(ctx context.Context, userID uint) ([]domain.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error)
	ExistsByIDs(ctx context.Context, ids []uint) (bool, error)
}

// File: internal/repository/user/gorm_user_repository.go
package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/teamspace/go-teamspace/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")
var ErrDuplicateEmail = errors.New("email already registered")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create - Enhanced with input validation and secure logging
func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.validateUserInput(user); err != nil {
		log.Printf("[UserRepository] Validation failed: %v", err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		// Secure logging - no sensitive data exposed
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	log.Printf("[UserRepository] User created successfully with ID: %d", user.ID)
	return user, nil
}

// FindByID - Enhanced with secure error handling
func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if id == 0 {
		return nil, errors.New("invalid user ID")
	}

	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return r.handleFindError(err, &user, "FindByID")
}

// FindByAuthID resolves the opaque external identity to an internal user.
func (r *gormUserRepository) FindByAuthID(ctx context.Context, authID string) (*domain.User, error) {
	if strings.TrimSpace(authID) == "" {
		return nil, errors.New("invalid auth identity")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("auth_id = ?", authID).First(&user).Error
	return r.handleFindError(err, &user, "FindByAuthID")
}

// FindByEmail - Enhanced with input validation
func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("invalid email")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return r.handleFindError(err, &user, "FindByEmail")
}

// UpdateName mutates only the display name; other columns are owned by
// the signup path and never updated here.
func (r *gormUserRepository) UpdateName(ctx context.Context, userID uint, name string) (*domain.User, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	result := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("name", name)

	if result.Error != nil {
		log.Printf("[UserRepository] Database error updating name for user ID %d: %v", userID, result.Error)
		return nil, errors.New("database error updating user name")
	}

	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}

	return r.FindByID(ctx, userID)
}

// FindAllExcept lists everyone but the given user, ordered stably for
// the member picker UI.
func (r *gormUserRepository) FindAllExcept(ctx context.Context, userID uint) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", userID).
		Order("id asc").
		Find(&users).Error

	if err != nil {
		log.Printf("[UserRepository] Database error listing users excluding ID %d: %v", userID, err)
		return nil, errors.New("database error retrieving users")
	}

	return users, nil
}

// FindByIDs loads the given users in one query; absent IDs are simply
// missing from the result.
func (r *gormUserRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.User, error) {
	if len(ids) == 0 {
		return []domain.User{}, nil
	}

	var users []domain.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	if err != nil {
		log.Printf("[UserRepository] Database error finding users by IDs: %v", err)
		return nil, errors.New("database error retrieving users")
	}

	return users, nil
}

// ExistsByIDs reports whether every given ID names an existing user.
func (r *gormUserRepository) ExistsByIDs(ctx context.Context, ids []uint) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id IN ?", ids).Count(&count).Error
	if err != nil {
		log.Printf("[UserRepository] Database error checking user existence: %v", err)
		return false, errors.New("database error checking user existence")
	}

	return count == int64(len(ids)), nil
}

// ===== PRIVATE HELPERS =====

func (r *gormUserRepository) handleFindError(err error, user *domain.User, operation string) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("[UserRepository] Database error in %s: %v", operation, err)
		return nil, errors.New("database error finding user")
	}
	return user, nil
}

func (r *gormUserRepository) validateUserInput(user *domain.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	if err := user.IsValid(); err != nil {
		return err
	}
	if user.AuthID == "" {
		return errors.New("auth identity is required")
	}
	if user.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// isUniqueViolation detects unique-constraint rejections across gorm's
// translated error and the raw sqlite message.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/teamspace/go-teamspace/internal/auth"
	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/repository/user"
	"github.com/teamspace/go-teamspace/internal/services"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailTaken = errors.New("email already registered")

// AuthService owns the credential flow: it mints the opaque auth
// identity at signup and exchanges credentials for session tokens.
type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	logger       services.Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, logger services.Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		logger:       logger,
	}
}

// Signup creates a new account and returns the user with a session
// token.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.validateSignupInput(name, email, password); err != nil {
		s.logger.Warn("signup validation failed",
			"email", maskEmail(email),
			"error", err.Error())
		return nil, "", err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		s.logger.Warn("signup failed - email already exists",
			"email", maskEmail(email),
			"existing_user_id", existing.ID)
		return nil, "", ErrEmailTaken
	}
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing email: %w", err)
	}

	u := &domain.User{
		AuthID: uuid.NewString(),
		Name:   name,
		Email:  email,
	}
	if err := u.HashPassword(password); err != nil {
		return nil, "", domain.NewValidationError("password", err.Error())
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		s.logger.Error("signup failed - storage error", "error", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := auth.GenerateJWT(created.AuthID, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Error("JWT token generation failed", "user_id", created.ID, "error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("signup successful", "user_id", created.ID, "email", maskEmail(email))
	return created, token, nil
}

// Login authenticates credentials and returns the user with a session
// token. Failures are indistinguishable between unknown email and
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		s.logger.Warn("login attempt with empty credentials",
			"has_email", email != "",
			"has_password", password != "")
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed - user not found", "email", maskEmail(email))
		return nil, "", ErrInvalidCredentials
	}

	if err := u.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password",
			"email", maskEmail(email),
			"user_id", u.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.AuthID, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Error("JWT token generation failed", "user_id", u.ID, "error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", u.ID, "email", maskEmail(email))
	return u, token, nil
}

// ValidateJWTToken verifies a session token and returns the auth
// identity it carries.
func (s *AuthService) ValidateJWTToken(tokenString string) (string, error) {
	return auth.ValidateToken(tokenString, []byte(s.jwtSecretKey))
}

// ===== PRIVATE HELPERS =====

func (s *AuthService) validateSignupInput(name, email, password string) error {
	fields := map[string]string{}
	if name == "" || len(name) > domain.UserNameMaxLength {
		fields["name"] = "name must be between 1 and 30 characters"
	}
	if !strings.Contains(email, "@") || len(email) > 255 {
		fields["email"] = "email format invalid"
	}
	if len(password) < domain.PasswordMinLength {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// maskEmail keeps logs free of full addresses.
func maskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "****"
	}
	return email[:2] + "****" + email[at:]
}

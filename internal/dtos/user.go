// File: internal/dtos/user.go
package dtos

import (
	"time"

	"github.com/teamspace/go-teamspace/internal/domain"
)

// UserResponse is the owner's view of their own record. Email is only
// ever exposed here; other users see MemberResponse.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SignupRequest is the payload for creating an account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the session token alongside the profile; the
// token is also set as an HttpOnly cookie.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// UpdateProfileRequest is the payload for renaming oneself.
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// UserFromDomain maps a domain.User to the owner's API view.
func UserFromDomain(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// MembersFromUsers maps users to the restricted id+name view.
func MembersFromUsers(users []domain.User) []MemberResponse {
	out := make([]MemberResponse, len(users))
	for i, u := range users {
		out[i] = MemberResponse{ID: u.ID, Name: u.Name}
	}
	return out
}

// File: internal/domain/user.go
package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is an internal workspace member. AuthID is the opaque identity
// minted at signup; session tokens carry it instead of the numeric
// primary key.
type User struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	AuthID       string    `json:"-" gorm:"uniqueIndex;not null;size:64"`
	Name         string    `json:"name" gorm:"not null;size:30"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	UserNameMaxLength = 30
	PasswordMinLength = 8
)

// HashPassword securely hashes the user's password.
func (u *User) HashPassword(password string) error {
	if len(password) < PasswordMinLength {
		return errors.New("password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// ValidatePassword compares a plain-text password with the stored hash.
func (u *User) ValidatePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsValid() error {
	name := strings.TrimSpace(u.Name)
	if name == "" || len(name) > UserNameMaxLength {
		return errors.New("name must be between 1 and 30 characters")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("email format invalid")
	}
	return nil
}

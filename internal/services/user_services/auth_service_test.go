// File: internal/services/user_services/auth_service_test.go
package user_services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/repository/user"
	"github.com/teamspace/go-teamspace/internal/services"
)

const testJWTSecret = "test-secret-key-for-auth-tests"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return db
}

func newAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	return NewAuthService(user.NewGormUserRepository(db), testJWTSecret, &services.NoOpLogger{})
}

func TestSignup_CreatesUserWithSession(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	created, token, err := svc.Signup(context.Background(), "Alice", "Alice@Example.com", "password123")
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.AuthID)
	// Email is stored lowercased.
	assert.Equal(t, "alice@example.com", created.Email)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "password123", created.PasswordHash)

	authID, err := svc.ValidateJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.AuthID, authID)
}

func TestSignup_InputValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		field    string
	}{
		{"empty name", "", "a@example.com", "password123", "name"},
		{"name too long", "0123456789012345678901234567890", "a@example.com", "password123", "name"},
		{"bad email", "Alice", "not-an-email", "password123", "email"},
		{"short password", "Alice", "a@example.com", "short", "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Signup(ctx, tc.userName, tc.email, tc.password)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "Impostor", "ALICE@example.com", "password456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	created, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	u, token, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	authID, err := svc.ValidateJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.AuthID, authID)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, wrongPassword := svc.Login(ctx, "alice@example.com", "wrong-password")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "password123")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestValidateJWTToken_RejectsTampered(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)

	_, token, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.ValidateJWTToken(token + "x")
	assert.Error(t, err)

	other := NewAuthService(user.NewGormUserRepository(db), "a-different-secret", &services.NoOpLogger{})
	_, err = other.ValidateJWTToken(token)
	assert.Error(t, err)
}

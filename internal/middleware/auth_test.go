// File: internal/middleware/auth_test.go
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamspace/go-teamspace/internal/auth"
	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/repository/user"
	"github.com/teamspace/go-teamspace/internal/services"
	"github.com/teamspace/go-teamspace/internal/services/user_services"
)

const testSecret = "middleware-test-secret"

func setupAuthStack(t *testing.T) (func(http.Handler) http.Handler, *domain.User) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.User{}))

	userRepo := user.NewGormUserRepository(db)
	created, err := userRepo.Create(context.Background(), &domain.User{
		AuthID:       "auth-alice",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$testhashvaluetesthashvaluetesthashva",
	})
	require.NoError(t, err)

	authService := user_services.NewAuthService(userRepo, testSecret, &services.NoOpLogger{})
	userService := user_services.NewUserService(userRepo, &services.NoOpLogger{})
	return NewAuthMiddleware(authService, userService), created
}

func protectedHandler(t *testing.T, captured **domain.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	mw, _ := setupAuthStack(t)

	var captured *domain.User
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/channels", nil)

	mw(protectedHandler(t, &captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestAuthMiddleware_GarbageToken(t *testing.T) {
	mw, _ := setupAuthStack(t)

	var captured *domain.User
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/channels", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "not-a-jwt"})

	mw(protectedHandler(t, &captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

func TestAuthMiddleware_ValidTokenUnknownIdentity(t *testing.T) {
	mw, _ := setupAuthStack(t)

	token, err := auth.GenerateJWT("auth-nobody", []byte(testSecret))
	require.NoError(t, err)

	var captured *domain.User
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/channels", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})

	mw(protectedHandler(t, &captured)).ServeHTTP(rec, req)

	// Valid session without a user row is a 404, not a 401.
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Nil(t, captured)
}

func TestAuthMiddleware_CookieInjectsUser(t *testing.T) {
	mw, alice := setupAuthStack(t)

	token, err := auth.GenerateJWT(alice.AuthID, []byte(testSecret))
	require.NoError(t, err)

	var captured *domain.User
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/channels", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})

	mw(protectedHandler(t, &captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, alice.ID, captured.ID)
}

func TestAuthMiddleware_BearerHeaderAccepted(t *testing.T) {
	mw, alice := setupAuthStack(t)

	token, err := auth.GenerateJWT(alice.AuthID, []byte(testSecret))
	require.NoError(t, err)

	var captured *domain.User
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/channels", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	mw(protectedHandler(t, &captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, alice.ID, captured.ID)
}

func TestAuthMiddleware_WrongSecretRejected(t *testing.T) {
	mw, alice := setupAuthStack(t)

	token, err := auth.GenerateJWT(alice.AuthID, []byte("some-other-secret"))
	require.NoError(t, err)

	var captured *domain.User
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/channels", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})

	mw(protectedHandler(t, &captured)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, captured)
}

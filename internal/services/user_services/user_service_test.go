// File: internal/services/user_services/user_service_test.go
package user_services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/repository/user"
	"github.com/teamspace/go-teamspace/internal/services"
)

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return NewUserService(user.NewGormUserRepository(db), &services.NoOpLogger{})
}

func TestResolveAuthIdentity(t *testing.T) {
	db := setupTestDB(t)
	authSvc := newAuthService(t, db)
	userSvc := newUserService(t, db)
	ctx := context.Background()

	created, _, err := authSvc.Signup(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	resolved, err := userSvc.ResolveAuthIdentity(ctx, created.AuthID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)

	_, err = userSvc.ResolveAuthIdentity(ctx, "no-such-identity")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateName_Validation(t *testing.T) {
	db := setupTestDB(t)
	authSvc := newAuthService(t, db)
	userSvc := newUserService(t, db)
	ctx := context.Background()

	created, _, err := authSvc.Signup(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = userSvc.UpdateName(ctx, created.ID, "   ")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = userSvc.UpdateName(ctx, created.ID, "0123456789012345678901234567890")
	require.ErrorAs(t, err, &verr)

	updated, err := userSvc.UpdateName(ctx, created.ID, "Alicia")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
}

func TestUpdateName_UnknownUser(t *testing.T) {
	db := setupTestDB(t)
	userSvc := newUserService(t, db)

	_, err := userSvc.UpdateName(context.Background(), 999, "Ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOthers_ExcludesCaller(t *testing.T) {
	db := setupTestDB(t)
	authSvc := newAuthService(t, db)
	userSvc := newUserService(t, db)
	ctx := context.Background()

	alice, _, err := authSvc.Signup(ctx, "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	bob, _, err := authSvc.Signup(ctx, "Bob", "bob@example.com", "password123")
	require.NoError(t, err)

	others, err := userSvc.ListOthers(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, bob.ID, others[0].ID)
}

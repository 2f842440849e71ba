// File: internal/services/channel_service_test.go
package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/repository/channel"
	"github.com/teamspace/go-teamspace/internal/repository/user"
)

func newChannelService(t *testing.T, db *gorm.DB) *ChannelService {
	t.Helper()
	return NewChannelService(
		channel.NewChannelRepository(db),
		user.NewGormUserRepository(db),
		&NoOpLogger{},
	)
}

func TestCreateGroup_CreatorIsSoleMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")

	resp, err := svc.CreateGroup(context.Background(), alice.ID, "general", "company wide")
	require.NoError(t, err)

	assert.Equal(t, "general", resp.Name)
	assert.Equal(t, "group", resp.ChannelType)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, alice.ID, resp.Members[0].ID)
	assert.Equal(t, "alice", resp.Members[0].Name)
}

func TestCreateGroup_FieldValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, alice.ID, "   ", "")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	_, err = svc.CreateGroup(ctx, alice.ID, strings.Repeat("n", domain.ChannelNameMaxLength+1), "")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	_, err = svc.CreateGroup(ctx, alice.ID, "ok", strings.Repeat("d", domain.ChannelDescriptionMaxLength+1))
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "description")
}

func TestGet_MissingChannelIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")

	_, err := svc.Get(context.Background(), 999, alice.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_NonMemberIsForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	created, err := svc.CreateGroup(ctx, alice.ID, "private", "")
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID, bob.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := svc.Get(ctx, created.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestAddMembers_CallerMustBeMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	ctx := context.Background()

	created, err := svc.CreateGroup(ctx, alice.ID, "general", "")
	require.NoError(t, err)

	_, _, err = svc.AddMembers(ctx, created.ID, bob.ID, []uint{carol.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAddMembers_EmptyRequestRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")
	ctx := context.Background()

	created, err := svc.CreateGroup(ctx, alice.ID, "general", "")
	require.NoError(t, err)

	_, _, err = svc.AddMembers(ctx, created.ID, alice.ID, nil)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestAddMembers_UnknownUserRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")
	ctx := context.Background()

	created, err := svc.CreateGroup(ctx, alice.ID, "general", "")
	require.NoError(t, err)

	_, _, err = svc.AddMembers(ctx, created.ID, alice.ID, []uint{999})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "userIds")
}

func TestAddMembers_AllAlreadyMembersSucceedsWithoutMutation(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	created, err := svc.CreateGroup(ctx, alice.ID, "general", "")
	require.NoError(t, err)

	_, all, err := svc.AddMembers(ctx, created.ID, alice.ID, []uint{bob.ID})
	require.NoError(t, err)
	assert.False(t, all)

	resp, all, err := svc.AddMembers(ctx, created.ID, alice.ID, []uint{alice.ID, bob.ID})
	require.NoError(t, err)
	assert.True(t, all)
	assert.Len(t, resp.Members, 2)

	var count int64
	require.NoError(t, db.Model(&domain.ChannelMember{}).
		Where("channel_id = ?", created.ID).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestAddMembers_DuplicatesInRequestCollapsed(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	created, err := svc.CreateGroup(ctx, alice.ID, "general", "")
	require.NoError(t, err)

	resp, all, err := svc.AddMembers(ctx, created.ID, alice.ID, []uint{bob.ID, bob.ID, bob.ID})
	require.NoError(t, err)
	assert.False(t, all)
	assert.Len(t, resp.Members, 2)
}

func TestCreateOrGetDirect_SelfRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")

	_, err := svc.CreateOrGetDirect(context.Background(), alice.ID, alice.ID)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "userId")
}

func TestCreateOrGetDirect_UnknownUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")

	_, err := svc.CreateOrGetDirect(context.Background(), alice.ID, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrGetDirect_RepeatReturnsSameChannel(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	first, err := svc.CreateOrGetDirect(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "direct", first.ChannelType)
	assert.Len(t, first.Members, 2)

	second, err := svc.CreateOrGetDirect(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestListForUser_ReturnsOnlyOwnChannels(t *testing.T) {
	db := setupTestDB(t)
	svc := newChannelService(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ctx := context.Background()

	mine, err := svc.CreateGroup(ctx, alice.ID, "mine", "")
	require.NoError(t, err)
	_, err = svc.CreateGroup(ctx, bob.ID, "theirs", "")
	require.NoError(t, err)

	channels, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, mine.ID, channels[0].ID)
}

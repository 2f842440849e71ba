// File: internal/services/helpers_test.go
package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamspace/go-teamspace/internal/domain"
	"github.com/teamspace/go-teamspace/internal/repository/user"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Channel{},
		&domain.ChannelMember{},
		&domain.Message{},
		&domain.AiChatRecord{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()

	repo := user.NewGormUserRepository(db)
	created, err := repo.Create(context.Background(), &domain.User{
		AuthID:       fmt.Sprintf("auth-%s", name),
		Name:         name,
		Email:        fmt.Sprintf("%s@example.com", name),
		PasswordHash: "$2a$10$testhashvaluetesthashvaluetesthashva",
	})
	require.NoError(t, err)
	return created
}

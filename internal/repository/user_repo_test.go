// Package repository 用户仓储单元测试
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Alice",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, models.UserRoleUser, found.Role)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{
		Email: "bob@example.com", PasswordHash: "h", Name: "Bob",
	}).Error)

	exists, err := repo.ExistsByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Email: "carol@example.com", PasswordHash: "old", Name: "Carol"}
	require.NoError(t, db.Create(user).Error)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "new-hash"))

	found, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", found.PasswordHash)
}

func TestUserRepository_List(t *testing.T) {
	db := setupUserTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{Email: "a@example.com", PasswordHash: "h", Name: "甲"}).Error)
	require.NoError(t, db.Create(&models.User{Email: "b@example.com", PasswordHash: "h", Name: "乙"}).Error)
	require.NoError(t, db.Create(&models.User{
		Email: "c@example.com", PasswordHash: "h", Name: "丙", Status: models.UserStatusDisabled,
	}).Error)

	users, total, err := repo.List(ctx, 0, 10, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 3)

	_, total, err = repo.List(ctx, 0, 10, map[string]interface{}{"status": int8(models.UserStatusDisabled)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

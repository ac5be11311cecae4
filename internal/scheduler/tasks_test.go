package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	"github.com/dumeirei/hotel-booking-backend/pkg/mail"
)

func setupTaskHandler(t *testing.T) (*TaskHandler, *gorm.DB, *mail.MockSender) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Coupon{},
		&models.OperationLog{},
		&models.Booking{},
	))

	sender := mail.NewMockSender()
	handler := NewTaskHandler(db,
		repository.NewCouponRepository(db),
		repository.NewOperationLogRepository(db),
		sender,
	)
	return handler, db, sender
}

func TestTaskHandler_DisableExpiredCoupons(t *testing.T) {
	handler, db, _ := setupTaskHandler(t)
	ctx := context.Background()

	now := time.Now()
	expired := &models.Coupon{
		Code: "OLD10", Name: "过期券", Type: models.CouponTypeFixed,
		Value: 10, TotalCount: 10,
		StartTime: now.Add(-48 * time.Hour), EndTime: now.Add(-24 * time.Hour),
		Status: models.CouponStatusActive,
	}
	active := &models.Coupon{
		Code: "NEW10", Name: "有效券", Type: models.CouponTypeFixed,
		Value: 10, TotalCount: 10,
		StartTime: now.Add(-24 * time.Hour), EndTime: now.Add(24 * time.Hour),
		Status: models.CouponStatusActive,
	}
	require.NoError(t, db.Create(expired).Error)
	require.NoError(t, db.Create(active).Error)

	require.NoError(t, handler.DisableExpiredCoupons(ctx))

	var got models.Coupon
	require.NoError(t, db.First(&got, expired.ID).Error)
	assert.Equal(t, int8(models.CouponStatusDisabled), got.Status)

	require.NoError(t, db.First(&got, active.ID).Error)
	assert.Equal(t, int8(models.CouponStatusActive), got.Status)
}

func TestTaskHandler_CleanupOperationLogs(t *testing.T) {
	handler, db, _ := setupTaskHandler(t)
	ctx := context.Background()

	old := &models.OperationLog{AdminID: 1, Module: "hotel", Action: "create", IP: "127.0.0.1"}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Model(old).Update("created_at", time.Now().Add(-100*24*time.Hour)).Error)

	recent := &models.OperationLog{AdminID: 1, Module: "hotel", Action: "update", IP: "127.0.0.1"}
	require.NoError(t, db.Create(recent).Error)

	require.NoError(t, handler.CleanupOperationLogs(ctx))

	var count int64
	require.NoError(t, db.Model(&models.OperationLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

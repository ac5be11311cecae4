package marketing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

func setupCouponService(t *testing.T) *CouponService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Coupon{}))

	return NewCouponService(db, repository.NewCouponRepository(db))
}

func createTestCoupon(t *testing.T, svc *CouponService, req *CreateCouponRequest) *CouponInfo {
	t.Helper()
	coupon, err := svc.CreateCoupon(context.Background(), req)
	require.NoError(t, err)
	return coupon
}

// validWindow 返回覆盖当前时间的时间窗口，留足时区偏移余量
func validWindow() (string, string) {
	now := time.Now()
	return now.Add(-48 * time.Hour).Format(timeFormat), now.Add(30 * 24 * time.Hour).Format(timeFormat)
}

func TestCouponService_CreateCoupon(t *testing.T) {
	svc := setupCouponService(t)
	ctx := context.Background()
	start, end := validWindow()

	t.Run("创建固定金额券", func(t *testing.T) {
		coupon := createTestCoupon(t, svc, &CreateCouponRequest{
			Code:       "WELCOME50",
			Name:       "新客立减",
			Type:       models.CouponTypeFixed,
			Value:      50,
			MinAmount:  200,
			TotalCount: 100,
			StartTime:  start,
			EndTime:    end,
		})
		assert.Equal(t, "WELCOME50", coupon.Code)
		assert.Equal(t, int8(models.CouponStatusActive), coupon.Status)
	})

	t.Run("编码为空时自动生成", func(t *testing.T) {
		coupon := createTestCoupon(t, svc, &CreateCouponRequest{
			Name:       "随机券",
			Type:       models.CouponTypeFixed,
			Value:      10,
			TotalCount: 10,
			StartTime:  start,
			EndTime:    end,
		})
		assert.Len(t, coupon.Code, CouponCodeLength)
	})

	t.Run("编码重复", func(t *testing.T) {
		_, err := svc.CreateCoupon(ctx, &CreateCouponRequest{
			Code:       "WELCOME50",
			Name:       "重复券",
			Type:       models.CouponTypeFixed,
			Value:      5,
			TotalCount: 10,
			StartTime:  start,
			EndTime:    end,
		})
		assert.Equal(t, errors.ErrCouponExists, err)
	})

	t.Run("折扣比例超过100", func(t *testing.T) {
		_, err := svc.CreateCoupon(ctx, &CreateCouponRequest{
			Name:       "非法折扣",
			Type:       models.CouponTypePercent,
			Value:      120,
			TotalCount: 10,
			StartTime:  start,
			EndTime:    end,
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidParams.Code, errors.GetAppError(err).Code)
	})

	t.Run("时间窗口非法", func(t *testing.T) {
		_, err := svc.CreateCoupon(ctx, &CreateCouponRequest{
			Name:       "时间非法",
			Type:       models.CouponTypeFixed,
			Value:      5,
			TotalCount: 10,
			StartTime:  end,
			EndTime:    start,
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidParams.Code, errors.GetAppError(err).Code)
	})
}

func TestCouponService_ValidateForAmount(t *testing.T) {
	svc := setupCouponService(t)
	ctx := context.Background()
	start, end := validWindow()

	fixed := createTestCoupon(t, svc, &CreateCouponRequest{
		Code:       "FIX50",
		Name:       "立减50",
		Type:       models.CouponTypeFixed,
		Value:      50,
		MinAmount:  200,
		TotalCount: 1,
		StartTime:  start,
		EndTime:    end,
	})

	createTestCoupon(t, svc, &CreateCouponRequest{
		Code:        "PCT10",
		Name:        "9折券",
		Type:        models.CouponTypePercent,
		Value:       10,
		MaxDiscount: utils.Float64Ptr(80),
		TotalCount:  10,
		StartTime:   start,
		EndTime:     end,
	})

	t.Run("固定金额折扣", func(t *testing.T) {
		_, discount, err := svc.ValidateForAmount(ctx, "FIX50", 300)
		require.NoError(t, err)
		assert.Equal(t, float64(50), discount)
	})

	t.Run("百分比折扣", func(t *testing.T) {
		_, discount, err := svc.ValidateForAmount(ctx, "PCT10", 500)
		require.NoError(t, err)
		assert.Equal(t, float64(50), discount)
	})

	t.Run("百分比折扣受上限约束", func(t *testing.T) {
		_, discount, err := svc.ValidateForAmount(ctx, "PCT10", 2000)
		require.NoError(t, err)
		assert.Equal(t, float64(80), discount)
	})

	t.Run("未达到使用门槛", func(t *testing.T) {
		_, _, err := svc.ValidateForAmount(ctx, "FIX50", 100)
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidParams.Code, errors.GetAppError(err).Code)
	})

	t.Run("优惠券不存在", func(t *testing.T) {
		_, _, err := svc.ValidateForAmount(ctx, "NOPE", 300)
		assert.Equal(t, errors.ErrCouponNotFound, err)
	})

	t.Run("核销后用尽", func(t *testing.T) {
		require.NoError(t, svc.Redeem(ctx, fixed.ID))

		_, _, err := svc.ValidateForAmount(ctx, "FIX50", 300)
		assert.Equal(t, errors.ErrCouponUsedUp, err)

		err = svc.Redeem(ctx, fixed.ID)
		assert.Equal(t, errors.ErrCouponUsedUp, err)
	})
}

func TestCouponService_GetCouponByCode(t *testing.T) {
	svc := setupCouponService(t)
	ctx := context.Background()
	start, end := validWindow()

	coupon := createTestCoupon(t, svc, &CreateCouponRequest{
		Code:       "WELCOME10",
		Name:       "新客立减",
		Type:       models.CouponTypeFixed,
		Value:      10,
		TotalCount: 100,
		StartTime:  start,
		EndTime:    end,
	})

	t.Run("按券码查询", func(t *testing.T) {
		info, err := svc.GetCouponByCode(ctx, "WELCOME10")
		require.NoError(t, err)
		assert.Equal(t, coupon.ID, info.ID)
		assert.Equal(t, "新客立减", info.Name)
	})

	t.Run("券码不存在", func(t *testing.T) {
		_, err := svc.GetCouponByCode(ctx, "NOPE")
		assert.Equal(t, errors.ErrCouponNotFound, err)
	})

	t.Run("停用券不可见", func(t *testing.T) {
		_, err := svc.UpdateCoupon(ctx, coupon.ID, &UpdateCouponRequest{
			Status: utils.Int8Ptr(models.CouponStatusDisabled),
		})
		require.NoError(t, err)

		_, err = svc.GetCouponByCode(ctx, "WELCOME10")
		assert.Equal(t, errors.ErrCouponNotFound, err)
	})
}

func TestCouponService_AdminOperations(t *testing.T) {
	svc := setupCouponService(t)
	ctx := context.Background()
	start, end := validWindow()

	coupon := createTestCoupon(t, svc, &CreateCouponRequest{
		Code:       "ADMIN1",
		Name:       "管理券",
		Type:       models.CouponTypeFixed,
		Value:      20,
		TotalCount: 5,
		StartTime:  start,
		EndTime:    end,
	})

	t.Run("更新优惠券", func(t *testing.T) {
		updated, err := svc.UpdateCoupon(ctx, coupon.ID, &UpdateCouponRequest{
			Name:       utils.StringPtr("改名券"),
			TotalCount: utils.IntPtr(8),
		})
		require.NoError(t, err)
		assert.Equal(t, "改名券", updated.Name)
		assert.Equal(t, 8, updated.TotalCount)
	})

	t.Run("可用列表", func(t *testing.T) {
		coupons, err := svc.GetAvailableCoupons(ctx)
		require.NoError(t, err)
		assert.Len(t, coupons, 1)
	})

	t.Run("禁用后不在可用列表", func(t *testing.T) {
		var status int8 = models.CouponStatusDisabled
		_, err := svc.UpdateCoupon(ctx, coupon.ID, &UpdateCouponRequest{Status: &status})
		require.NoError(t, err)

		coupons, err := svc.GetAvailableCoupons(ctx)
		require.NoError(t, err)
		assert.Empty(t, coupons)
	})

	t.Run("删除优惠券", func(t *testing.T) {
		require.NoError(t, svc.DeleteCoupon(ctx, coupon.ID))
		err := svc.DeleteCoupon(ctx, coupon.ID)
		assert.Equal(t, errors.ErrCouponNotFound, err)
	})

	t.Run("分页列表", func(t *testing.T) {
		list, total, err := svc.GetCouponList(ctx, &CouponListRequest{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, list)
	})
}

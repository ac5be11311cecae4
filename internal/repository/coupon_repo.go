// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// CouponRepository 优惠券仓储
type CouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓储
func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// Create 创建优惠券
func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

// GetByID 根据 ID 获取优惠券
func (r *CouponRepository) GetByID(ctx context.Context, id int64) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).First(&coupon, id).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// GetByCode 根据券码获取优惠券
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Update 更新优惠券
func (r *CouponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

// Delete 删除优惠券
func (r *CouponRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Coupon{}, id).Error
}

// IncrUsedCount 原子增加使用次数，不超过发放总量
func (r *CouponRepository) IncrUsedCount(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ?", id).
		Where("used_count < total_count").
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List 获取优惠券列表
func (r *CouponRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Coupon, int64, error) {
	var coupons []*models.Coupon
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Coupon{})

	if name, ok := filters["name"].(string); ok && name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if status, ok := filters["status"].(int8); ok {
		query = query.Where("status = ?", status)
	}
	if couponType, ok := filters["type"].(string); ok && couponType != "" {
		query = query.Where("type = ?", couponType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&coupons).Error; err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}

// DisableExpired 停用已过有效期的优惠券，返回受影响的行数
func (r *CouponRepository) DisableExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Coupon{}).
		Where("status = ?", models.CouponStatusActive).
		Where("end_time < ?", now).
		Update("status", models.CouponStatusDisabled)
	return result.RowsAffected, result.Error
}

// ListAvailable 获取当前可用的优惠券列表
func (r *CouponRepository) ListAvailable(ctx context.Context, now time.Time) ([]*models.Coupon, error) {
	var coupons []*models.Coupon
	err := r.db.WithContext(ctx).
		Where("status = ?", models.CouponStatusActive).
		Where("start_time <= ? AND end_time >= ?", now, now).
		Where("used_count < total_count").
		Order("end_time ASC").
		Find(&coupons).Error
	return coupons, err
}

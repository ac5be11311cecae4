package models

import (
	"time"
)

// Coupon 优惠券模型
type Coupon struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Type         string    `gorm:"type:varchar(20);not null" json:"type"`
	Value        float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	MinAmount    float64   `gorm:"type:decimal(10,2);not null;default:0" json:"min_amount"`
	MaxDiscount  *float64  `gorm:"type:decimal(10,2)" json:"max_discount,omitempty"`
	TotalCount   int       `gorm:"not null" json:"total_count"`
	UsedCount    int       `gorm:"not null;default:0" json:"used_count"`
	StartTime    time.Time `gorm:"not null" json:"start_time"`
	EndTime      time.Time `gorm:"not null" json:"end_time"`
	Description  *string   `gorm:"type:varchar(255)" json:"description,omitempty"`
	Status       int8      `gorm:"type:smallint;not null;default:1" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Coupon) TableName() string {
	return "coupons"
}

// CouponType 优惠券类型
const (
	CouponTypeFixed   = "fixed"   // 固定金额
	CouponTypePercent = "percent" // 百分比折扣
)

// CouponStatus 优惠券状态
const (
	CouponStatusDisabled = 0 // 禁用
	CouponStatusActive   = 1 // 启用
)

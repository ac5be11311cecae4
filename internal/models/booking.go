// Package models 定义数据模型
package models

import (
	"time"
)

// Booking 预订模型
// 入住区间为半开区间 [CheckInDate, CheckOutDate)：
// 退房日当天不占用库存，同一天退房和入住互不冲突。
type Booking struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingNo    string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"booking_no"`
	UserID       int64      `gorm:"index;not null" json:"user_id"`
	RoomID       int64      `gorm:"index;not null" json:"room_id"`
	CheckInDate  time.Time  `gorm:"type:date;not null;index" json:"check_in_date"`
	CheckOutDate time.Time  `gorm:"type:date;not null;index" json:"check_out_date"`
	Quantity     int        `gorm:"not null" json:"quantity"`
	TotalPrice   float64    `gorm:"type:decimal(10,2);not null" json:"total_price"`
	GuestName    string     `gorm:"type:varchar(50);not null" json:"guest_name"`
	GuestPhone   string     `gorm:"type:varchar(20);not null" json:"guest_phone"`
	GuestEmail   *string    `gorm:"type:varchar(100)" json:"guest_email,omitempty"`
	CouponCode   *string    `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	Remark       *string    `gorm:"type:varchar(255)" json:"remark,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName 表名
func (Booking) TableName() string {
	return "bookings"
}

// BookingStatus 预订状态
const (
	BookingStatusConfirmed = "confirmed" // 已确认
	BookingStatusCancelled = "cancelled" // 已取消
)

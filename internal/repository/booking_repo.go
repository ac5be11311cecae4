// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// BookingRepository 预订仓储
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository 创建预订仓储
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create 创建预订
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID 根据 ID 获取预订
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByIDWithDetails 根据 ID 获取预订（包含关联信息）
func (r *BookingRepository) GetByIDWithDetails(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Room").
		Preload("Room.Hotel").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByBookingNo 根据预订号获取预订
func (r *BookingRepository) GetByBookingNo(ctx context.Context, bookingNo string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("booking_no = ?", bookingNo).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update 更新预订
func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// List 获取预订列表
func (r *BookingRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{})

	// 应用过滤条件
	if userID, ok := filters["user_id"].(int64); ok && userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if roomID, ok := filters["room_id"].(int64); ok && roomID > 0 {
		query = query.Where("room_id = ?", roomID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if bookingNo, ok := filters["booking_no"].(string); ok && bookingNo != "" {
		query = query.Where("booking_no LIKE ?", "%"+bookingNo+"%")
	}
	if startDate, ok := filters["start_date"].(time.Time); ok {
		query = query.Where("check_in_date >= ?", startDate)
	}
	if endDate, ok := filters["end_date"].(time.Time); ok {
		query = query.Where("check_in_date <= ?", endDate)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表
	if err := query.
		Preload("Room").
		Preload("Room.Hotel").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListByUser 获取用户的预订列表
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, offset, limit int, status *string) ([]*models.Booking, int64, error) {
	filters := map[string]interface{}{
		"user_id": userID,
	}
	if status != nil {
		filters["status"] = *status
	}
	return r.List(ctx, offset, limit, filters)
}

// ListByRoom 获取房间的预订列表
func (r *BookingRepository) ListByRoom(ctx context.Context, roomID int64, offset, limit int) ([]*models.Booking, int64, error) {
	filters := map[string]interface{}{
		"room_id": roomID,
	}
	return r.List(ctx, offset, limit, filters)
}

// ListOverlapping 获取与指定时段重叠的已确认预订
// 预订区间为半开区间 [check_in_date, check_out_date)，相邻不算重叠
func (r *BookingRepository) ListOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Where("status = ?", models.BookingStatusConfirmed).
		Where("(check_in_date < ? AND check_out_date > ?)", checkOut, checkIn).
		Find(&bookings).Error
	return bookings, err
}

// SumOverlappingQuantity 统计与指定时段重叠的已确认预订占用的房间数
func (r *BookingRepository) SumOverlappingQuantity(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (int, error) {
	return sumOverlappingQuantity(r.db.WithContext(ctx), roomID, checkIn, checkOut)
}

// SumOverlappingQuantityTx 在已有事务内统计重叠占用的房间数
func (r *BookingRepository) SumOverlappingQuantityTx(tx *gorm.DB, roomID int64, checkIn, checkOut time.Time) (int, error) {
	return sumOverlappingQuantity(tx, roomID, checkIn, checkOut)
}

func sumOverlappingQuantity(db *gorm.DB, roomID int64, checkIn, checkOut time.Time) (int, error) {
	var booked int
	err := db.Model(&models.Booking{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("room_id = ?", roomID).
		Where("status = ?", models.BookingStatusConfirmed).
		Where("(check_in_date < ? AND check_out_date > ?)", checkOut, checkIn).
		Scan(&booked).Error
	return booked, err
}

// Cancel 取消预订
func (r *BookingRepository) Cancel(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.BookingStatusCancelled,
			"cancelled_at": now,
		}).Error
}

// Delete 删除预订记录
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

// CountByUserAndStatus 统计用户指定状态的预订数量
func (r *BookingRepository) CountByUserAndStatus(ctx context.Context, userID int64, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("user_id = ?", userID).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountByRoom 统计房间的预订数量
func (r *BookingRepository) CountByRoom(ctx context.Context, roomID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}

// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// RoomRepository 房型仓储
type RoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository 创建房型仓储
func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create 创建房型
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// GetByID 根据 ID 获取房型
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByIDWithDetails 根据 ID 获取房型（包含酒店、服务和图片）
func (r *RoomRepository) GetByIDWithDetails(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Preload("Hotel").
		Preload("Services").
		Preload("Images").
		First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByIDForUpdate 在事务内加行锁获取房型
// sqlite 不支持 FOR UPDATE，仅对 postgres 应用锁子句
func (r *RoomRepository) GetByIDForUpdate(tx *gorm.DB, id int64) (*models.Room, error) {
	var room models.Room
	query := tx
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.First(&room, id).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Update 更新房型
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

// UpdateFields 更新指定字段
func (r *RoomRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除房型
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

// ListByHotel 获取酒店的房型列表
func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64, onlyActive bool) ([]*models.Room, error) {
	var rooms []*models.Room
	query := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID)
	if onlyActive {
		query = query.Where("status = ?", models.RoomStatusActive)
	}
	err := query.
		Preload("Services").
		Preload("Images").
		Order("price ASC").
		Find(&rooms).Error
	return rooms, err
}

// List 获取房型列表（管理端）
func (r *RoomRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Room, int64, error) {
	var rooms []*models.Room
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Room{})

	if hotelID, ok := filters["hotel_id"].(int64); ok && hotelID > 0 {
		query = query.Where("hotel_id = ?", hotelID)
	}
	if name, ok := filters["name"].(string); ok && name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if status, ok := filters["status"].(int8); ok {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Hotel").
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&rooms).Error; err != nil {
		return nil, 0, err
	}

	return rooms, total, nil
}

// CreateService 创建房型附加服务
func (r *RoomRepository) CreateService(ctx context.Context, service *models.RoomService) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// GetServiceByID 根据 ID 获取附加服务
func (r *RoomRepository) GetServiceByID(ctx context.Context, id int64) (*models.RoomService, error) {
	var service models.RoomService
	err := r.db.WithContext(ctx).First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// ListServices 获取房型的附加服务列表
func (r *RoomRepository) ListServices(ctx context.Context, roomID int64) ([]*models.RoomService, error) {
	var services []*models.RoomService
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id ASC").
		Find(&services).Error
	return services, err
}

// DeleteService 删除附加服务
func (r *RoomRepository) DeleteService(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.RoomService{}, id).Error
}

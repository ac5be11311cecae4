// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// AmenityRepository 酒店设施仓储
type AmenityRepository struct {
	db *gorm.DB
}

// NewAmenityRepository 创建设施仓储
func NewAmenityRepository(db *gorm.DB) *AmenityRepository {
	return &AmenityRepository{db: db}
}

// Create 创建设施
func (r *AmenityRepository) Create(ctx context.Context, amenity *models.Amenity) error {
	return r.db.WithContext(ctx).Create(amenity).Error
}

// GetByID 根据 ID 获取设施
func (r *AmenityRepository) GetByID(ctx context.Context, id int64) (*models.Amenity, error) {
	var amenity models.Amenity
	err := r.db.WithContext(ctx).First(&amenity, id).Error
	if err != nil {
		return nil, err
	}
	return &amenity, nil
}

// Update 更新设施
func (r *AmenityRepository) Update(ctx context.Context, amenity *models.Amenity) error {
	return r.db.WithContext(ctx).Save(amenity).Error
}

// Delete 删除设施
func (r *AmenityRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Amenity{}, id).Error
}

// ListByHotel 获取酒店的设施列表
func (r *AmenityRepository) ListByHotel(ctx context.Context, hotelID int64) ([]*models.Amenity, error) {
	var amenities []*models.Amenity
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("id ASC").
		Find(&amenities).Error
	return amenities, err
}

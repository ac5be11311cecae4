// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

// ImageRepository 图片记录仓储
type ImageRepository struct {
	db *gorm.DB
}

// NewImageRepository 创建图片仓储
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// CreateHotelImage 创建酒店图片记录
func (r *ImageRepository) CreateHotelImage(ctx context.Context, image *models.UrlImageHotel) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// GetHotelImageByID 根据 ID 获取酒店图片
func (r *ImageRepository) GetHotelImageByID(ctx context.Context, id int64) (*models.UrlImageHotel, error) {
	var image models.UrlImageHotel
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ListHotelImages 获取酒店的图片列表
func (r *ImageRepository) ListHotelImages(ctx context.Context, hotelID int64) ([]*models.UrlImageHotel, error) {
	var images []*models.UrlImageHotel
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("id ASC").
		Find(&images).Error
	return images, err
}

// DeleteHotelImage 删除酒店图片记录
func (r *ImageRepository) DeleteHotelImage(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.UrlImageHotel{}, id).Error
}

// CreateRoomImage 创建房型图片记录
func (r *ImageRepository) CreateRoomImage(ctx context.Context, image *models.UrlImageRoom) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// GetRoomImageByID 根据 ID 获取房型图片
func (r *ImageRepository) GetRoomImageByID(ctx context.Context, id int64) (*models.UrlImageRoom, error) {
	var image models.UrlImageRoom
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ListRoomImages 获取房型的图片列表
func (r *ImageRepository) ListRoomImages(ctx context.Context, roomID int64) ([]*models.UrlImageRoom, error) {
	var images []*models.UrlImageRoom
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("id ASC").
		Find(&images).Error
	return images, err
}

// DeleteRoomImage 删除房型图片记录
func (r *ImageRepository) DeleteRoomImage(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.UrlImageRoom{}, id).Error
}

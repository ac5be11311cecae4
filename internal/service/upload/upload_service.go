// Package upload 提供文件上传服务
package upload

import (
	"bytes"
	"context"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	"github.com/dumeirei/hotel-booking-backend/pkg/oss"
)

// DefaultMaxImageSize 默认图片大小上限
const DefaultMaxImageSize = 5 << 20 // 5MB

// 对象键前缀
const (
	prefixHotelImage  = "hotels"
	prefixRoomImage   = "rooms"
	prefixCommonImage = "images"
)

// UploadService 上传服务
type UploadService struct {
	db        *gorm.DB
	uploader  oss.Uploader
	imageRepo *repository.ImageRepository
	hotelRepo *repository.HotelRepository
	roomRepo  *repository.RoomRepository
	metrics   *metrics.Metrics
	maxSize   int64
}

// NewUploadService 创建上传服务
func NewUploadService(
	db *gorm.DB,
	uploader oss.Uploader,
	imageRepo *repository.ImageRepository,
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
	maxSize int64,
) *UploadService {
	if maxSize <= 0 {
		maxSize = DefaultMaxImageSize
	}
	return &UploadService{
		db:        db,
		uploader:  uploader,
		imageRepo: imageRepo,
		hotelRepo: hotelRepo,
		roomRepo:  roomRepo,
		metrics:   metrics.GetMetrics(),
		maxSize:   maxSize,
	}
}

// ImageInfo 图片信息
type ImageInfo struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	FileName  string    `json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadImage 上传通用图片（用户端），不关联实体记录
func (s *UploadService) UploadImage(ctx context.Context, filename string, size int64, reader io.Reader) (*ImageInfo, error) {
	url, objectKey, err := s.uploadImage(ctx, prefixCommonImage, filename, size, reader)
	if err != nil {
		s.metrics.RecordUpload("image", "fail")
		return nil, err
	}

	s.metrics.RecordUpload("image", "success")
	return &ImageInfo{
		URL:       url,
		FileName:  objectKey,
		CreatedAt: time.Now(),
	}, nil
}

// UploadHotelImage 上传酒店图片
func (s *UploadService) UploadHotelImage(ctx context.Context, hotelID int64, filename string, size int64, reader io.Reader) (*ImageInfo, error) {
	_, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	url, objectKey, err := s.uploadImage(ctx, prefixHotelImage, filename, size, reader)
	if err != nil {
		s.metrics.RecordUpload("hotel_image", "fail")
		return nil, err
	}

	// FileName 保存生成的对象键，作为删除凭据
	image := &models.UrlImageHotel{
		HotelID:  hotelID,
		URL:      url,
		FileName: objectKey,
	}
	if err := s.imageRepo.CreateHotelImage(ctx, image); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	s.metrics.RecordUpload("hotel_image", "success")
	return &ImageInfo{
		ID:        image.ID,
		URL:       image.URL,
		FileName:  image.FileName,
		CreatedAt: image.CreatedAt,
	}, nil
}

// UploadRoomImage 上传房型图片
func (s *UploadService) UploadRoomImage(ctx context.Context, roomID int64, filename string, size int64, reader io.Reader) (*ImageInfo, error) {
	_, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	url, objectKey, err := s.uploadImage(ctx, prefixRoomImage, filename, size, reader)
	if err != nil {
		s.metrics.RecordUpload("room_image", "fail")
		return nil, err
	}

	image := &models.UrlImageRoom{
		RoomID:   roomID,
		URL:      url,
		FileName: objectKey,
	}
	if err := s.imageRepo.CreateRoomImage(ctx, image); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	s.metrics.RecordUpload("room_image", "success")
	return &ImageInfo{
		ID:        image.ID,
		URL:       image.URL,
		FileName:  image.FileName,
		CreatedAt: image.CreatedAt,
	}, nil
}

// DeleteHotelImage 删除酒店图片
func (s *UploadService) DeleteHotelImage(ctx context.Context, imageID int64) error {
	image, err := s.imageRepo.GetHotelImageByID(ctx, imageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrImageNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	// 对象存储删除失败不阻断记录删除
	_ = s.uploader.Delete(ctx, image.FileName)

	return s.imageRepo.DeleteHotelImage(ctx, imageID)
}

// DeleteRoomImage 删除房型图片
func (s *UploadService) DeleteRoomImage(ctx context.Context, imageID int64) error {
	image, err := s.imageRepo.GetRoomImageByID(ctx, imageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrImageNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	_ = s.uploader.Delete(ctx, image.FileName)

	return s.imageRepo.DeleteRoomImage(ctx, imageID)
}

// GetHotelImages 获取酒店图片列表
func (s *UploadService) GetHotelImages(ctx context.Context, hotelID int64) ([]*ImageInfo, error) {
	images, err := s.imageRepo.ListHotelImages(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	var result []*ImageInfo
	for _, image := range images {
		result = append(result, &ImageInfo{
			ID:        image.ID,
			URL:       image.URL,
			FileName:  image.FileName,
			CreatedAt: image.CreatedAt,
		})
	}
	return result, nil
}

// GetRoomImages 获取房型图片列表
func (s *UploadService) GetRoomImages(ctx context.Context, roomID int64) ([]*ImageInfo, error) {
	images, err := s.imageRepo.ListRoomImages(ctx, roomID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	var result []*ImageInfo
	for _, image := range images {
		result = append(result, &ImageInfo{
			ID:        image.ID,
			URL:       image.URL,
			FileName:  image.FileName,
			CreatedAt: image.CreatedAt,
		})
	}
	return result, nil
}

// uploadImage 校验并上传图片，返回访问 URL 和生成的对象键
func (s *UploadService) uploadImage(ctx context.Context, prefix, filename string, size int64, reader io.Reader) (string, string, error) {
	if size > s.maxSize {
		return "", "", errors.ErrFileTooLarge
	}

	// 校验会消耗 reader，先读入内存
	data, err := io.ReadAll(io.LimitReader(reader, s.maxSize+1))
	if err != nil {
		return "", "", errors.ErrUploadFailed.WithError(err)
	}
	if int64(len(data)) > s.maxSize {
		return "", "", errors.ErrFileTooLarge
	}

	if err := oss.ValidateImageFile(filename, s.maxSize, bytes.NewReader(data)); err != nil {
		return "", "", errors.ErrFileTypeInvalid.WithError(err)
	}

	objectKey := oss.GenerateObjectKey(prefix, filename)
	url, err := s.uploader.Upload(ctx, objectKey, bytes.NewReader(data))
	if err != nil {
		return "", "", errors.ErrUploadFailed.WithError(err)
	}

	return url, objectKey, nil
}

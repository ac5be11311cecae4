// Package hotel 提供酒店与预订服务
package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

// HotelService 酒店服务
type HotelService struct {
	db          *gorm.DB
	hotelRepo   *repository.HotelRepository
	roomRepo    *repository.RoomRepository
	amenityRepo *repository.AmenityRepository
}

// NewHotelService 创建酒店服务
func NewHotelService(
	db *gorm.DB,
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
	amenityRepo *repository.AmenityRepository,
) *HotelService {
	return &HotelService{
		db:          db,
		hotelRepo:   hotelRepo,
		roomRepo:    roomRepo,
		amenityRepo: amenityRepo,
	}
}

// HotelListRequest 酒店列表请求
type HotelListRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	Keyword  string `form:"keyword" json:"keyword"`
	City     string `form:"city" json:"city"`
	Stars    int    `form:"stars" json:"stars"`
}

// CreateHotelRequest 创建酒店请求
type CreateHotelRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	Stars        *int     `json:"stars,omitempty" binding:"omitempty,min=1,max=5"`
	City         string   `json:"city" binding:"required,max=50"`
	Address      string   `json:"address" binding:"required,max=255"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	ContactName  *string  `json:"contact_name,omitempty" binding:"omitempty,max=50"`
	ContactPhone *string  `json:"contact_phone,omitempty" binding:"omitempty,max=20"`
	Description  *string  `json:"description,omitempty"`
}

// UpdateHotelRequest 更新酒店请求
type UpdateHotelRequest struct {
	Name         *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Stars        *int     `json:"stars,omitempty" binding:"omitempty,min=1,max=5"`
	City         *string  `json:"city,omitempty" binding:"omitempty,max=50"`
	Address      *string  `json:"address,omitempty" binding:"omitempty,max=255"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	ContactName  *string  `json:"contact_name,omitempty" binding:"omitempty,max=50"`
	ContactPhone *string  `json:"contact_phone,omitempty" binding:"omitempty,max=20"`
	Description  *string  `json:"description,omitempty"`
}

// AddAmenityRequest 添加设施请求
type AddAmenityRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Icon        *string `json:"icon,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=255"`
}

// HotelInfo 酒店信息
type HotelInfo struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Stars         *int          `json:"stars,omitempty"`
	City          string        `json:"city"`
	Address       string        `json:"address"`
	Longitude     *float64      `json:"longitude,omitempty"`
	Latitude      *float64      `json:"latitude,omitempty"`
	ContactName   *string       `json:"contact_name,omitempty"`
	ContactPhone  *string       `json:"contact_phone,omitempty"`
	Description   string        `json:"description"`
	Status        int8          `json:"status"`
	MinPrice      float64       `json:"min_price"`
	AverageRating float64       `json:"average_rating"`
	ReviewCount   int64         `json:"review_count"`
	Images        []string      `json:"images"`
	Amenities     []AmenityInfo `json:"amenities,omitempty"`
	Rooms         []*RoomInfo   `json:"rooms,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// AmenityInfo 设施信息
type AmenityInfo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Icon        *string `json:"icon,omitempty"`
	Description *string `json:"description,omitempty"`
}

// GetHotelList 获取酒店列表（用户端，仅上架酒店）
func (s *HotelService) GetHotelList(ctx context.Context, req *HotelListRequest) ([]*HotelInfo, int64, error) {
	p := utils.Pagination{Page: req.Page, PageSize: req.PageSize}
	p.Normalize()

	filters := map[string]interface{}{}
	if req.Keyword != "" {
		filters["name"] = req.Keyword
	}
	if req.City != "" {
		filters["city"] = req.City
	}
	if req.Stars > 0 {
		filters["stars"] = req.Stars
	}

	hotels, total, err := s.hotelRepo.ListActive(ctx, p.GetOffset(), p.GetLimit(), filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	return s.convertHotelList(hotels), total, nil
}

// GetHotelDetail 获取酒店详情（含房型、设施、评分）
func (s *HotelService) GetHotelDetail(ctx context.Context, hotelID int64) (*HotelInfo, error) {
	hotel, err := s.hotelRepo.GetByIDWithDetails(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if hotel.Status != models.HotelStatusActive {
		return nil, errors.ErrHotelNotFound
	}

	info := s.convertHotelInfo(hotel)

	// 评分汇总
	avg, count, err := s.hotelRepo.AverageRating(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	info.AverageRating = avg
	info.ReviewCount = count

	// 房型列表
	for i := range hotel.Rooms {
		info.Rooms = append(info.Rooms, convertRoomInfo(&hotel.Rooms[i]))
	}

	return info, nil
}

// CreateHotel 创建酒店（管理端）
func (s *HotelService) CreateHotel(ctx context.Context, req *CreateHotelRequest) (*HotelInfo, error) {
	hotel := &models.Hotel{
		Name:         req.Name,
		Stars:        req.Stars,
		City:         req.City,
		Address:      req.Address,
		Longitude:    req.Longitude,
		Latitude:     req.Latitude,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		Description:  req.Description,
		Status:       models.HotelStatusActive,
	}
	if err := s.hotelRepo.Create(ctx, hotel); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.convertHotelInfo(hotel), nil
}

// UpdateHotel 更新酒店（管理端）
func (s *HotelService) UpdateHotel(ctx context.Context, hotelID int64, req *UpdateHotelRequest) (*HotelInfo, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.Name != nil {
		hotel.Name = *req.Name
	}
	if req.Stars != nil {
		hotel.Stars = req.Stars
	}
	if req.City != nil {
		hotel.City = *req.City
	}
	if req.Address != nil {
		hotel.Address = *req.Address
	}
	if req.Longitude != nil {
		hotel.Longitude = req.Longitude
	}
	if req.Latitude != nil {
		hotel.Latitude = req.Latitude
	}
	if req.ContactName != nil {
		hotel.ContactName = req.ContactName
	}
	if req.ContactPhone != nil {
		hotel.ContactPhone = req.ContactPhone
	}
	if req.Description != nil {
		hotel.Description = req.Description
	}

	if err := s.hotelRepo.Update(ctx, hotel); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.convertHotelInfo(hotel), nil
}

// UpdateHotelStatus 上架/下架酒店（管理端）
func (s *HotelService) UpdateHotelStatus(ctx context.Context, hotelID int64, status int8) error {
	if status != models.HotelStatusDisabled && status != models.HotelStatusActive {
		return errors.ErrInvalidParams.WithMessage("无效的酒店状态")
	}

	_, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrHotelNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	return s.hotelRepo.UpdateStatus(ctx, hotelID, status)
}

// DeleteHotel 删除酒店（管理端）
func (s *HotelService) DeleteHotel(ctx context.Context, hotelID int64) error {
	_, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrHotelNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return s.hotelRepo.Delete(ctx, hotelID)
}

// GetAdminHotelList 获取酒店列表（管理端，含下架酒店）
func (s *HotelService) GetAdminHotelList(ctx context.Context, req *HotelListRequest) ([]*HotelInfo, int64, error) {
	p := utils.Pagination{Page: req.Page, PageSize: req.PageSize}
	p.Normalize()

	filters := map[string]interface{}{}
	if req.Keyword != "" {
		filters["name"] = req.Keyword
	}
	if req.City != "" {
		filters["city"] = req.City
	}
	if req.Stars > 0 {
		filters["stars"] = req.Stars
	}

	hotels, total, err := s.hotelRepo.List(ctx, p.GetOffset(), p.GetLimit(), filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return s.convertHotelList(hotels), total, nil
}

// AddAmenity 添加酒店设施（管理端）
func (s *HotelService) AddAmenity(ctx context.Context, hotelID int64, req *AddAmenityRequest) (*AmenityInfo, error) {
	_, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	amenity := &models.Amenity{
		HotelID:     hotelID,
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
	}
	if err := s.amenityRepo.Create(ctx, amenity); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	info := convertAmenityInfo(amenity)
	return &info, nil
}

// DeleteAmenity 删除酒店设施（管理端）
func (s *HotelService) DeleteAmenity(ctx context.Context, amenityID int64) error {
	_, err := s.amenityRepo.GetByID(ctx, amenityID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAmenityNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return s.amenityRepo.Delete(ctx, amenityID)
}

// GetAmenities 获取酒店设施列表
func (s *HotelService) GetAmenities(ctx context.Context, hotelID int64) ([]AmenityInfo, error) {
	amenities, err := s.amenityRepo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	var result []AmenityInfo
	for _, amenity := range amenities {
		result = append(result, convertAmenityInfo(amenity))
	}
	return result, nil
}

// convertHotelList 转换酒店列表
func (s *HotelService) convertHotelList(hotels []*models.Hotel) []*HotelInfo {
	var result []*HotelInfo
	for _, hotel := range hotels {
		result = append(result, s.convertHotelInfo(hotel))
	}
	return result
}

// convertHotelInfo 转换酒店信息
func (s *HotelService) convertHotelInfo(hotel *models.Hotel) *HotelInfo {
	info := &HotelInfo{
		ID:           hotel.ID,
		Name:         hotel.Name,
		Stars:        hotel.Stars,
		City:         hotel.City,
		Address:      hotel.Address,
		Longitude:    hotel.Longitude,
		Latitude:     hotel.Latitude,
		ContactName:  hotel.ContactName,
		ContactPhone: hotel.ContactPhone,
		Status:       hotel.Status,
		CreatedAt:    hotel.CreatedAt,
	}

	if hotel.Description != nil {
		info.Description = *hotel.Description
	}

	for _, image := range hotel.Images {
		info.Images = append(info.Images, image.URL)
	}

	for i := range hotel.Amenities {
		info.Amenities = append(info.Amenities, convertAmenityInfo(&hotel.Amenities[i]))
	}

	// 最低房价
	if len(hotel.Rooms) > 0 {
		minPrice := hotel.Rooms[0].Price
		for _, room := range hotel.Rooms {
			if room.Price < minPrice {
				minPrice = room.Price
			}
		}
		info.MinPrice = minPrice
	}

	return info
}

// convertAmenityInfo 转换设施信息
func convertAmenityInfo(amenity *models.Amenity) AmenityInfo {
	return AmenityInfo{
		ID:          amenity.ID,
		Name:        amenity.Name,
		Icon:        amenity.Icon,
		Description: amenity.Description,
	}
}

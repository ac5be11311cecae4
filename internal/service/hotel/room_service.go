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

// RoomService 房型服务
type RoomService struct {
	db        *gorm.DB
	roomRepo  *repository.RoomRepository
	hotelRepo *repository.HotelRepository
}

// NewRoomService 创建房型服务
func NewRoomService(db *gorm.DB, roomRepo *repository.RoomRepository, hotelRepo *repository.HotelRepository) *RoomService {
	return &RoomService{
		db:        db,
		roomRepo:  roomRepo,
		hotelRepo: hotelRepo,
	}
}

// CreateRoomRequest 创建房型请求
type CreateRoomRequest struct {
	HotelID     int64   `json:"hotel_id" binding:"required"`
	Name        string  `json:"name" binding:"required,max=100"`
	Quantity    *int    `json:"quantity" binding:"required,gte=0"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Capacity    int     `json:"capacity" binding:"omitempty,min=1"`
	BedType     *string `json:"bed_type,omitempty" binding:"omitempty,max=50"`
	Description *string `json:"description,omitempty"`
}

// UpdateRoomRequest 更新房型请求
type UpdateRoomRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Quantity    *int     `json:"quantity,omitempty" binding:"omitempty,gte=0"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	Capacity    *int     `json:"capacity,omitempty" binding:"omitempty,min=1"`
	BedType     *string  `json:"bed_type,omitempty" binding:"omitempty,max=50"`
	Description *string  `json:"description,omitempty"`
	Status      *int8    `json:"status,omitempty"`
}

// AddRoomServiceRequest 添加房型附加服务请求
type AddRoomServiceRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Price       float64 `json:"price" binding:"gte=0"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=255"`
}

// RoomListRequest 房型列表请求（管理端）
type RoomListRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	HotelID  int64  `form:"hotel_id" json:"hotel_id"`
	Name     string `form:"name" json:"name"`
	Status   *int8  `form:"status" json:"status,omitempty"`
}

// RoomInfo 房型信息
type RoomInfo struct {
	ID          int64             `json:"id"`
	HotelID     int64             `json:"hotel_id"`
	Name        string            `json:"name"`
	Quantity    int               `json:"quantity"`
	Price       float64           `json:"price"`
	Capacity    int               `json:"capacity"`
	BedType     *string           `json:"bed_type,omitempty"`
	Description string            `json:"description"`
	Status      int8              `json:"status"`
	Services    []RoomServiceInfo `json:"services,omitempty"`
	Images      []string          `json:"images"`
	CreatedAt   time.Time         `json:"created_at"`
}

// RoomServiceInfo 房型附加服务信息
type RoomServiceInfo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description,omitempty"`
}

// GetRoomList 获取酒店的房型列表（用户端，仅可售房型）
func (s *RoomService) GetRoomList(ctx context.Context, hotelID int64) ([]*RoomInfo, error) {
	hotel, err := s.hotelRepo.GetByID(ctx, hotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if hotel.Status != models.HotelStatusActive {
		return nil, errors.ErrHotelNotFound
	}

	rooms, err := s.roomRepo.ListByHotel(ctx, hotelID, true)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	var result []*RoomInfo
	for _, room := range rooms {
		result = append(result, convertRoomInfo(room))
	}
	return result, nil
}

// GetRoomDetail 获取房型详情
func (s *RoomService) GetRoomDetail(ctx context.Context, roomID int64) (*RoomInfo, error) {
	room, err := s.roomRepo.GetByIDWithDetails(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if room.Status != models.RoomStatusActive {
		return nil, errors.ErrRoomNotFound
	}

	return convertRoomInfo(room), nil
}

// CreateRoom 创建房型（管理端）
func (s *RoomService) CreateRoom(ctx context.Context, req *CreateRoomRequest) (*RoomInfo, error) {
	_, err := s.hotelRepo.GetByID(ctx, req.HotelID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	capacity := req.Capacity
	if capacity <= 0 {
		capacity = 2
	}

	// 允许库存为 0 的房型（暂不可订）
	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	room := &models.Room{
		HotelID:     req.HotelID,
		Name:        req.Name,
		Quantity:    quantity,
		Price:       req.Price,
		Capacity:    capacity,
		BedType:     req.BedType,
		Description: req.Description,
		Status:      models.RoomStatusActive,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertRoomInfo(room), nil
}

// UpdateRoom 更新房型（管理端）
// 库存调整只影响后续的可用性计算，已确认的预订不受影响
func (s *RoomService) UpdateRoom(ctx context.Context, roomID int64, req *UpdateRoomRequest) (*RoomInfo, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Quantity != nil {
		room.Quantity = *req.Quantity
	}
	if req.Price != nil {
		room.Price = *req.Price
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.BedType != nil {
		room.BedType = req.BedType
	}
	if req.Description != nil {
		room.Description = req.Description
	}
	if req.Status != nil {
		if *req.Status != models.RoomStatusDisabled && *req.Status != models.RoomStatusActive {
			return nil, errors.ErrInvalidParams.WithMessage("无效的房型状态")
		}
		room.Status = *req.Status
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return convertRoomInfo(room), nil
}

// DeleteRoom 删除房型（管理端）
func (s *RoomService) DeleteRoom(ctx context.Context, roomID int64) error {
	_, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrRoomNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return s.roomRepo.Delete(ctx, roomID)
}

// GetAdminRoomList 获取房型列表（管理端，含停售房型）
func (s *RoomService) GetAdminRoomList(ctx context.Context, req *RoomListRequest) ([]*RoomInfo, int64, error) {
	p := utils.Pagination{Page: req.Page, PageSize: req.PageSize}
	p.Normalize()

	filters := map[string]interface{}{}
	if req.HotelID > 0 {
		filters["hotel_id"] = req.HotelID
	}
	if req.Name != "" {
		filters["name"] = req.Name
	}
	if req.Status != nil {
		filters["status"] = *req.Status
	}

	rooms, total, err := s.roomRepo.List(ctx, p.GetOffset(), p.GetLimit(), filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	var result []*RoomInfo
	for _, room := range rooms {
		result = append(result, convertRoomInfo(room))
	}
	return result, total, nil
}

// AddRoomService 添加房型附加服务（管理端）
func (s *RoomService) AddRoomService(ctx context.Context, roomID int64, req *AddRoomServiceRequest) (*RoomServiceInfo, error) {
	_, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	service := &models.RoomService{
		RoomID:      roomID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}
	if err := s.roomRepo.CreateService(ctx, service); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	info := convertRoomServiceInfo(service)
	return &info, nil
}

// DeleteRoomService 删除房型附加服务（管理端）
func (s *RoomService) DeleteRoomService(ctx context.Context, serviceID int64) error {
	_, err := s.roomRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrRoomServiceNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return s.roomRepo.DeleteService(ctx, serviceID)
}

// convertRoomInfo 转换房型信息
func convertRoomInfo(room *models.Room) *RoomInfo {
	info := &RoomInfo{
		ID:        room.ID,
		HotelID:   room.HotelID,
		Name:      room.Name,
		Quantity:  room.Quantity,
		Price:     room.Price,
		Capacity:  room.Capacity,
		BedType:   room.BedType,
		Status:    room.Status,
		CreatedAt: room.CreatedAt,
	}

	if room.Description != nil {
		info.Description = *room.Description
	}

	for i := range room.Services {
		info.Services = append(info.Services, convertRoomServiceInfo(&room.Services[i]))
	}

	for _, image := range room.Images {
		info.Images = append(info.Images, image.URL)
	}

	return info
}

// convertRoomServiceInfo 转换房型附加服务信息
func convertRoomServiceInfo(service *models.RoomService) RoomServiceInfo {
	return RoomServiceInfo{
		ID:          service.ID,
		Name:        service.Name,
		Price:       service.Price,
		Description: service.Description,
	}
}

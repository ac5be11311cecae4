package hotel

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/common/qrcode"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	marketingService "github.com/dumeirei/hotel-booking-backend/internal/service/marketing"
	"github.com/dumeirei/hotel-booking-backend/pkg/mail"
	"github.com/dumeirei/hotel-booking-backend/pkg/sms"
)

// DateFormat 预订日期格式
const DateFormat = "2006-01-02"

// BookingNoPrefix 预订单号前缀
const BookingNoPrefix = "BK"

// BookingService 预订服务
// 可用数量 = 房型总库存 - 重叠时段内已确认预订的数量之和，
// 入住区间为半开区间 [check_in_date, check_out_date)，同日退房与入住不冲突。
type BookingService struct {
	db               *gorm.DB
	bookingRepo      *repository.BookingRepository
	roomRepo         *repository.RoomRepository
	hotelRepo        *repository.HotelRepository
	couponService    *marketingService.CouponService
	mailSender       mail.Sender
	smsSender        sms.Sender
	qrGenerator      *qrcode.Generator
	metrics          *metrics.Metrics
	maxNights        int
	maxRoomsPerOrder int
}

// NewBookingService 创建预订服务
func NewBookingService(
	db *gorm.DB,
	bookingRepo *repository.BookingRepository,
	roomRepo *repository.RoomRepository,
	hotelRepo *repository.HotelRepository,
	couponService *marketingService.CouponService,
	mailSender mail.Sender,
	smsSender sms.Sender,
	maxNights int,
	maxRoomsPerOrder int,
) *BookingService {
	return &BookingService{
		db:               db,
		bookingRepo:      bookingRepo,
		roomRepo:         roomRepo,
		hotelRepo:        hotelRepo,
		couponService:    couponService,
		mailSender:       mailSender,
		smsSender:        smsSender,
		qrGenerator:      qrcode.NewGenerator(),
		metrics:          metrics.GetMetrics(),
		maxNights:        maxNights,
		maxRoomsPerOrder: maxRoomsPerOrder,
	}
}

// CreateBookingRequest 创建预订请求
type CreateBookingRequest struct {
	RoomID       int64   `json:"room_id" binding:"required"`
	CheckInDate  string  `json:"check_in_date" binding:"required"`  // 格式 2006-01-02
	CheckOutDate string  `json:"check_out_date" binding:"required"` // 格式 2006-01-02
	Quantity     int     `json:"quantity" binding:"required,min=1"`
	GuestName    string  `json:"guest_name" binding:"required,max=50"`
	GuestPhone   string  `json:"guest_phone" binding:"required,max=20"`
	GuestEmail   *string `json:"guest_email,omitempty" binding:"omitempty,email"`
	CouponCode   *string `json:"coupon_code,omitempty" binding:"omitempty,max=50"`
	Remark       *string `json:"remark,omitempty" binding:"omitempty,max=255"`
}

// BookingListRequest 预订列表请求（管理端）
type BookingListRequest struct {
	Page      int    `form:"page" json:"page"`
	PageSize  int    `form:"page_size" json:"page_size"`
	UserID    int64  `form:"user_id" json:"user_id"`
	RoomID    int64  `form:"room_id" json:"room_id"`
	Status    string `form:"status" json:"status"`
	BookingNo string `form:"booking_no" json:"booking_no"`
	StartDate string `form:"start_date" json:"start_date"`
	EndDate   string `form:"end_date" json:"end_date"`
}

// BookingInfo 预订信息
type BookingInfo struct {
	ID           int64      `json:"id"`
	BookingNo    string     `json:"booking_no"`
	Status       string     `json:"status"`
	StatusName   string     `json:"status_name"`
	RoomID       int64      `json:"room_id"`
	Room         *RoomInfo  `json:"room,omitempty"`
	Hotel        *HotelInfo `json:"hotel,omitempty"`
	CheckInDate  string     `json:"check_in_date"`
	CheckOutDate string     `json:"check_out_date"`
	Nights       int        `json:"nights"`
	Quantity     int        `json:"quantity"`
	TotalPrice   float64    `json:"total_price"`
	GuestName    string     `json:"guest_name"`
	GuestPhone   string     `json:"guest_phone"`
	GuestEmail   *string    `json:"guest_email,omitempty"`
	CouponCode   *string    `json:"coupon_code,omitempty"`
	Remark       *string    `json:"remark,omitempty"`
	QRCode       string     `json:"qr_code,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AvailabilityInfo 可用性信息
type AvailabilityInfo struct {
	RoomID            int64  `json:"room_id"`
	CheckInDate       string `json:"check_in_date"`
	CheckOutDate      string `json:"check_out_date"`
	TotalQuantity     int    `json:"total_quantity"`
	BookedQuantity    int    `json:"booked_quantity"`
	AvailableQuantity int    `json:"available_quantity"`
}

// CheckAvailability 查询房型在指定时段的可用数量
func (s *BookingService) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (*AvailabilityInfo, error) {
	if !checkIn.Before(checkOut) {
		return nil, errors.ErrDateRangeInvalid
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	booked, err := s.bookingRepo.SumOverlappingQuantity(ctx, roomID, checkIn, checkOut)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	available := room.Quantity - booked
	if available < 0 {
		available = 0
	}

	return &AvailabilityInfo{
		RoomID:            roomID,
		CheckInDate:       checkIn.Format(DateFormat),
		CheckOutDate:      checkOut.Format(DateFormat),
		TotalQuantity:     room.Quantity,
		BookedQuantity:    booked,
		AvailableQuantity: available,
	}, nil
}

// CreateBooking 创建预订
// 库存判定与写入在同一事务内完成，postgres 下对房型行加锁，避免并发超订
func (s *BookingService) CreateBooking(ctx context.Context, userID int64, req *CreateBookingRequest) (*BookingInfo, error) {
	checkIn, checkOut, err := s.parseDateRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	nights := utils.Nights(checkIn, checkOut)
	if s.maxNights > 0 && nights > s.maxNights {
		return nil, errors.ErrInvalidParams.WithMessage("超出单次预订的最大晚数")
	}
	if s.maxRoomsPerOrder > 0 && req.Quantity > s.maxRoomsPerOrder {
		return nil, errors.ErrInvalidParams.WithMessage("超出单次预订的最大房间数")
	}

	// 获取房型和所属酒店
	room, err := s.roomRepo.GetByIDWithDetails(ctx, req.RoomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrRoomNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if room.Status != models.RoomStatusActive {
		return nil, errors.ErrRoomDisabled
	}
	if room.Hotel == nil || room.Hotel.Status != models.HotelStatusActive {
		return nil, errors.ErrHotelNotFound
	}

	// 计算订单金额
	totalPrice := room.Price * float64(nights) * float64(req.Quantity)

	// 优惠券抵扣
	var coupon *models.Coupon
	if req.CouponCode != nil && *req.CouponCode != "" {
		var discount float64
		coupon, discount, err = s.couponService.ValidateForAmount(ctx, *req.CouponCode, totalPrice)
		if err != nil {
			return nil, err
		}
		totalPrice -= discount
	}

	booking := &models.Booking{
		BookingNo:    utils.GenerateBookingNo(BookingNoPrefix),
		UserID:       userID,
		RoomID:       req.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Quantity:     req.Quantity,
		TotalPrice:   totalPrice,
		GuestName:    req.GuestName,
		GuestPhone:   req.GuestPhone,
		GuestEmail:   req.GuestEmail,
		CouponCode:   req.CouponCode,
		Remark:       req.Remark,
		Status:       models.BookingStatusConfirmed,
	}

	// 准入判定和写入放在同一事务内
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.roomRepo.GetByIDForUpdate(tx, req.RoomID)
		if err != nil {
			return err
		}

		booked, err := s.bookingRepo.SumOverlappingQuantityTx(tx, req.RoomID, checkIn, checkOut)
		if err != nil {
			return err
		}

		if locked.Quantity-booked < req.Quantity {
			return errors.ErrRoomNotEnough
		}

		return tx.Create(booking).Error
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			if appErr.Code == errors.ErrRoomNotEnough.Code {
				s.metrics.RecordBookingRejection("sold_out")
			}
			return nil, appErr
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 优惠券核销（事务外，失败不影响已确认的预订）
	if coupon != nil {
		_ = s.couponService.Redeem(ctx, coupon.ID)
	}

	s.metrics.RecordBooking(models.BookingStatusConfirmed)
	s.metrics.RecordBookedNights(float64(nights * req.Quantity))

	// 通知（尽力而为）
	s.notifyConfirmed(ctx, booking)

	booking.Room = room
	return s.convertBookingInfo(booking, true), nil
}

// GetBookingByID 获取预订详情
func (s *BookingService) GetBookingByID(ctx context.Context, id int64, userID int64) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByIDWithDetails(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if booking.UserID != userID {
		return nil, errors.ErrPermissionDenied
	}

	return s.convertBookingInfo(booking, booking.Status == models.BookingStatusConfirmed), nil
}

// GetBookingByNo 根据预订号获取预订
func (s *BookingService) GetBookingByNo(ctx context.Context, bookingNo string, userID int64) (*BookingInfo, error) {
	booking, err := s.bookingRepo.GetByBookingNo(ctx, bookingNo)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if booking.UserID != userID {
		return nil, errors.ErrPermissionDenied
	}

	return s.GetBookingByID(ctx, booking.ID, userID)
}

// GetUserBookings 获取用户预订列表
func (s *BookingService) GetUserBookings(ctx context.Context, userID int64, page, pageSize int, status *string) ([]*BookingInfo, int64, error) {
	p := utils.Pagination{Page: page, PageSize: pageSize}
	p.Normalize()

	bookings, total, err := s.bookingRepo.ListByUser(ctx, userID, p.GetOffset(), p.GetLimit(), status)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	var result []*BookingInfo
	for _, booking := range bookings {
		result = append(result, s.convertBookingInfo(booking, false))
	}
	return result, total, nil
}

// CancelBooking 取消预订
func (s *BookingService) CancelBooking(ctx context.Context, id int64, userID int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBookingNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if booking.UserID != userID {
		return errors.ErrPermissionDenied
	}

	if booking.Status == models.BookingStatusCancelled {
		return errors.ErrBookingCancelled
	}
	if booking.Status != models.BookingStatusConfirmed {
		return errors.ErrBookingStatusError
	}

	if err := s.bookingRepo.Cancel(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	s.metrics.RecordBooking(models.BookingStatusCancelled)
	s.notifyCancelled(ctx, booking)

	return nil
}

// DeleteBooking 删除预订记录
// 仅允许删除已取消的预订，已确认预订须先走取消流程释放库存
func (s *BookingService) DeleteBooking(ctx context.Context, id int64, userID int64) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrBookingNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if booking.UserID != userID {
		return errors.ErrPermissionDenied
	}

	if booking.Status != models.BookingStatusCancelled {
		return errors.ErrBookingStatusError
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	return nil
}

// GetAdminBookingList 获取预订列表（管理端）
func (s *BookingService) GetAdminBookingList(ctx context.Context, req *BookingListRequest) ([]*BookingInfo, int64, error) {
	p := utils.Pagination{Page: req.Page, PageSize: req.PageSize}
	p.Normalize()

	filters := map[string]interface{}{}
	if req.UserID > 0 {
		filters["user_id"] = req.UserID
	}
	if req.RoomID > 0 {
		filters["room_id"] = req.RoomID
	}
	if req.Status != "" {
		filters["status"] = req.Status
	}
	if req.BookingNo != "" {
		filters["booking_no"] = req.BookingNo
	}
	if req.StartDate != "" {
		startDate, err := time.Parse(DateFormat, req.StartDate)
		if err != nil {
			return nil, 0, errors.ErrInvalidParams.WithMessage("开始日期格式不正确")
		}
		filters["start_date"] = startDate
	}
	if req.EndDate != "" {
		endDate, err := time.Parse(DateFormat, req.EndDate)
		if err != nil {
			return nil, 0, errors.ErrInvalidParams.WithMessage("结束日期格式不正确")
		}
		filters["end_date"] = endDate
	}

	bookings, total, err := s.bookingRepo.List(ctx, p.GetOffset(), p.GetLimit(), filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	var result []*BookingInfo
	for _, booking := range bookings {
		result = append(result, s.convertBookingInfo(booking, false))
	}
	return result, total, nil
}

// parseDateRange 解析并校验入住/退房日期
func (s *BookingService) parseDateRange(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(DateFormat, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidParams.WithMessage("入住日期格式不正确")
	}
	checkOut, err := time.Parse(DateFormat, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.ErrInvalidParams.WithMessage("退房日期格式不正确")
	}
	if !checkIn.Before(checkOut) {
		return time.Time{}, time.Time{}, errors.ErrDateRangeInvalid
	}

	// 入住日期不能早于今天
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, errors.ErrInvalidParams.WithMessage("入住日期不能早于今天")
	}

	return checkIn, checkOut, nil
}

// notifyConfirmed 发送预订确认通知，失败只记指标不阻断流程
func (s *BookingService) notifyConfirmed(ctx context.Context, booking *models.Booking) {
	if s.mailSender != nil && booking.GuestEmail != nil && *booking.GuestEmail != "" {
		_ = s.mailSender.SendBookingConfirmed(ctx, *booking.GuestEmail, booking.BookingNo)
	}
	if s.smsSender != nil && booking.GuestPhone != "" {
		_ = s.smsSender.SendBookingNotify(ctx, booking.GuestPhone, booking.BookingNo)
	}
}

// notifyCancelled 发送预订取消通知
func (s *BookingService) notifyCancelled(ctx context.Context, booking *models.Booking) {
	if s.mailSender != nil && booking.GuestEmail != nil && *booking.GuestEmail != "" {
		_ = s.mailSender.SendBookingCancelled(ctx, *booking.GuestEmail, booking.BookingNo)
	}
}

// convertBookingInfo 转换预订信息
func (s *BookingService) convertBookingInfo(booking *models.Booking, withQR bool) *BookingInfo {
	info := &BookingInfo{
		ID:           booking.ID,
		BookingNo:    booking.BookingNo,
		Status:       booking.Status,
		StatusName:   s.getStatusName(booking.Status),
		RoomID:       booking.RoomID,
		CheckInDate:  booking.CheckInDate.Format(DateFormat),
		CheckOutDate: booking.CheckOutDate.Format(DateFormat),
		Nights:       utils.Nights(booking.CheckInDate, booking.CheckOutDate),
		Quantity:     booking.Quantity,
		TotalPrice:   booking.TotalPrice,
		GuestName:    booking.GuestName,
		GuestPhone:   booking.GuestPhone,
		GuestEmail:   booking.GuestEmail,
		CouponCode:   booking.CouponCode,
		Remark:       booking.Remark,
		CancelledAt:  booking.CancelledAt,
		CreatedAt:    booking.CreatedAt,
	}

	if booking.Room != nil {
		info.Room = convertRoomInfo(booking.Room)
		if booking.Room.Hotel != nil {
			hotelService := &HotelService{}
			info.Hotel = hotelService.convertHotelInfo(booking.Room.Hotel)
		}
	}

	// 预订凭证二维码，仅详情接口返回
	if withQR && s.qrGenerator != nil {
		if dataURL, err := s.qrGenerator.GenerateDataURL(booking.BookingNo); err == nil {
			info.QRCode = dataURL
		}
	}

	return info
}

// getStatusName 获取状态名称
func (s *BookingService) getStatusName(status string) string {
	switch status {
	case models.BookingStatusConfirmed:
		return "已确认"
	case models.BookingStatusCancelled:
		return "已取消"
	default:
		return "未知"
	}
}

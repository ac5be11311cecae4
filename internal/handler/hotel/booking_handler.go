package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-booking-backend/internal/service/hotel"
)

// BookingHandler 预订处理器
type BookingHandler struct {
	bookingService *hotelService.BookingService
}

// NewBookingHandler 创建预订处理器
func NewBookingHandler(bookingSvc *hotelService.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingSvc,
	}
}

// CheckAvailability 查询房型可用数量
// @Summary 查询房型在指定日期区间的可用数量
// @Description 退房日为半开区间右端，同日退房与入住不冲突
// @Tags 预订
// @Produce json
// @Param id path int true "房型ID"
// @Param check_in_date query string true "入住日期 (YYYY-MM-DD)"
// @Param check_out_date query string true "退房日期 (YYYY-MM-DD)"
// @Success 200 {object} response.Response{data=hotelService.AvailabilityInfo}
// @Router /api/v1/rooms/{id}/availability [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房型")
	if !ok {
		return
	}

	checkIn, checkOut, ok := handler.ParseRequiredDateRange(c, "check_in_date", "check_out_date")
	if !ok {
		return
	}

	info, err := h.bookingService.CheckAvailability(c.Request.Context(), roomID, checkIn, checkOut)
	handler.MustSucceed(c, err, info)
}

// CreateBooking 创建预订
// @Summary 创建预订
// @Tags 预订
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body hotelService.CreateBookingRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.BookingInfo}
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req hotelService.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), userID, &req)
	handler.MustSucceed(c, err, booking)
}

// GetBookingList 获取我的预订列表
// @Summary 获取我的预订列表
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "状态" Enums(confirmed, cancelled)
// @Success 200 {object} response.Response{data=[]hotelService.BookingInfo}
// @Router /api/v1/bookings [get]
func (h *BookingHandler) GetBookingList(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	bookings, total, err := h.bookingService.GetUserBookings(c.Request.Context(), userID, p.Page, p.PageSize, status)
	handler.MustSucceedPage(c, err, bookings, total, p.Page, p.PageSize)
}

// GetBookingDetail 获取预订详情
// @Summary 获取预订详情
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response{data=hotelService.BookingInfo}
// @Router /api/v1/bookings/{id} [get]
func (h *BookingHandler) GetBookingDetail(c *gin.Context) {
	userID, bookingID, ok := handler.RequireUserAndParseID(c, "预订")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBookingByID(c.Request.Context(), bookingID, userID)
	handler.MustSucceed(c, err, booking)
}

// GetBookingByNo 按预订号获取预订详情
// @Summary 按预订号获取预订详情
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param booking_no path string true "预订号"
// @Success 200 {object} response.Response{data=hotelService.BookingInfo}
// @Router /api/v1/bookings/no/{booking_no} [get]
func (h *BookingHandler) GetBookingByNo(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	bookingNo := c.Param("booking_no")
	if bookingNo == "" {
		response.BadRequest(c, "无效的预订号")
		return
	}

	booking, err := h.bookingService.GetBookingByNo(c.Request.Context(), bookingNo, userID)
	handler.MustSucceed(c, err, booking)
}

// CancelBooking 取消预订
// @Summary 取消预订
// @Description 取消后占用的房量立即释放
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response
// @Router /api/v1/bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, bookingID, ok := handler.RequireUserAndParseID(c, "预订")
	if !ok {
		return
	}

	if handler.HandleError(c, h.bookingService.CancelBooking(c.Request.Context(), bookingID, userID)) {
		return
	}

	response.SuccessWithMessage(c, "预订已取消", nil)
}

// DeleteBooking 删除预订记录
// @Summary 删除预订记录
// @Description 仅允许删除已取消的预订
// @Tags 预订
// @Produce json
// @Security Bearer
// @Param id path int true "预订ID"
// @Success 200 {object} response.Response
// @Router /api/v1/bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	userID, bookingID, ok := handler.RequireUserAndParseID(c, "预订")
	if !ok {
		return
	}

	if handler.HandleError(c, h.bookingService.DeleteBooking(c.Request.Context(), bookingID, userID)) {
		return
	}

	response.SuccessWithMessage(c, "预订记录已删除", nil)
}

// GetAdminBookingList 获取预订列表（管理端）
// @Summary 获取预订列表
// @Tags 预订管理
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param user_id query int false "用户ID"
// @Param room_id query int false "房型ID"
// @Param status query string false "状态"
// @Param booking_no query string false "预订号"
// @Param start_date query string false "入住开始日期"
// @Param end_date query string false "入住结束日期"
// @Success 200 {object} response.Response{data=[]hotelService.BookingInfo}
// @Router /api/admin/bookings [get]
func (h *BookingHandler) GetAdminBookingList(c *gin.Context) {
	var req hotelService.BookingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	bookings, total, err := h.bookingService.GetAdminBookingList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, bookings, total, req.Page, req.PageSize)
}

// RegisterPublicRoutes 注册公开路由
func (h *BookingHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/rooms/:id/availability", h.CheckAvailability)
}

// RegisterRoutes 注册用户路由（需要认证）
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.GetBookingList)
		bookings.GET("/:id", h.GetBookingDetail)
		bookings.GET("/no/:booking_no", h.GetBookingByNo)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

// RegisterAdminRoutes 注册管理端路由
func (h *BookingHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/bookings", h.GetAdminBookingList)
}

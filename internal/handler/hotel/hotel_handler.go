// Package hotel 提供酒店、房型与预订相关的 HTTP Handler
package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-booking-backend/internal/service/hotel"
)

// Handler 酒店处理器
type Handler struct {
	hotelService *hotelService.HotelService
}

// NewHandler 创建酒店处理器
func NewHandler(hotelSvc *hotelService.HotelService) *Handler {
	return &Handler{
		hotelService: hotelSvc,
	}
}

// GetHotelList 获取酒店列表
// @Summary 获取酒店列表
// @Tags 酒店
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键词"
// @Param city query string false "城市"
// @Param stars query int false "星级"
// @Success 200 {object} response.Response{data=[]hotelService.HotelInfo}
// @Router /api/v1/hotels [get]
func (h *Handler) GetHotelList(c *gin.Context) {
	var req hotelService.HotelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	hotels, total, err := h.hotelService.GetHotelList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, hotels, total, req.Page, req.PageSize)
}

// GetHotelDetail 获取酒店详情
// @Summary 获取酒店详情
// @Tags 酒店
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=hotelService.HotelInfo}
// @Router /api/v1/hotels/{id} [get]
func (h *Handler) GetHotelDetail(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	hotel, err := h.hotelService.GetHotelDetail(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, hotel)
}

// GetAmenities 获取酒店设施列表
// @Summary 获取酒店设施列表
// @Tags 酒店
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=[]hotelService.AmenityInfo}
// @Router /api/v1/hotels/{id}/amenities [get]
func (h *Handler) GetAmenities(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	amenities, err := h.hotelService.GetAmenities(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, amenities)
}

// CreateHotel 创建酒店（管理端）
// @Summary 创建酒店
// @Tags 酒店管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body hotelService.CreateHotelRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.HotelInfo}
// @Router /api/admin/hotels [post]
func (h *Handler) CreateHotel(c *gin.Context) {
	var req hotelService.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	hotel, err := h.hotelService.CreateHotel(c.Request.Context(), &req)
	handler.MustSucceed(c, err, hotel)
}

// UpdateHotel 更新酒店（管理端）
// @Summary 更新酒店
// @Tags 酒店管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "酒店ID"
// @Param request body hotelService.UpdateHotelRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.HotelInfo}
// @Router /api/admin/hotels/{id} [put]
func (h *Handler) UpdateHotel(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	var req hotelService.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	hotel, err := h.hotelService.UpdateHotel(c.Request.Context(), hotelID, &req)
	handler.MustSucceed(c, err, hotel)
}

// UpdateHotelStatusRequest 更新酒店状态请求
type UpdateHotelStatusRequest struct {
	Status *int8 `json:"status" binding:"required"`
}

// UpdateHotelStatus 上下架酒店（管理端）
// @Summary 更新酒店状态
// @Tags 酒店管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "酒店ID"
// @Param request body UpdateHotelStatusRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/admin/hotels/{id}/status [put]
func (h *Handler) UpdateHotelStatus(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	var req UpdateHotelStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	handler.MustSucceed(c, h.hotelService.UpdateHotelStatus(c.Request.Context(), hotelID, *req.Status), nil)
}

// DeleteHotel 删除酒店（管理端）
// @Summary 删除酒店
// @Tags 酒店管理
// @Produce json
// @Security Bearer
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response
// @Router /api/admin/hotels/{id} [delete]
func (h *Handler) DeleteHotel(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.hotelService.DeleteHotel(c.Request.Context(), hotelID), nil)
}

// GetAdminHotelList 获取酒店列表（管理端，含下架酒店）
// @Summary 获取酒店列表
// @Tags 酒店管理
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "关键词"
// @Param city query string false "城市"
// @Param stars query int false "星级"
// @Success 200 {object} response.Response{data=[]hotelService.HotelInfo}
// @Router /api/admin/hotels [get]
func (h *Handler) GetAdminHotelList(c *gin.Context) {
	var req hotelService.HotelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	hotels, total, err := h.hotelService.GetAdminHotelList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, hotels, total, req.Page, req.PageSize)
}

// AddAmenity 添加酒店设施（管理端）
// @Summary 添加酒店设施
// @Tags 酒店管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "酒店ID"
// @Param request body hotelService.AddAmenityRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.AmenityInfo}
// @Router /api/admin/hotels/{id}/amenities [post]
func (h *Handler) AddAmenity(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	var req hotelService.AddAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	amenity, err := h.hotelService.AddAmenity(c.Request.Context(), hotelID, &req)
	handler.MustSucceed(c, err, amenity)
}

// DeleteAmenity 删除酒店设施（管理端）
// @Summary 删除酒店设施
// @Tags 酒店管理
// @Produce json
// @Security Bearer
// @Param id path int true "设施ID"
// @Success 200 {object} response.Response
// @Router /api/admin/amenities/{id} [delete]
func (h *Handler) DeleteAmenity(c *gin.Context) {
	amenityID, ok := handler.ParseID(c, "设施")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.hotelService.DeleteAmenity(c.Request.Context(), amenityID), nil)
}

// RegisterRoutes 注册公开路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hotels := r.Group("/hotels")
	{
		hotels.GET("", h.GetHotelList)
		hotels.GET("/:id", h.GetHotelDetail)
		hotels.GET("/:id/amenities", h.GetAmenities)
	}
}

// RegisterAdminRoutes 注册管理端路由
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	hotels := r.Group("/hotels")
	{
		hotels.GET("", h.GetAdminHotelList)
		hotels.POST("", h.CreateHotel)
		hotels.PUT("/:id", h.UpdateHotel)
		hotels.PUT("/:id/status", h.UpdateHotelStatus)
		hotels.DELETE("/:id", h.DeleteHotel)
		hotels.POST("/:id/amenities", h.AddAmenity)
	}
	r.DELETE("/amenities/:id", h.DeleteAmenity)
}

package hotel

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
	hotelService "github.com/dumeirei/hotel-booking-backend/internal/service/hotel"
)

// RoomHandler 房型处理器
type RoomHandler struct {
	roomService *hotelService.RoomService
}

// NewRoomHandler 创建房型处理器
func NewRoomHandler(roomSvc *hotelService.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomSvc,
	}
}

// GetRoomList 获取酒店的房型列表
// @Summary 获取房型列表
// @Tags 房型
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=[]hotelService.RoomInfo}
// @Router /api/v1/hotels/{id}/rooms [get]
func (h *RoomHandler) GetRoomList(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	rooms, err := h.roomService.GetRoomList(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, rooms)
}

// GetRoomDetail 获取房型详情
// @Summary 获取房型详情
// @Tags 房型
// @Produce json
// @Param id path int true "房型ID"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Router /api/v1/rooms/{id} [get]
func (h *RoomHandler) GetRoomDetail(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房型")
	if !ok {
		return
	}

	room, err := h.roomService.GetRoomDetail(c.Request.Context(), roomID)
	handler.MustSucceed(c, err, room)
}

// CreateRoom 创建房型（管理端）
// @Summary 创建房型
// @Tags 房型管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body hotelService.CreateRoomRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Router /api/admin/rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req hotelService.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), &req)
	handler.MustSucceed(c, err, room)
}

// UpdateRoom 更新房型（管理端）
// @Summary 更新房型
// @Tags 房型管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "房型ID"
// @Param request body hotelService.UpdateRoomRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.RoomInfo}
// @Router /api/admin/rooms/{id} [put]
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房型")
	if !ok {
		return
	}

	var req hotelService.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), roomID, &req)
	handler.MustSucceed(c, err, room)
}

// DeleteRoom 删除房型（管理端）
// @Summary 删除房型
// @Tags 房型管理
// @Produce json
// @Security Bearer
// @Param id path int true "房型ID"
// @Success 200 {object} response.Response
// @Router /api/admin/rooms/{id} [delete]
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房型")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.roomService.DeleteRoom(c.Request.Context(), roomID), nil)
}

// GetAdminRoomList 获取房型列表（管理端）
// @Summary 获取房型列表
// @Tags 房型管理
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param hotel_id query int false "酒店ID"
// @Param name query string false "名称"
// @Param status query int false "状态"
// @Success 200 {object} response.Response{data=[]hotelService.RoomInfo}
// @Router /api/admin/rooms [get]
func (h *RoomHandler) GetAdminRoomList(c *gin.Context) {
	var req hotelService.RoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	rooms, total, err := h.roomService.GetAdminRoomList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, rooms, total, req.Page, req.PageSize)
}

// AddRoomService 添加房型附加服务（管理端）
// @Summary 添加房型附加服务
// @Tags 房型管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "房型ID"
// @Param request body hotelService.AddRoomServiceRequest true "请求参数"
// @Success 200 {object} response.Response{data=hotelService.RoomServiceInfo}
// @Router /api/admin/rooms/{id}/services [post]
func (h *RoomHandler) AddRoomService(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房型")
	if !ok {
		return
	}

	var req hotelService.AddRoomServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	service, err := h.roomService.AddRoomService(c.Request.Context(), roomID, &req)
	handler.MustSucceed(c, err, service)
}

// DeleteRoomService 删除房型附加服务（管理端）
// @Summary 删除房型附加服务
// @Tags 房型管理
// @Produce json
// @Security Bearer
// @Param id path int true "服务ID"
// @Success 200 {object} response.Response
// @Router /api/admin/room-services/{id} [delete]
func (h *RoomHandler) DeleteRoomService(c *gin.Context) {
	serviceID, ok := handler.ParseID(c, "服务")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.roomService.DeleteRoomService(c.Request.Context(), serviceID), nil)
}

// RegisterRoutes 注册公开路由
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/hotels/:id/rooms", h.GetRoomList)
	r.GET("/rooms/:id", h.GetRoomDetail)
}

// RegisterAdminRoutes 注册管理端路由
func (h *RoomHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	rooms := r.Group("/rooms")
	{
		rooms.GET("", h.GetAdminRoomList)
		rooms.POST("", h.CreateRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.DELETE("/:id", h.DeleteRoom)
		rooms.POST("/:id/services", h.AddRoomService)
	}
	r.DELETE("/room-services/:id", h.DeleteRoomService)
}

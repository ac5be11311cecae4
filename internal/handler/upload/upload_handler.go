// Package upload 提供文件上传相关的 HTTP Handler
package upload

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
	uploadService "github.com/dumeirei/hotel-booking-backend/internal/service/upload"
)

// Handler 上传处理器
type Handler struct {
	uploadService *uploadService.UploadService
}

// NewHandler 创建上传处理器
func NewHandler(uploadSvc *uploadService.UploadService) *Handler {
	return &Handler{
		uploadService: uploadSvc,
	}
}

// formImage 从 multipart 表单取出图片文件
func formImage(c *gin.Context) (*multipart.FileHeader, multipart.File, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件")
		return nil, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "读取文件失败")
		return nil, nil, false
	}

	return fileHeader, file, true
}

// UploadImage 上传通用图片（用户端）
// @Summary 上传图片
// @Description 支持 jpg/jpeg/png/gif/webp 格式
// @Tags 文件上传
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "图片文件"
// @Success 200 {object} response.Response{data=uploadService.ImageInfo}
// @Router /api/v1/upload/image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	fileHeader, file, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	info, err := h.uploadService.UploadImage(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	handler.MustSucceed(c, err, info)
}

// UploadHotelImage 上传酒店图片（管理端）
// @Summary 上传酒店图片
// @Description 支持 jpg/jpeg/png/gif/webp 格式
// @Tags 文件上传
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param id path int true "酒店ID"
// @Param file formData file true "图片文件"
// @Success 200 {object} response.Response{data=uploadService.ImageInfo}
// @Router /api/admin/hotels/{id}/images [post]
func (h *Handler) UploadHotelImage(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	fileHeader, file, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	info, err := h.uploadService.UploadHotelImage(c.Request.Context(), hotelID, fileHeader.Filename, fileHeader.Size, file)
	handler.MustSucceed(c, err, info)
}

// UploadRoomImage 上传房型图片（管理端）
// @Summary 上传房型图片
// @Description 支持 jpg/jpeg/png/gif/webp 格式
// @Tags 文件上传
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param id path int true "房型ID"
// @Param file formData file true "图片文件"
// @Success 200 {object} response.Response{data=uploadService.ImageInfo}
// @Router /api/admin/rooms/{id}/images [post]
func (h *Handler) UploadRoomImage(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房型")
	if !ok {
		return
	}

	fileHeader, file, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	info, err := h.uploadService.UploadRoomImage(c.Request.Context(), roomID, fileHeader.Filename, fileHeader.Size, file)
	handler.MustSucceed(c, err, info)
}

// GetHotelImages 获取酒店图片列表（管理端）
// @Summary 获取酒店图片列表
// @Tags 文件上传
// @Produce json
// @Security Bearer
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=[]uploadService.ImageInfo}
// @Router /api/admin/hotels/{id}/images [get]
func (h *Handler) GetHotelImages(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	images, err := h.uploadService.GetHotelImages(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, images)
}

// GetRoomImages 获取房型图片列表（管理端）
// @Summary 获取房型图片列表
// @Tags 文件上传
// @Produce json
// @Security Bearer
// @Param id path int true "房型ID"
// @Success 200 {object} response.Response{data=[]uploadService.ImageInfo}
// @Router /api/admin/rooms/{id}/images [get]
func (h *Handler) GetRoomImages(c *gin.Context) {
	roomID, ok := handler.ParseID(c, "房型")
	if !ok {
		return
	}

	images, err := h.uploadService.GetRoomImages(c.Request.Context(), roomID)
	handler.MustSucceed(c, err, images)
}

// DeleteHotelImage 删除酒店图片（管理端）
// @Summary 删除酒店图片
// @Tags 文件上传
// @Produce json
// @Security Bearer
// @Param id path int true "图片ID"
// @Success 200 {object} response.Response
// @Router /api/admin/hotel-images/{id} [delete]
func (h *Handler) DeleteHotelImage(c *gin.Context) {
	imageID, ok := handler.ParseID(c, "图片")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.uploadService.DeleteHotelImage(c.Request.Context(), imageID), nil)
}

// DeleteRoomImage 删除房型图片（管理端）
// @Summary 删除房型图片
// @Tags 文件上传
// @Produce json
// @Security Bearer
// @Param id path int true "图片ID"
// @Success 200 {object} response.Response
// @Router /api/admin/room-images/{id} [delete]
func (h *Handler) DeleteRoomImage(c *gin.Context) {
	imageID, ok := handler.ParseID(c, "图片")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.uploadService.DeleteRoomImage(c.Request.Context(), imageID), nil)
}

// RegisterRoutes 注册用户路由（需要认证）
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/upload/image", h.UploadImage)
}

// RegisterAdminRoutes 注册管理端路由
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/hotels/:id/images", h.UploadHotelImage)
	r.GET("/hotels/:id/images", h.GetHotelImages)
	r.POST("/rooms/:id/images", h.UploadRoomImage)
	r.GET("/rooms/:id/images", h.GetRoomImages)
	r.DELETE("/hotel-images/:id", h.DeleteHotelImage)
	r.DELETE("/room-images/:id", h.DeleteRoomImage)
}

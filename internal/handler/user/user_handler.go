// Package user 提供用户相关的 HTTP Handler
package user

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
	userService "github.com/dumeirei/hotel-booking-backend/internal/service/user"
)

// Handler 用户处理器
type Handler struct {
	userService *userService.UserService
}

// NewHandler 创建用户处理器
func NewHandler(userSvc *userService.UserService) *Handler {
	return &Handler{
		userService: userSvc,
	}
}

// GetProfile 获取个人资料
// @Summary 获取个人资料
// @Tags 用户
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=userService.ProfileInfo}
// @Router /api/v1/user/profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	handler.MustSucceed(c, err, profile)
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body userService.UpdateProfileRequest true "请求参数"
// @Success 200 {object} response.Response{data=userService.ProfileInfo}
// @Router /api/v1/user/profile [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req userService.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	handler.MustSucceed(c, err, profile)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body userService.ChangePasswordRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/user/password [put]
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req userService.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	if handler.HandleError(c, h.userService.ChangePassword(c.Request.Context(), userID, &req)) {
		return
	}

	response.SuccessWithMessage(c, "密码已修改", nil)
}

// GetUserList 获取用户列表（管理端）
// @Summary 获取用户列表
// @Tags 用户管理
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param email query string false "邮箱"
// @Param name query string false "昵称"
// @Param status query int false "状态"
// @Success 200 {object} response.Response{data=[]userService.ProfileInfo}
// @Router /api/admin/users [get]
func (h *Handler) GetUserList(c *gin.Context) {
	var req userService.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	users, total, err := h.userService.GetUserList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, users, total, req.Page, req.PageSize)
}

// UpdateUserStatusRequest 更新用户状态请求
type UpdateUserStatusRequest struct {
	Status *int8 `json:"status" binding:"required"`
}

// UpdateUserStatus 更新用户状态（管理端）
// @Summary 更新用户状态
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "用户ID"
// @Param request body UpdateUserStatusRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/admin/users/{id}/status [put]
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	userID, ok := handler.ParseID(c, "用户")
	if !ok {
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	handler.MustSucceed(c, h.userService.UpdateUserStatus(c.Request.Context(), userID, *req.Status), nil)
}

// RegisterRoutes 注册用户路由（需要认证）
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	user := r.Group("/user")
	{
		user.GET("/profile", h.GetProfile)
		user.PUT("/profile", h.UpdateProfile)
		user.PUT("/password", h.ChangePassword)
	}
}

// RegisterAdminRoutes 注册管理端路由
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.GetUserList)
		users.PUT("/:id/status", h.UpdateUserStatus)
	}
}

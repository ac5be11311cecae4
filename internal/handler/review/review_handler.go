// Package review 提供评价相关的 HTTP Handler
package review

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
	"github.com/dumeirei/hotel-booking-backend/internal/middleware"
	reviewService "github.com/dumeirei/hotel-booking-backend/internal/service/review"
)

// Handler 评价处理器
type Handler struct {
	reviewService *reviewService.ReviewService
}

// NewHandler 创建评价处理器
func NewHandler(reviewSvc *reviewService.ReviewService) *Handler {
	return &Handler{
		reviewService: reviewSvc,
	}
}

// GetHotelReviews 获取酒店评价列表
// @Summary 获取酒店评价列表
// @Tags 评价
// @Produce json
// @Param id path int true "酒店ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=[]reviewService.ReviewInfo}
// @Router /api/v1/hotels/{id}/reviews [get]
func (h *Handler) GetHotelReviews(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	reviews, total, err := h.reviewService.GetHotelReviews(c.Request.Context(), hotelID, p.Page, p.PageSize)
	handler.MustSucceedPage(c, err, reviews, total, p.Page, p.PageSize)
}

// GetRatingSummary 获取酒店评分汇总
// @Summary 获取酒店评分汇总
// @Tags 评价
// @Produce json
// @Param id path int true "酒店ID"
// @Success 200 {object} response.Response{data=reviewService.RatingSummary}
// @Router /api/v1/hotels/{id}/rating [get]
func (h *Handler) GetRatingSummary(c *gin.Context) {
	hotelID, ok := handler.ParseID(c, "酒店")
	if !ok {
		return
	}

	summary, err := h.reviewService.GetRatingSummary(c.Request.Context(), hotelID)
	handler.MustSucceed(c, err, summary)
}

// CreateReview 创建评价
// @Summary 创建评价
// @Description 每个用户对同一酒店只能评价一次
// @Tags 评价
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body reviewService.CreateReviewRequest true "请求参数"
// @Success 200 {object} response.Response{data=reviewService.ReviewInfo}
// @Router /api/v1/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req reviewService.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, &req)
	handler.MustSucceed(c, err, review)
}

// UpdateReview 更新评价
// @Summary 更新评价
// @Tags 评价
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "评价ID"
// @Param request body reviewService.UpdateReviewRequest true "请求参数"
// @Success 200 {object} response.Response{data=reviewService.ReviewInfo}
// @Router /api/v1/reviews/{id} [put]
func (h *Handler) UpdateReview(c *gin.Context) {
	userID, reviewID, ok := handler.RequireUserAndParseID(c, "评价")
	if !ok {
		return
	}

	var req reviewService.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), reviewID, userID, &req)
	handler.MustSucceed(c, err, review)
}

// DeleteReview 删除评价
// @Summary 删除评价
// @Description 评价作者或管理员可删除
// @Tags 评价
// @Produce json
// @Security Bearer
// @Param id path int true "评价ID"
// @Success 200 {object} response.Response
// @Router /api/v1/reviews/{id} [delete]
func (h *Handler) DeleteReview(c *gin.Context) {
	userID, reviewID, ok := handler.RequireUserAndParseID(c, "评价")
	if !ok {
		return
	}

	err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, userID, middleware.IsAdmin(c))
	handler.MustSucceed(c, err, nil)
}

// GetMyReviews 获取我的评价列表
// @Summary 获取我的评价列表
// @Tags 评价
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=[]reviewService.ReviewInfo}
// @Router /api/v1/user/reviews [get]
func (h *Handler) GetMyReviews(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	p := handler.BindPagination(c)
	reviews, total, err := h.reviewService.GetUserReviews(c.Request.Context(), userID, p.Page, p.PageSize)
	handler.MustSucceedPage(c, err, reviews, total, p.Page, p.PageSize)
}

// RegisterPublicRoutes 注册公开路由
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/hotels/:id/reviews", h.GetHotelReviews)
	r.GET("/hotels/:id/rating", h.GetRatingSummary)
}

// RegisterRoutes 注册用户路由（需要认证）
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reviews := r.Group("/reviews")
	{
		reviews.POST("", h.CreateReview)
		reviews.PUT("/:id", h.UpdateReview)
		reviews.DELETE("/:id", h.DeleteReview)
	}
	r.GET("/user/reviews", h.GetMyReviews)
}

// RegisterAdminRoutes 注册管理端路由
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.DELETE("/reviews/:id", h.DeleteReview)
}

// Package marketing 提供营销相关的 HTTP Handler
package marketing

import (
	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/common/handler"
	"github.com/dumeirei/hotel-booking-backend/internal/common/response"
	marketingService "github.com/dumeirei/hotel-booking-backend/internal/service/marketing"
)

// CouponHandler 优惠券处理器
type CouponHandler struct {
	couponService *marketingService.CouponService
}

// NewCouponHandler 创建优惠券处理器
func NewCouponHandler(couponSvc *marketingService.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponSvc,
	}
}

// GetAvailableCoupons 获取当前可用的优惠券
// @Summary 获取可用优惠券列表
// @Tags 营销
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=[]marketingService.CouponInfo}
// @Router /api/v1/coupons [get]
func (h *CouponHandler) GetAvailableCoupons(c *gin.Context) {
	coupons, err := h.couponService.GetAvailableCoupons(c.Request.Context())
	handler.MustSucceed(c, err, coupons)
}

// ValidateCouponRequest 校验优惠券请求
type ValidateCouponRequest struct {
	Code   string  `json:"code" binding:"required,max=50"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// ValidateCouponResponse 校验优惠券响应
type ValidateCouponResponse struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
	Payable  float64 `json:"payable"`
}

// ValidateCoupon 试算优惠券抵扣金额
// @Summary 校验优惠券
// @Description 校验优惠券是否可用并试算抵扣金额，不占用使用次数
// @Tags 营销
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body ValidateCouponRequest true "请求参数"
// @Success 200 {object} response.Response{data=ValidateCouponResponse}
// @Router /api/v1/coupons/validate [post]
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	coupon, discount, err := h.couponService.ValidateForAmount(c.Request.Context(), req.Code, req.Amount)
	if handler.HandleError(c, err) {
		return
	}

	response.Success(c, &ValidateCouponResponse{
		Code:     coupon.Code,
		Discount: discount,
		Payable:  req.Amount - discount,
	})
}

// GetCouponByCode 根据券码查询优惠券
// @Summary 查询优惠券
// @Description 按券码查询优惠券信息，停用券不可见
// @Tags 营销
// @Produce json
// @Param code path string true "券码"
// @Success 200 {object} response.Response{data=marketingService.CouponInfo}
// @Router /api/v1/coupons/{code} [get]
func (h *CouponHandler) GetCouponByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "券码不能为空")
		return
	}

	coupon, err := h.couponService.GetCouponByCode(c.Request.Context(), code)
	handler.MustSucceed(c, err, coupon)
}

// CreateCoupon 创建优惠券（管理端）
// @Summary 创建优惠券
// @Tags 营销管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body marketingService.CreateCouponRequest true "请求参数"
// @Success 200 {object} response.Response{data=marketingService.CouponInfo}
// @Router /api/admin/coupons [post]
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req marketingService.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), &req)
	handler.MustSucceed(c, err, coupon)
}

// UpdateCoupon 更新优惠券（管理端）
// @Summary 更新优惠券
// @Tags 营销管理
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "优惠券ID"
// @Param request body marketingService.UpdateCouponRequest true "请求参数"
// @Success 200 {object} response.Response{data=marketingService.CouponInfo}
// @Router /api/admin/coupons/{id} [put]
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	couponID, ok := handler.ParseID(c, "优惠券")
	if !ok {
		return
	}

	var req marketingService.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), couponID, &req)
	handler.MustSucceed(c, err, coupon)
}

// DeleteCoupon 删除优惠券（管理端）
// @Summary 删除优惠券
// @Tags 营销管理
// @Produce json
// @Security Bearer
// @Param id path int true "优惠券ID"
// @Success 200 {object} response.Response
// @Router /api/admin/coupons/{id} [delete]
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	couponID, ok := handler.ParseID(c, "优惠券")
	if !ok {
		return
	}

	handler.MustSucceed(c, h.couponService.DeleteCoupon(c.Request.Context(), couponID), nil)
}

// GetCouponList 获取优惠券列表（管理端）
// @Summary 获取优惠券列表
// @Tags 营销管理
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param name query string false "名称"
// @Param type query string false "类型" Enums(fixed, percent)
// @Param status query int false "状态"
// @Success 200 {object} response.Response{data=[]marketingService.CouponInfo}
// @Router /api/admin/coupons [get]
func (h *CouponHandler) GetCouponList(c *gin.Context) {
	var req marketingService.CouponListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	coupons, total, err := h.couponService.GetCouponList(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, coupons, total, req.Page, req.PageSize)
}

// RegisterPublicRoutes 注册公开路由
func (h *CouponHandler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/coupons/:code", h.GetCouponByCode)
}

// RegisterRoutes 注册用户路由（需要认证）
func (h *CouponHandler) RegisterRoutes(r *gin.RouterGroup) {
	coupons := r.Group("/coupons")
	{
		coupons.GET("", h.GetAvailableCoupons)
		coupons.POST("/validate", h.ValidateCoupon)
	}
}

// RegisterAdminRoutes 注册管理端路由
func (h *CouponHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	coupons := r.Group("/coupons")
	{
		coupons.GET("", h.GetCouponList)
		coupons.POST("", h.CreateCoupon)
		coupons.PUT("/:id", h.UpdateCoupon)
		coupons.DELETE("/:id", h.DeleteCoupon)
	}
}

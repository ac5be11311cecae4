// Package marketing 提供营销服务
package marketing

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

// CouponCodeLength 自动生成的优惠券编码长度
const CouponCodeLength = 10

// CouponService 优惠券服务
type CouponService struct {
	db         *gorm.DB
	couponRepo *repository.CouponRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(db *gorm.DB, couponRepo *repository.CouponRepository) *CouponService {
	return &CouponService{
		db:         db,
		couponRepo: couponRepo,
	}
}

// CreateCouponRequest 创建优惠券请求
type CreateCouponRequest struct {
	Code        string   `json:"code" binding:"omitempty,max=50"`
	Name        string   `json:"name" binding:"required,max=100"`
	Type        string   `json:"type" binding:"required,oneof=fixed percent"`
	Value       float64  `json:"value" binding:"required,gt=0"`
	MinAmount   float64  `json:"min_amount" binding:"omitempty,gte=0"`
	MaxDiscount *float64 `json:"max_discount,omitempty"`
	TotalCount  int      `json:"total_count" binding:"required,gt=0"`
	StartTime   string   `json:"start_time" binding:"required"` // 格式 2006-01-02 15:04:05
	EndTime     string   `json:"end_time" binding:"required"`
	Description *string  `json:"description,omitempty"`
}

// UpdateCouponRequest 更新优惠券请求
type UpdateCouponRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	TotalCount  *int     `json:"total_count,omitempty" binding:"omitempty,gt=0"`
	EndTime     *string  `json:"end_time,omitempty"`
	Description *string  `json:"description,omitempty"`
	Status      *int8    `json:"status,omitempty"`
	MaxDiscount *float64 `json:"max_discount,omitempty"`
}

// CouponListRequest 优惠券列表请求
type CouponListRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	Name     string `form:"name" json:"name"`
	Type     string `form:"type" json:"type"`
	Status   *int8  `form:"status" json:"status,omitempty"`
}

// CouponInfo 优惠券信息
type CouponInfo struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Value       float64   `json:"value"`
	MinAmount   float64   `json:"min_amount"`
	MaxDiscount *float64  `json:"max_discount,omitempty"`
	TotalCount  int       `json:"total_count"`
	UsedCount   int       `json:"used_count"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description *string   `json:"description,omitempty"`
	Status      int8      `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// timeFormat 优惠券时间格式
const timeFormat = "2006-01-02 15:04:05"

// CreateCoupon 创建优惠券（管理端）
func (s *CouponService) CreateCoupon(ctx context.Context, req *CreateCouponRequest) (*CouponInfo, error) {
	startTime, err := time.Parse(timeFormat, req.StartTime)
	if err != nil {
		return nil, errors.ErrInvalidParams.WithMessage("开始时间格式不正确")
	}
	endTime, err := time.Parse(timeFormat, req.EndTime)
	if err != nil {
		return nil, errors.ErrInvalidParams.WithMessage("结束时间格式不正确")
	}
	if !endTime.After(startTime) {
		return nil, errors.ErrInvalidParams.WithMessage("结束时间必须晚于开始时间")
	}

	if req.Type == models.CouponTypePercent && req.Value > 100 {
		return nil, errors.ErrInvalidParams.WithMessage("折扣比例不能超过100")
	}

	code := req.Code
	if code == "" {
		code = utils.GenerateCouponCode(CouponCodeLength)
	}

	// 检查编码是否已存在
	if _, err := s.couponRepo.GetByCode(ctx, code); err == nil {
		return nil, errors.ErrCouponExists
	} else if err != gorm.ErrRecordNotFound {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	coupon := &models.Coupon{
		Code:        code,
		Name:        req.Name,
		Type:        req.Type,
		Value:       req.Value,
		MinAmount:   req.MinAmount,
		MaxDiscount: req.MaxDiscount,
		TotalCount:  req.TotalCount,
		StartTime:   startTime,
		EndTime:     endTime,
		Description: req.Description,
		Status:      models.CouponStatusActive,
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return s.convertCouponInfo(coupon), nil
}

// UpdateCoupon 更新优惠券（管理端）
func (s *CouponService) UpdateCoupon(ctx context.Context, id int64, req *UpdateCouponRequest) (*CouponInfo, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCouponNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.Name != nil {
		coupon.Name = *req.Name
	}
	if req.TotalCount != nil {
		if *req.TotalCount < coupon.UsedCount {
			return nil, errors.ErrInvalidParams.WithMessage("发放总量不能小于已使用数量")
		}
		coupon.TotalCount = *req.TotalCount
	}
	if req.EndTime != nil {
		endTime, err := time.Parse(timeFormat, *req.EndTime)
		if err != nil {
			return nil, errors.ErrInvalidParams.WithMessage("结束时间格式不正确")
		}
		coupon.EndTime = endTime
	}
	if req.Description != nil {
		coupon.Description = req.Description
	}
	if req.Status != nil {
		coupon.Status = *req.Status
	}
	if req.MaxDiscount != nil {
		coupon.MaxDiscount = req.MaxDiscount
	}

	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return s.convertCouponInfo(coupon), nil
}

// DeleteCoupon 删除优惠券（管理端）
func (s *CouponService) DeleteCoupon(ctx context.Context, id int64) error {
	_, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCouponNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return s.couponRepo.Delete(ctx, id)
}

// GetCouponList 获取优惠券列表（管理端）
func (s *CouponService) GetCouponList(ctx context.Context, req *CouponListRequest) ([]*CouponInfo, int64, error) {
	p := utils.Pagination{Page: req.Page, PageSize: req.PageSize}
	p.Normalize()

	filters := map[string]interface{}{}
	if req.Name != "" {
		filters["name"] = req.Name
	}
	if req.Type != "" {
		filters["type"] = req.Type
	}
	if req.Status != nil {
		filters["status"] = *req.Status
	}

	coupons, total, err := s.couponRepo.List(ctx, p.GetOffset(), p.GetLimit(), filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	var result []*CouponInfo
	for _, coupon := range coupons {
		result = append(result, s.convertCouponInfo(coupon))
	}
	return result, total, nil
}

// GetAvailableCoupons 获取当前可领用的优惠券
func (s *CouponService) GetAvailableCoupons(ctx context.Context) ([]*CouponInfo, error) {
	coupons, err := s.couponRepo.ListAvailable(ctx, time.Now())
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	var result []*CouponInfo
	for _, coupon := range coupons {
		result = append(result, s.convertCouponInfo(coupon))
	}
	return result, nil
}

// GetCouponByCode 根据券码查询优惠券（公开接口，停用券不可见）
func (s *CouponService) GetCouponByCode(ctx context.Context, code string) (*CouponInfo, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCouponNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if coupon.Status != models.CouponStatusActive {
		return nil, errors.ErrCouponNotFound
	}

	return s.convertCouponInfo(coupon), nil
}

// ValidateForAmount 校验优惠券并计算订单金额可抵扣的折扣
func (s *CouponService) ValidateForAmount(ctx context.Context, code string, amount float64) (*models.Coupon, float64, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, errors.ErrCouponNotFound
		}
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	now := time.Now()
	if coupon.Status != models.CouponStatusActive {
		return nil, 0, errors.ErrCouponNotFound
	}
	if now.Before(coupon.StartTime) || now.After(coupon.EndTime) {
		return nil, 0, errors.ErrCouponExpired
	}
	if coupon.UsedCount >= coupon.TotalCount {
		return nil, 0, errors.ErrCouponUsedUp
	}
	if amount < coupon.MinAmount {
		return nil, 0, errors.ErrInvalidParams.WithMessage("订单金额未达到优惠券使用门槛")
	}

	return coupon, s.calcDiscount(coupon, amount), nil
}

// Redeem 核销一次优惠券使用次数
func (s *CouponService) Redeem(ctx context.Context, id int64) error {
	if err := s.couponRepo.IncrUsedCount(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCouponUsedUp
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// calcDiscount 计算折扣金额，不会超过订单金额
func (s *CouponService) calcDiscount(coupon *models.Coupon, amount float64) float64 {
	var discount float64
	switch coupon.Type {
	case models.CouponTypeFixed:
		discount = coupon.Value
	case models.CouponTypePercent:
		discount = amount * coupon.Value / 100
		if coupon.MaxDiscount != nil && discount > *coupon.MaxDiscount {
			discount = *coupon.MaxDiscount
		}
	}
	if discount > amount {
		discount = amount
	}
	return discount
}

// convertCouponInfo 转换优惠券信息
func (s *CouponService) convertCouponInfo(coupon *models.Coupon) *CouponInfo {
	return &CouponInfo{
		ID:          coupon.ID,
		Code:        coupon.Code,
		Name:        coupon.Name,
		Type:        coupon.Type,
		Value:       coupon.Value,
		MinAmount:   coupon.MinAmount,
		MaxDiscount: coupon.MaxDiscount,
		TotalCount:  coupon.TotalCount,
		UsedCount:   coupon.UsedCount,
		StartTime:   coupon.StartTime,
		EndTime:     coupon.EndTime,
		Description: coupon.Description,
		Status:      coupon.Status,
		CreatedAt:   coupon.CreatedAt,
	}
}

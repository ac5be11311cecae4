// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, "未知错误")
	ErrInvalidParams   = New(1001, "参数错误")
	ErrNotFound        = New(1002, "资源不存在")
	ErrAlreadyExists   = New(1003, "资源已存在")
	ErrDatabaseError   = New(1004, "数据库错误")
	ErrCacheError      = New(1005, "缓存错误")
	ErrInternalError   = New(1006, "内部错误")
	ErrExternalService = New(1007, "外部服务错误")
	ErrRateLimitExceed = New(1008, "请求过于频繁")
	ErrOperationFailed = New(1009, "操作失败")
)

// 认证错误码 (2000-2999)
var (
	ErrUnauthorized     = New(2000, "未登录")
	ErrTokenExpired     = New(2001, "登录已过期")
	ErrTokenInvalid     = New(2002, "无效的令牌")
	ErrPermissionDenied = New(2003, "权限不足")
	ErrAccountDisabled  = New(2004, "账号已禁用")
	ErrPasswordError    = New(2005, "邮箱或密码错误")
	ErrResetCodeError   = New(2006, "重置验证码错误")
	ErrResetCodeExpired = New(2007, "重置验证码已过期")
	ErrMailSendFail     = New(2008, "邮件发送失败")
)

// 用户错误码 (3000-3999)
var (
	ErrUserNotFound = New(3000, "用户不存在")
	ErrEmailExists  = New(3001, "邮箱已被注册")
	ErrEmailInvalid = New(3002, "无效的邮箱")
)

// 酒店/房型错误码 (4000-4999)
var (
	ErrHotelNotFound       = New(4000, "酒店不存在")
	ErrHotelDisabled       = New(4001, "酒店已禁用")
	ErrRoomNotFound        = New(4002, "房型不存在")
	ErrRoomDisabled        = New(4003, "房型已禁用")
	ErrRoomServiceNotFound = New(4004, "房型服务不存在")
	ErrAmenityNotFound     = New(4005, "设施不存在")
	ErrImageNotFound       = New(4006, "图片记录不存在")
)

// 预订错误码 (5000-5999)
var (
	ErrBookingNotFound    = New(5000, "预订不存在")
	ErrBookingStatusError = New(5001, "预订状态异常")
	ErrBookingCancelled   = New(5002, "预订已取消")
	ErrDateRangeInvalid   = New(5003, "入住日期必须早于退房日期")
	ErrRoomNotEnough      = New(5004, "Not enough rooms available for the selected dates")
)

// 评价错误码 (6000-6999)
var (
	ErrReviewNotFound   = New(6000, "评价不存在")
	ErrRatingOutOfRange = New(6001, "评分必须在1到5之间")
)

// 优惠券错误码 (7000-7999)
var (
	ErrCouponNotFound = New(7000, "优惠券不存在")
	ErrCouponExpired  = New(7001, "优惠券已过期")
	ErrCouponUsedUp   = New(7002, "优惠券已领完")
	ErrCouponExists   = New(7003, "优惠券编码已存在")
)

// 上传错误码 (8000-8999)
var (
	ErrUploadFailed    = New(8000, "上传文件失败")
	ErrFileTypeInvalid = New(8001, "文件格式不正确")
	ErrFileTooLarge    = New(8002, "文件过大")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}

// Package auth 提供认证服务
package auth

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/cache"
	"github.com/dumeirei/hotel-booking-backend/internal/common/crypto"
	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	"github.com/dumeirei/hotel-booking-backend/pkg/mail"
)

// ResetCodeLength 重置验证码位数
const ResetCodeLength = 6

// AuthService 认证服务
type AuthService struct {
	db              *gorm.DB
	userRepo        *repository.UserRepository
	jwtManager      *jwt.Manager
	mailSender      mail.Sender
	metrics         *metrics.Metrics
	bcryptCost      int
	resetCodeExpire time.Duration
}

// NewAuthService 创建认证服务
func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	jwtManager *jwt.Manager,
	mailSender mail.Sender,
	bcryptCost int,
	resetCodeExpire time.Duration,
) *AuthService {
	return &AuthService{
		db:              db,
		userRepo:        userRepo,
		jwtManager:      jwtManager,
		mailSender:      mailSender,
		metrics:         metrics.GetMetrics(),
		bcryptCost:      bcryptCost,
		resetCodeExpire: resetCodeExpire,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	Name     string `json:"name" binding:"omitempty,max=50"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest 忘记密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Phone     *string    `json:"phone,omitempty"`
	Avatar    *string    `json:"avatar,omitempty"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User      *UserInfo      `json:"user"`
	TokenPair *jwt.TokenPair `json:"token"`
}

// Register 用户注册
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*LoginResponse, error) {
	email := normalizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, errors.ErrEmailInvalid
	}

	// 检查邮箱是否已注册
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrEmailExists
	}

	// 加密密码
	passwordHash, err := crypto.HashPasswordWithCost(req.Password, s.bcryptCost)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 并发注册时唯一索引兜底
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			return nil, errors.ErrEmailExists
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	s.metrics.RecordRegistration()

	// 注册成功后直接签发 Token
	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email, jwt.UserTypeUser)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	return &LoginResponse{
		User:      s.toUserInfo(user),
		TokenPair: tokenPair,
	}, nil
}

// Login 用户登录
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// 不暴露邮箱是否存在
			s.metrics.RecordLogin("fail")
			return nil, errors.ErrPasswordError
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 校验密码
	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		s.metrics.RecordLogin("fail")
		return nil, errors.ErrPasswordError
	}

	// 检查用户状态
	if user.Status == models.UserStatusDisabled {
		s.metrics.RecordLogin("fail")
		return nil, errors.ErrAccountDisabled
	}

	userType := jwt.UserTypeUser
	if user.Role == models.UserRoleAdmin {
		userType = jwt.UserTypeAdmin
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, user.Email, userType)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	s.metrics.RecordLogin("success")

	return &LoginResponse{
		User:      s.toUserInfo(user),
		TokenPair: tokenPair,
	}, nil
}

// RefreshToken 刷新令牌
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	tokenPair, err := s.jwtManager.RefreshToken(refreshToken)
	if err != nil {
		if err == jwt.ErrTokenExpired {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid.WithError(err)
	}
	return tokenPair, nil
}

// ForgotPassword 忘记密码：生成重置验证码并通过邮件发送
// 邮箱不存在时静默返回成功，避免账号枚举
func (s *AuthService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	email := normalizeEmail(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	code, err := crypto.GenerateNumericCode(ResetCodeLength)
	if err != nil {
		return errors.ErrInternalError.WithError(err)
	}

	key := cache.BuildKey(cache.KeyPrefixResetCode, email)
	if err := cache.SetString(ctx, key, code, s.resetCodeExpire); err != nil {
		return errors.ErrCacheError.WithError(err)
	}

	if err := s.mailSender.SendResetCode(ctx, user.Email, code, s.resetCodeExpire); err != nil {
		return errors.ErrMailSendFail.WithError(err)
	}

	return nil
}

// ResetPassword 重置密码：校验验证码并更新密码
func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	email := normalizeEmail(req.Email)

	key := cache.BuildKey(cache.KeyPrefixResetCode, email)
	stored, err := cache.GetString(ctx, key)
	if err != nil {
		return errors.ErrResetCodeExpired
	}
	if stored != req.Code {
		return errors.ErrResetCodeError
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	passwordHash, err := crypto.HashPasswordWithCost(req.NewPassword, s.bcryptCost)
	if err != nil {
		return errors.ErrInternalError.WithError(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	// 验证码一次性使用
	_ = cache.Delete(ctx, key)

	return nil
}

// toUserInfo 转换用户信息
func (s *AuthService) toUserInfo(user *models.User) *UserInfo {
	return &UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Avatar:    user.Avatar,
		Birthday:  user.Birthday,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// normalizeEmail 规范化邮箱（统一小写、去除首尾空白）
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Package user 提供用户服务
package user

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/crypto"
	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

// UserService 用户服务
type UserService struct {
	db         *gorm.DB
	userRepo   *repository.UserRepository
	bcryptCost int
}

// NewUserService 创建用户服务
func NewUserService(db *gorm.DB, userRepo *repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{
		db:         db,
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=50"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Avatar   *string `json:"avatar,omitempty" binding:"omitempty,max=255"`
	Birthday *string `json:"birthday,omitempty"` // 格式 2006-01-02
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=64"`
}

// UserListRequest 用户列表请求（管理端）
type UserListRequest struct {
	Page     int    `form:"page" json:"page"`
	PageSize int    `form:"page_size" json:"page_size"`
	Email    string `form:"email" json:"email"`
	Name     string `form:"name" json:"name"`
	Status   *int8  `form:"status" json:"status,omitempty"`
}

// ProfileInfo 用户资料
type ProfileInfo struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Phone     *string    `json:"phone,omitempty"`
	Avatar    *string    `json:"avatar,omitempty"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Role      string     `json:"role"`
	Status    int8       `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// GetProfile 获取用户资料
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*ProfileInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.convertProfileInfo(user), nil
}

// UpdateProfile 更新用户资料
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*ProfileInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		if *req.Phone != "" && !utils.ValidatePhone(*req.Phone) {
			return nil, errors.ErrInvalidParams.WithMessage("手机号格式不正确")
		}
		fields["phone"] = req.Phone
	}
	if req.Avatar != nil {
		fields["avatar"] = req.Avatar
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return nil, errors.ErrInvalidParams.WithMessage("生日格式不正确")
		}
		fields["birthday"] = birthday
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, user.ID, fields); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
	}

	user, err = s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.convertProfileInfo(user), nil
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.OldPassword, user.PasswordHash) {
		return errors.ErrPasswordError.WithMessage("原密码错误")
	}

	passwordHash, err := crypto.HashPasswordWithCost(req.NewPassword, s.bcryptCost)
	if err != nil {
		return errors.ErrInternalError.WithError(err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

// GetUserList 获取用户列表（管理端）
func (s *UserService) GetUserList(ctx context.Context, req *UserListRequest) ([]*ProfileInfo, int64, error) {
	p := utils.Pagination{Page: req.Page, PageSize: req.PageSize}
	p.Normalize()

	filters := map[string]interface{}{}
	if req.Email != "" {
		filters["email"] = req.Email
	}
	if req.Name != "" {
		filters["name"] = req.Name
	}
	if req.Status != nil {
		filters["status"] = *req.Status
	}

	users, total, err := s.userRepo.List(ctx, p.GetOffset(), p.GetLimit(), filters)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	var result []*ProfileInfo
	for _, user := range users {
		result = append(result, s.convertProfileInfo(user))
	}
	return result, total, nil
}

// UpdateUserStatus 更新用户状态（管理端）
func (s *UserService) UpdateUserStatus(ctx context.Context, userID int64, status int8) error {
	if status != models.UserStatusDisabled && status != models.UserStatusActive {
		return errors.ErrInvalidParams.WithMessage("无效的用户状态")
	}

	_, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	return s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"status": status})
}

// convertProfileInfo 转换用户资料
func (s *UserService) convertProfileInfo(user *models.User) *ProfileInfo {
	return &ProfileInfo{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Avatar:    user.Avatar,
		Birthday:  user.Birthday,
		Role:      user.Role,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}
}

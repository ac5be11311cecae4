package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-booking-backend/internal/common/cache"
	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	"github.com/dumeirei/hotel-booking-backend/pkg/mail"
)

func setupAuthService(t *testing.T) (*AuthService, *mail.MockSender, *miniredis.Miniredis) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:            "test-secret",
		AccessExpireTime:  time.Hour,
		RefreshExpireTime: 7 * 24 * time.Hour,
		Issuer:            "hotel-booking-test",
	})

	mailSender := mail.NewMockSender()
	svc := NewAuthService(db, repository.NewUserRepository(db), jwtManager, mailSender,
		bcrypt.MinCost, 15*time.Minute)

	return svc, mailSender, mr
}

func TestAuthService_Register(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	t.Run("注册成功", func(t *testing.T) {
		resp, err := svc.Register(ctx, &RegisterRequest{
			Email:    "Alice@Example.com",
			Password: "secret123",
			Name:     "Alice",
		})
		require.NoError(t, err)
		require.NotNil(t, resp)

		// 邮箱统一小写存储
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.Equal(t, "Alice", resp.User.Name)
		assert.Equal(t, models.UserRoleUser, resp.User.Role)
		assert.NotEmpty(t, resp.TokenPair.AccessToken)
		assert.NotEmpty(t, resp.TokenPair.RefreshToken)
	})

	t.Run("重复邮箱注册失败", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{
			Email:    "alice@example.com",
			Password: "another123",
		})
		assert.Equal(t, errors.ErrEmailExists, err)
	})

	t.Run("无效邮箱", func(t *testing.T) {
		_, err := svc.Register(ctx, &RegisterRequest{
			Email:    "not-an-email",
			Password: "secret123",
		})
		assert.Equal(t, errors.ErrEmailInvalid, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		Email:    "bob@example.com",
		Password: "secret123",
		Name:     "Bob",
	})
	require.NoError(t, err)

	t.Run("登录成功", func(t *testing.T) {
		resp, err := svc.Login(ctx, &LoginRequest{
			Email:    "bob@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.TokenPair.AccessToken)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{
			Email:    "bob@example.com",
			Password: "wrong",
		})
		assert.Equal(t, errors.ErrPasswordError, err)
	})

	t.Run("用户不存在时返回同样的错误", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		assert.Equal(t, errors.ErrPasswordError, err)
	})

	t.Run("禁用账号无法登录", func(t *testing.T) {
		require.NoError(t, svc.db.Model(&models.User{}).
			Where("email = ?", "bob@example.com").
			Update("status", models.UserStatusDisabled).Error)

		_, err := svc.Login(ctx, &LoginRequest{
			Email:    "bob@example.com",
			Password: "secret123",
		})
		assert.Equal(t, errors.ErrAccountDisabled, err)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _, _ := setupAuthService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Email:    "carol@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	t.Run("刷新成功", func(t *testing.T) {
		pair, err := svc.RefreshToken(ctx, resp.TokenPair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
	})

	t.Run("无效令牌", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "not-a-token")
		require.Error(t, err)
		appErr := errors.GetAppError(err)
		assert.Equal(t, errors.ErrTokenInvalid.Code, appErr.Code)
	})
}

func TestAuthService_PasswordReset(t *testing.T) {
	svc, mailSender, mr := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		Email:    "dave@example.com",
		Password: "oldpassword",
	})
	require.NoError(t, err)

	t.Run("发送重置验证码", func(t *testing.T) {
		err := svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "dave@example.com"})
		require.NoError(t, err)

		last := mailSender.GetLastMail()
		require.NotNil(t, last)
		assert.Equal(t, "dave@example.com", last.To)
		assert.Len(t, last.Body, ResetCodeLength)
	})

	t.Run("邮箱不存在时静默成功", func(t *testing.T) {
		mailSender.Clear()
		err := svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "nobody@example.com"})
		require.NoError(t, err)
		assert.Nil(t, mailSender.GetLastMail())
	})

	t.Run("验证码错误", func(t *testing.T) {
		err := svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "dave@example.com"})
		require.NoError(t, err)

		err = svc.ResetPassword(ctx, &ResetPasswordRequest{
			Email:       "dave@example.com",
			Code:        "000000",
			NewPassword: "newpassword",
		})
		assert.Equal(t, errors.ErrResetCodeError, err)
	})

	t.Run("重置成功并可用新密码登录", func(t *testing.T) {
		code := mailSender.GetLastMail().Body
		err := svc.ResetPassword(ctx, &ResetPasswordRequest{
			Email:       "dave@example.com",
			Code:        code,
			NewPassword: "newpassword",
		})
		require.NoError(t, err)

		_, err = svc.Login(ctx, &LoginRequest{
			Email:    "dave@example.com",
			Password: "newpassword",
		})
		require.NoError(t, err)

		// 旧密码失效
		_, err = svc.Login(ctx, &LoginRequest{
			Email:    "dave@example.com",
			Password: "oldpassword",
		})
		assert.Equal(t, errors.ErrPasswordError, err)
	})

	t.Run("验证码过期", func(t *testing.T) {
		err := svc.ForgotPassword(ctx, &ForgotPasswordRequest{Email: "dave@example.com"})
		require.NoError(t, err)

		mr.FastForward(16 * time.Minute)

		code := mailSender.GetLastMail().Body
		err = svc.ResetPassword(ctx, &ResetPasswordRequest{
			Email:       "dave@example.com",
			Code:        code,
			NewPassword: "whatever123",
		})
		assert.Equal(t, errors.ErrResetCodeExpired, err)
	})
}

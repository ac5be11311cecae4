// Package main 是应用程序入口
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/config"
	"github.com/dumeirei/hotel-booking-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-booking-backend/internal/common/metrics"
	commonMiddleware "github.com/dumeirei/hotel-booking-backend/internal/common/middleware"
	authHandler "github.com/dumeirei/hotel-booking-backend/internal/handler/auth"
	hotelHandler "github.com/dumeirei/hotel-booking-backend/internal/handler/hotel"
	marketingHandler "github.com/dumeirei/hotel-booking-backend/internal/handler/marketing"
	reviewHandler "github.com/dumeirei/hotel-booking-backend/internal/handler/review"
	uploadHandler "github.com/dumeirei/hotel-booking-backend/internal/handler/upload"
	userHandler "github.com/dumeirei/hotel-booking-backend/internal/handler/user"
	"github.com/dumeirei/hotel-booking-backend/internal/middleware"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	authService "github.com/dumeirei/hotel-booking-backend/internal/service/auth"
	hotelService "github.com/dumeirei/hotel-booking-backend/internal/service/hotel"
	marketingService "github.com/dumeirei/hotel-booking-backend/internal/service/marketing"
	reviewService "github.com/dumeirei/hotel-booking-backend/internal/service/review"
	uploadService "github.com/dumeirei/hotel-booking-backend/internal/service/upload"
	userService "github.com/dumeirei/hotel-booking-backend/internal/service/user"
	"github.com/dumeirei/hotel-booking-backend/pkg/mail"
	"github.com/dumeirei/hotel-booking-backend/pkg/oss"
	"github.com/dumeirei/hotel-booking-backend/pkg/sms"
)

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) {
	// 创建 JWT 管理器
	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:            cfg.JWT.Secret,
		AccessExpireTime:  cfg.JWT.AccessTokenDuration(),
		RefreshExpireTime: cfg.JWT.RefreshTokenDuration(),
		Issuer:            cfg.JWT.Issuer,
	})

	// 初始化仓储
	userRepo := repository.NewUserRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	amenityRepo := repository.NewAmenityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	imageRepo := repository.NewImageRepository(db)
	operationLogRepo := repository.NewOperationLogRepository(db)

	// 初始化外部服务客户端
	mailSender := newMailSender(cfg, logger)
	smsSender := newSMSSender(cfg, logger)
	uploader := newUploader(cfg, logger)

	// 初始化服务
	authSvc := authService.NewAuthService(
		db, userRepo, jwtManager, mailSender,
		cfg.Crypto.BcryptCost,
		time.Duration(cfg.Booking.ResetCodeExpire)*time.Second,
	)
	userSvc := userService.NewUserService(db, userRepo, cfg.Crypto.BcryptCost)
	couponSvc := marketingService.NewCouponService(db, couponRepo)
	hotelSvc := hotelService.NewHotelService(db, hotelRepo, roomRepo, amenityRepo)
	roomSvc := hotelService.NewRoomService(db, roomRepo, hotelRepo)
	bookingSvc := hotelService.NewBookingService(
		db, bookingRepo, roomRepo, hotelRepo,
		couponSvc, mailSender, smsSender,
		cfg.Booking.MaxNights, cfg.Booking.MaxRoomsPerOrder,
	)
	reviewSvc := reviewService.NewReviewService(db, reviewRepo, hotelRepo)
	uploadSvc := uploadService.NewUploadService(db, uploader, imageRepo, hotelRepo, roomRepo, 0)

	// 初始化处理器
	authH := authHandler.NewHandler(authSvc)
	userH := userHandler.NewHandler(userSvc)
	hotelH := hotelHandler.NewHandler(hotelSvc)
	roomH := hotelHandler.NewRoomHandler(roomSvc)
	bookingH := hotelHandler.NewBookingHandler(bookingSvc)
	reviewH := reviewHandler.NewHandler(reviewSvc)
	couponH := marketingHandler.NewCouponHandler(couponSvc)
	uploadH := uploadHandler.NewHandler(uploadSvc)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(nil))
	r.Use(middleware.AccessLog(logger))
	if cfg.Tracing.Enabled {
		r.Use(commonMiddleware.Tracing(&commonMiddleware.TracingConfig{
			ServiceName: cfg.Tracing.ServiceName,
			SkipPaths:   []string{"/health", "/ping", "/ready", "/metrics"},
		}))
	}

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/version", versionHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Prometheus 指标
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 公开接口（无需认证）
		public := v1.Group("")
		{
			authH.RegisterRoutes(public)
			hotelH.RegisterRoutes(public)
			roomH.RegisterRoutes(public)
			bookingH.RegisterPublicRoutes(public)
			reviewH.RegisterPublicRoutes(public)
			couponH.RegisterPublicRoutes(public)
		}

		// 用户端接口（需要用户认证）
		user := v1.Group("")
		user.Use(middleware.UserAuth(jwtManager))
		if cfg.RateLimit.Enabled {
			user.Use(middleware.UserRateLimit(
				redisClient,
				cfg.RateLimit.Limit,
				time.Duration(cfg.RateLimit.Window)*time.Second,
			))
		}
		{
			authH.RegisterProtectedRoutes(user)
			userH.RegisterRoutes(user)
			bookingH.RegisterRoutes(user)
			reviewH.RegisterRoutes(user)
			couponH.RegisterRoutes(user)
			uploadH.RegisterRoutes(user)
		}
	}

	// 管理后台 API（需要管理员认证）
	admin := r.Group("/api/admin")
	admin.Use(middleware.AdminAuth(jwtManager))
	admin.Use(commonMiddleware.NewOperationLogger(operationLogRepo).Log())
	{
		userH.RegisterAdminRoutes(admin)
		hotelH.RegisterAdminRoutes(admin)
		roomH.RegisterAdminRoutes(admin)
		bookingH.RegisterAdminRoutes(admin)
		reviewH.RegisterAdminRoutes(admin)
		couponH.RegisterAdminRoutes(admin)
		uploadH.RegisterAdminRoutes(admin)
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    404,
			"message": "接口不存在",
		})
	})
}

// newMailSender 根据配置创建邮件发送器，未配置 SMTP 时使用 Mock
func newMailSender(cfg *config.Config, logger *zap.Logger) mail.Sender {
	if cfg.Mail.Host == "" {
		logger.Warn("SMTP not configured, using mock mail sender")
		return mail.NewMockSender()
	}
	return mail.NewSMTPSender(&mail.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
	})
}

// newSMSSender 根据配置创建短信发送器，未配置密钥时使用 Mock
func newSMSSender(cfg *config.Config, logger *zap.Logger) sms.Sender {
	if cfg.SMS.AccessKeyID == "" {
		logger.Warn("SMS not configured, using mock sms sender")
		return sms.NewMockSender()
	}
	sender, err := sms.NewAliyunSender(&sms.AliyunConfig{
		AccessKeyID:     cfg.SMS.AccessKeyID,
		AccessKeySecret: cfg.SMS.AccessKeySecret,
		SignName:        cfg.SMS.SignName,
	})
	if err != nil {
		logger.Error("Failed to init aliyun sms, falling back to mock", zap.Error(err))
		return sms.NewMockSender()
	}
	return sender
}

// newUploader 根据配置创建对象存储上传器，未配置密钥时使用 Mock
func newUploader(cfg *config.Config, logger *zap.Logger) oss.Uploader {
	if cfg.OSS.AccessKeyID == "" {
		logger.Warn("OSS not configured, using mock uploader")
		return oss.NewMockUploader()
	}
	uploader, err := oss.NewAliyunUploader(&oss.AliyunConfig{
		Endpoint:        cfg.OSS.Endpoint,
		AccessKeyID:     cfg.OSS.AccessKeyID,
		AccessKeySecret: cfg.OSS.AccessKeySecret,
		BucketName:      cfg.OSS.Bucket,
		Domain:          cfg.OSS.CustomDomain,
		BasePath:        cfg.OSS.UploadDir,
	})
	if err != nil {
		logger.Error("Failed to init aliyun oss, falling back to mock", zap.Error(err))
		return oss.NewMockUploader()
	}
	return uploader
}

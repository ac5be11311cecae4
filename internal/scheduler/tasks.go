// Package scheduler 提供定时任务
package scheduler

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	"github.com/dumeirei/hotel-booking-backend/pkg/mail"
)

// TaskHandler 任务处理器
type TaskHandler struct {
	db               *gorm.DB
	couponRepo       *repository.CouponRepository
	operationLogRepo *repository.OperationLogRepository
	mailSender       mail.Sender
	logRetention     time.Duration
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(
	db *gorm.DB,
	couponRepo *repository.CouponRepository,
	operationLogRepo *repository.OperationLogRepository,
	mailSender mail.Sender,
) *TaskHandler {
	return &TaskHandler{
		db:               db,
		couponRepo:       couponRepo,
		operationLogRepo: operationLogRepo,
		mailSender:       mailSender,
		logRetention:     90 * 24 * time.Hour,
	}
}

// DisableExpiredCoupons 停用已过有效期的优惠券
func (h *TaskHandler) DisableExpiredCoupons(ctx context.Context) error {
	disabled, err := h.couponRepo.DisableExpired(ctx, time.Now())
	if err != nil {
		return err
	}

	if disabled > 0 {
		log.Printf("[Task] Disabled %d expired coupons", disabled)
	}

	return nil
}

// CleanupOperationLogs 清理过期的操作日志
func (h *TaskHandler) CleanupOperationLogs(ctx context.Context) error {
	deleted, err := h.operationLogRepo.DeleteBefore(ctx, time.Now().Add(-h.logRetention))
	if err != nil {
		return err
	}

	if deleted > 0 {
		log.Printf("[Task] Deleted %d old operation logs", deleted)
	}

	return nil
}

// SendCheckInReminders 发送入住提醒邮件
// 对次日入住且预留了邮箱的预订发送提醒
func (h *TaskHandler) SendCheckInReminders(ctx context.Context) error {
	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var bookings []*models.Booking
	err := h.db.WithContext(ctx).
		Where("status = ?", models.BookingStatusConfirmed).
		Where("check_in_date >= ? AND check_in_date < ?", dayStart, dayEnd).
		Where("guest_email IS NOT NULL").
		Limit(500).
		Find(&bookings).Error
	if err != nil {
		return err
	}

	if len(bookings) == 0 {
		return nil
	}

	log.Printf("[Task] Sending %d check-in reminders", len(bookings))

	for _, booking := range bookings {
		if booking.GuestEmail == nil {
			continue
		}
		subject := "入住提醒 - 预订 " + booking.BookingNo
		body := "您的预订 " + booking.BookingNo + " 将于明天入住，请携带有效证件办理入住。"
		if err := h.mailSender.Send(ctx, *booking.GuestEmail, subject, body); err != nil {
			log.Printf("[Task] Failed to send reminder for booking %s: %v", booking.BookingNo, err)
		}
	}

	return nil
}

// SetupTasks 设置所有任务
func SetupTasks(scheduler *Scheduler, handler *TaskHandler) {
	// 每小时停用过期优惠券
	scheduler.AddTask("DisableExpiredCoupons", 1*time.Hour, handler.DisableExpiredCoupons)

	// 每天清理过期操作日志
	scheduler.AddTask("CleanupOperationLogs", 24*time.Hour, handler.CleanupOperationLogs)

	// 每天发送入住提醒
	scheduler.AddTask("SendCheckInReminders", 24*time.Hour, handler.SendCheckInReminders)
}

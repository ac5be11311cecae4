// Package mail 邮件服务
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Sender 邮件发送器接口
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
	SendResetCode(ctx context.Context, to, code string, expire time.Duration) error
	SendBookingConfirmed(ctx context.Context, to, bookingNo string) error
	SendBookingCancelled(ctx context.Context, to, bookingNo string) error
}

// SMTPConfig SMTP 配置
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPSender SMTP 邮件发送器
type SMTPSender struct {
	config *SMTPConfig
}

// NewSMTPSender 创建 SMTP 邮件发送器
func NewSMTPSender(config *SMTPConfig) *SMTPSender {
	return &SMTPSender{config: config}
}

// Send 发送邮件
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	from := s.config.From
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)
	}

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("发送邮件失败: %v", err)
	}

	return nil
}

// SendResetCode 发送密码重置验证码
func (s *SMTPSender) SendResetCode(ctx context.Context, to, code string, expire time.Duration) error {
	subject := "密码重置验证码"
	body := fmt.Sprintf("您的密码重置验证码为：%s，%d 分钟内有效。如非本人操作请忽略本邮件。",
		code, int(expire.Minutes()))
	return s.Send(ctx, to, subject, body)
}

// SendBookingConfirmed 发送预订确认通知
func (s *SMTPSender) SendBookingConfirmed(ctx context.Context, to, bookingNo string) error {
	subject := "预订确认通知"
	body := fmt.Sprintf("您的预订 %s 已确认，感谢您的预订。", bookingNo)
	return s.Send(ctx, to, subject, body)
}

// SendBookingCancelled 发送预订取消通知
func (s *SMTPSender) SendBookingCancelled(ctx context.Context, to, bookingNo string) error {
	subject := "预订取消通知"
	body := fmt.Sprintf("您的预订 %s 已取消。", bookingNo)
	return s.Send(ctx, to, subject, body)
}

// MockSender 模拟邮件发送器（用于开发/测试）
type MockSender struct {
	SentMails []MockMail
}

// MockMail 模拟邮件
type MockMail struct {
	To      string
	Subject string
	Body    string
	SentAt  time.Time
}

// NewMockSender 创建模拟发送器
func NewMockSender() *MockSender {
	return &MockSender{
		SentMails: make([]MockMail, 0),
	}
}

// Send 模拟发送
func (s *MockSender) Send(ctx context.Context, to, subject, body string) error {
	s.SentMails = append(s.SentMails, MockMail{
		To:      to,
		Subject: subject,
		Body:    body,
		SentAt:  time.Now(),
	})
	return nil
}

// SendResetCode 模拟发送密码重置验证码
func (s *MockSender) SendResetCode(ctx context.Context, to, code string, expire time.Duration) error {
	return s.Send(ctx, to, "密码重置验证码", code)
}

// SendBookingConfirmed 模拟发送预订确认通知
func (s *MockSender) SendBookingConfirmed(ctx context.Context, to, bookingNo string) error {
	return s.Send(ctx, to, "预订确认通知", bookingNo)
}

// SendBookingCancelled 模拟发送预订取消通知
func (s *MockSender) SendBookingCancelled(ctx context.Context, to, bookingNo string) error {
	return s.Send(ctx, to, "预订取消通知", bookingNo)
}

// GetLastMail 获取最后发送的邮件
func (s *MockSender) GetLastMail() *MockMail {
	if len(s.SentMails) == 0 {
		return nil
	}
	return &s.SentMails[len(s.SentMails)-1]
}

// Clear 清空邮件记录
func (s *MockSender) Clear() {
	s.SentMails = make([]MockMail, 0)
}

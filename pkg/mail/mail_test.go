package mail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSender(t *testing.T) {
	sender := NewMockSender()
	ctx := context.Background()

	t.Run("发送邮件", func(t *testing.T) {
		err := sender.Send(ctx, "user@example.com", "测试主题", "测试内容")
		require.NoError(t, err)

		last := sender.GetLastMail()
		require.NotNil(t, last)
		assert.Equal(t, "user@example.com", last.To)
		assert.Equal(t, "测试主题", last.Subject)
		assert.Equal(t, "测试内容", last.Body)
	})

	t.Run("发送重置验证码", func(t *testing.T) {
		err := sender.SendResetCode(ctx, "user@example.com", "123456", 15*time.Minute)
		require.NoError(t, err)

		last := sender.GetLastMail()
		require.NotNil(t, last)
		assert.Equal(t, "密码重置验证码", last.Subject)
		assert.Contains(t, last.Body, "123456")
	})

	t.Run("发送预订通知", func(t *testing.T) {
		err := sender.SendBookingConfirmed(ctx, "user@example.com", "BK20260301123456789012")
		require.NoError(t, err)

		last := sender.GetLastMail()
		require.NotNil(t, last)
		assert.Contains(t, last.Body, "BK20260301123456789012")
	})

	t.Run("清空记录", func(t *testing.T) {
		sender.Clear()
		assert.Nil(t, sender.GetLastMail())
		assert.Empty(t, sender.SentMails)
	})
}

func TestSMTPSender_Interface(t *testing.T) {
	// 编译期检查两个实现都满足接口
	var _ Sender = (*SMTPSender)(nil)
	var _ Sender = (*MockSender)(nil)

	sender := NewSMTPSender(&SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		From:     "noreply@example.com",
		FromName: "Hotel Booking",
	})
	require.NotNil(t, sender)
}

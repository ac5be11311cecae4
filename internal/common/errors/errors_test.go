// Package errors 业务错误单元测试
package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	t.Run("无内部错误", func(t *testing.T) {
		err := New(1001, "参数错误")
		assert.Equal(t, "[1001] 参数错误", err.Error())
	})

	t.Run("带内部错误", func(t *testing.T) {
		inner := stderrors.New("column not found")
		err := Wrap(1004, "数据库错误", inner)
		assert.Contains(t, err.Error(), "[1004] 数据库错误")
		assert.Contains(t, err.Error(), "column not found")
	})
}

func TestAppError_Unwrap(t *testing.T) {
	inner := stderrors.New("connection refused")
	err := ErrDatabaseError.WithError(inner)

	assert.True(t, stderrors.Is(err, inner))
}

func TestAppError_WithMessage(t *testing.T) {
	err := ErrInvalidParams.WithMessage("入住日期格式错误")

	// 原错误不受影响
	assert.Equal(t, "参数错误", ErrInvalidParams.Message)
	assert.Equal(t, ErrInvalidParams.Code, err.Code)
	assert.Equal(t, "入住日期格式错误", err.Message)
}

func TestAppError_WithError(t *testing.T) {
	inner := stderrors.New("boom")
	err := ErrBookingNotFound.WithError(inner)

	assert.Equal(t, ErrBookingNotFound.Code, err.Code)
	assert.Equal(t, ErrBookingNotFound.Message, err.Message)
	assert.Equal(t, inner, err.Err)
	// 原错误不受影响
	assert.Nil(t, ErrBookingNotFound.Err)
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(ErrRoomNotEnough))
	assert.False(t, IsAppError(stderrors.New("plain error")))
	assert.False(t, IsAppError(nil))
}

func TestGetAppError(t *testing.T) {
	t.Run("应用错误原样返回", func(t *testing.T) {
		appErr := GetAppError(ErrRoomNotFound)
		require.NotNil(t, appErr)
		assert.Equal(t, ErrRoomNotFound.Code, appErr.Code)
	})

	t.Run("普通错误包装为未知错误", func(t *testing.T) {
		plain := stderrors.New("something broke")
		appErr := GetAppError(plain)
		require.NotNil(t, appErr)
		assert.Equal(t, ErrUnknown.Code, appErr.Code)
		assert.Equal(t, plain, appErr.Err)
	})
}

func TestErrorCodeRanges(t *testing.T) {
	// 各领域错误码应落在约定区间内
	cases := []struct {
		err  *AppError
		min  int
		max  int
	}{
		{ErrInvalidParams, 1000, 1999},
		{ErrUnauthorized, 2000, 2999},
		{ErrUserNotFound, 3000, 3999},
		{ErrHotelNotFound, 4000, 4999},
		{ErrRoomNotEnough, 5000, 5999},
		{ErrReviewNotFound, 6000, 6999},
		{ErrCouponNotFound, 7000, 7999},
		{ErrUploadFailed, 8000, 8999},
	}
	for _, c := range cases {
		assert.GreaterOrEqual(t, c.err.Code, c.min)
		assert.LessOrEqual(t, c.err.Code, c.max)
	}
}

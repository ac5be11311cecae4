package upload

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
	"github.com/dumeirei/hotel-booking-backend/pkg/oss"
)

// pngData 构造一份最小的 PNG 文件内容
func pngData(size int) []byte {
	header := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	data := make([]byte, size)
	copy(data, header)
	return data
}

func setupUploadService(t *testing.T) (*UploadService, *oss.MockUploader, *models.Hotel, *models.Room) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Hotel{},
		&models.Room{},
		&models.UrlImageHotel{},
		&models.UrlImageRoom{},
	)
	require.NoError(t, err)

	hotel := &models.Hotel{Name: "测试酒店", City: "上海", Status: models.HotelStatusActive}
	require.NoError(t, db.Create(hotel).Error)

	room := &models.Room{HotelID: hotel.ID, Name: "标准间", Price: 100, Quantity: 5, Capacity: 2, Status: models.RoomStatusActive}
	require.NoError(t, db.Create(room).Error)

	uploader := oss.NewMockUploader()
	svc := NewUploadService(
		db,
		uploader,
		repository.NewImageRepository(db),
		repository.NewHotelRepository(db),
		repository.NewRoomRepository(db),
		1<<20, // 1MB 便于测试大小限制
	)

	return svc, uploader, hotel, room
}

func TestUploadService_UploadImage(t *testing.T) {
	svc, uploader, _, _ := setupUploadService(t)
	ctx := context.Background()

	t.Run("通用上传", func(t *testing.T) {
		content := pngData(1024)
		info, err := svc.UploadImage(ctx, "avatar.png", int64(len(content)), bytes.NewReader(content))
		require.NoError(t, err)
		assert.Contains(t, info.URL, "https://mock-oss.example.com/images/")
		assert.True(t, strings.HasPrefix(info.FileName, "images/"))
		assert.Contains(t, uploader.Files, info.FileName)
	})

	t.Run("超出大小限制", func(t *testing.T) {
		content := pngData(2 << 20)
		_, err := svc.UploadImage(ctx, "big.png", int64(len(content)), bytes.NewReader(content))
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrFileTooLarge.Code, appErr.Code)
	})
}

func TestUploadService_UploadHotelImage(t *testing.T) {
	svc, uploader, hotel, _ := setupUploadService(t)
	ctx := context.Background()

	t.Run("上传成功", func(t *testing.T) {
		content := pngData(1024)
		info, err := svc.UploadHotelImage(ctx, hotel.ID, "lobby.png", int64(len(content)), bytes.NewReader(content))
		require.NoError(t, err)
		assert.NotZero(t, info.ID)
		assert.Contains(t, info.URL, "https://mock-oss.example.com/hotels/")
		assert.True(t, strings.HasSuffix(info.URL, ".png"))

		// FileName 记录生成的对象键而非原始文件名，作为删除凭据
		assert.True(t, strings.HasPrefix(info.FileName, "hotels/"))
		assert.True(t, strings.HasSuffix(info.FileName, ".png"))
		assert.NotEqual(t, "lobby.png", info.FileName)

		// 对象已按对象键写入存储
		assert.Len(t, uploader.Files, 1)
		assert.Contains(t, uploader.Files, info.FileName)
	})

	t.Run("酒店不存在", func(t *testing.T) {
		content := pngData(1024)
		_, err := svc.UploadHotelImage(ctx, 999, "lobby.png", int64(len(content)), bytes.NewReader(content))
		assert.Equal(t, errors.ErrHotelNotFound, err)
	})

	t.Run("扩展名不合法", func(t *testing.T) {
		content := pngData(1024)
		_, err := svc.UploadHotelImage(ctx, hotel.ID, "lobby.exe", int64(len(content)), bytes.NewReader(content))
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrFileTypeInvalid.Code, appErr.Code)
	})

	t.Run("内容不是图片", func(t *testing.T) {
		content := []byte(strings.Repeat("not an image ", 100))
		_, err := svc.UploadHotelImage(ctx, hotel.ID, "fake.png", int64(len(content)), bytes.NewReader(content))
		appErr, ok := err.(*errors.AppError)
		require.True(t, ok)
		assert.Equal(t, errors.ErrFileTypeInvalid.Code, appErr.Code)
	})

	t.Run("文件过大", func(t *testing.T) {
		content := pngData(2 << 20)
		_, err := svc.UploadHotelImage(ctx, hotel.ID, "big.png", int64(len(content)), bytes.NewReader(content))
		assert.Equal(t, errors.ErrFileTooLarge, err)
	})
}

func TestUploadService_UploadRoomImage(t *testing.T) {
	svc, _, _, room := setupUploadService(t)
	ctx := context.Background()

	t.Run("上传成功", func(t *testing.T) {
		content := pngData(1024)
		info, err := svc.UploadRoomImage(ctx, room.ID, "room.jpg", int64(len(content)), bytes.NewReader(content))
		require.NoError(t, err)
		assert.Contains(t, info.URL, "/rooms/")
	})

	t.Run("房型不存在", func(t *testing.T) {
		content := pngData(1024)
		_, err := svc.UploadRoomImage(ctx, 999, "room.jpg", int64(len(content)), bytes.NewReader(content))
		assert.Equal(t, errors.ErrRoomNotFound, err)
	})
}

func TestUploadService_ImageList(t *testing.T) {
	svc, _, hotel, room := setupUploadService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		content := pngData(512)
		_, err := svc.UploadHotelImage(ctx, hotel.ID, "h.png", int64(len(content)), bytes.NewReader(content))
		require.NoError(t, err)
	}
	content := pngData(512)
	_, err := svc.UploadRoomImage(ctx, room.ID, "r.png", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)

	t.Run("酒店图片列表", func(t *testing.T) {
		images, err := svc.GetHotelImages(ctx, hotel.ID)
		require.NoError(t, err)
		assert.Len(t, images, 3)
	})

	t.Run("房型图片列表", func(t *testing.T) {
		images, err := svc.GetRoomImages(ctx, room.ID)
		require.NoError(t, err)
		assert.Len(t, images, 1)
	})
}

func TestUploadService_DeleteImage(t *testing.T) {
	svc, uploader, hotel, room := setupUploadService(t)
	ctx := context.Background()

	content := pngData(512)
	hotelImage, err := svc.UploadHotelImage(ctx, hotel.ID, "h.png", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)
	roomImage, err := svc.UploadRoomImage(ctx, room.ID, "r.png", int64(len(content)), bytes.NewReader(content))
	require.NoError(t, err)
	require.Len(t, uploader.Files, 2)

	t.Run("删除酒店图片", func(t *testing.T) {
		err := svc.DeleteHotelImage(ctx, hotelImage.ID)
		require.NoError(t, err)

		images, err := svc.GetHotelImages(ctx, hotel.ID)
		require.NoError(t, err)
		assert.Empty(t, images)

		// 对象存储中的文件同步删除
		assert.Len(t, uploader.Files, 1)
	})

	t.Run("删除房型图片", func(t *testing.T) {
		err := svc.DeleteRoomImage(ctx, roomImage.ID)
		require.NoError(t, err)
		assert.Empty(t, uploader.Files)
	})

	t.Run("图片不存在", func(t *testing.T) {
		err := svc.DeleteHotelImage(ctx, 999)
		assert.Equal(t, errors.ErrImageNotFound, err)
	})
}

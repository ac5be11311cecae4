// Package repository 预订仓储单元测试
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

func setupBookingTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.Booking{}, &models.User{})
	require.NoError(t, err)

	return db
}

func createTestRoom(t *testing.T, db *gorm.DB, quantity int) *models.Room {
	t.Helper()
	hotel := &models.Hotel{Name: "测试酒店", City: "上海", Address: "南京路1号"}
	require.NoError(t, db.Create(hotel).Error)

	room := &models.Room{
		HotelID:  hotel.ID,
		Name:     "标准大床房",
		Quantity: quantity,
		Price:    399,
		Capacity: 2,
	}
	require.NoError(t, db.Create(room).Error)
	return room
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBookingRepository_Create(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, db, 10)

	booking := &models.Booking{
		BookingNo:    "BK20250601000001",
		UserID:       1,
		RoomID:       room.ID,
		CheckInDate:  date(2025, 6, 1),
		CheckOutDate: date(2025, 6, 4),
		Quantity:     2,
		TotalPrice:   2394,
		GuestName:    "张三",
		GuestPhone:   "13812345678",
		Status:       models.BookingStatusConfirmed,
	}

	err := repo.Create(ctx, booking)
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
}

func TestBookingRepository_GetByBookingNo(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, db, 10)
	booking := &models.Booking{
		BookingNo:    "BK20250601000002",
		UserID:       1,
		RoomID:       room.ID,
		CheckInDate:  date(2025, 6, 1),
		CheckOutDate: date(2025, 6, 2),
		Quantity:     1,
		TotalPrice:   399,
		GuestName:    "张三",
		GuestPhone:   "13812345678",
		Status:       models.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(booking).Error)

	found, err := repo.GetByBookingNo(ctx, "BK20250601000002")
	require.NoError(t, err)
	assert.Equal(t, booking.ID, found.ID)

	_, err = repo.GetByBookingNo(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBookingRepository_SumOverlappingQuantity(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, db, 10)

	seed := func(no string, in, out time.Time, qty int, status string) {
		require.NoError(t, db.Create(&models.Booking{
			BookingNo:    no,
			UserID:       1,
			RoomID:       room.ID,
			CheckInDate:  in,
			CheckOutDate: out,
			Quantity:     qty,
			TotalPrice:   float64(qty) * 399,
			GuestName:    "张三",
			GuestPhone:   "13812345678",
			Status:       status,
		}).Error)
	}

	// 6月1日-6月5日占用 3 间
	seed("BK1", date(2025, 6, 1), date(2025, 6, 5), 3, models.BookingStatusConfirmed)
	// 6月3日-6月7日占用 2 间
	seed("BK2", date(2025, 6, 3), date(2025, 6, 7), 2, models.BookingStatusConfirmed)
	// 已取消的预订不占用库存
	seed("BK3", date(2025, 6, 1), date(2025, 6, 10), 5, models.BookingStatusCancelled)

	t.Run("与两个预订重叠", func(t *testing.T) {
		booked, err := repo.SumOverlappingQuantity(ctx, room.ID, date(2025, 6, 3), date(2025, 6, 5))
		require.NoError(t, err)
		assert.Equal(t, 5, booked)
	})

	t.Run("只与第一个预订重叠", func(t *testing.T) {
		booked, err := repo.SumOverlappingQuantity(ctx, room.ID, date(2025, 6, 1), date(2025, 6, 3))
		require.NoError(t, err)
		assert.Equal(t, 3, booked)
	})

	t.Run("退房日与入住日相接不算重叠", func(t *testing.T) {
		booked, err := repo.SumOverlappingQuantity(ctx, room.ID, date(2025, 6, 7), date(2025, 6, 9))
		require.NoError(t, err)
		assert.Equal(t, 0, booked)
	})

	t.Run("无任何预订的时段", func(t *testing.T) {
		booked, err := repo.SumOverlappingQuantity(ctx, room.ID, date(2025, 7, 1), date(2025, 7, 5))
		require.NoError(t, err)
		assert.Equal(t, 0, booked)
	})
}

func TestBookingRepository_ListByUser(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, db, 10)

	for i, uid := range []int64{1, 1, 2} {
		require.NoError(t, db.Create(&models.Booking{
			BookingNo:    "BK-list-" + string(rune('a'+i)),
			UserID:       uid,
			RoomID:       room.ID,
			CheckInDate:  date(2025, 6, 1),
			CheckOutDate: date(2025, 6, 2),
			Quantity:     1,
			TotalPrice:   399,
			GuestName:    "张三",
			GuestPhone:   "13812345678",
			Status:       models.BookingStatusConfirmed,
		}).Error)
	}

	list, total, err := repo.ListByUser(ctx, 1, 0, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	cancelled := models.BookingStatusCancelled
	list, total, err = repo.ListByUser(ctx, 1, 0, 10, &cancelled)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestBookingRepository_Cancel(t *testing.T) {
	db := setupBookingTestDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, db, 10)
	booking := &models.Booking{
		BookingNo:    "BK-cancel",
		UserID:       1,
		RoomID:       room.ID,
		CheckInDate:  date(2025, 6, 1),
		CheckOutDate: date(2025, 6, 4),
		Quantity:     2,
		TotalPrice:   2394,
		GuestName:    "张三",
		GuestPhone:   "13812345678",
		Status:       models.BookingStatusConfirmed,
	}
	require.NoError(t, db.Create(booking).Error)

	require.NoError(t, repo.Cancel(ctx, booking.ID))

	found, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, found.Status)
	assert.NotNil(t, found.CancelledAt)

	// 取消后不再占用库存
	booked, err := repo.SumOverlappingQuantity(ctx, room.ID, date(2025, 6, 1), date(2025, 6, 4))
	require.NoError(t, err)
	assert.Zero(t, booked)
}

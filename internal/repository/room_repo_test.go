// Package repository 房型仓储单元测试
package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
)

func setupRoomTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Hotel{}, &models.Room{}, &models.RoomService{}, &models.UrlImageRoom{},
	)
	require.NoError(t, err)

	return db
}

func TestRoomRepository_CreateAndGet(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{Name: "测试酒店", City: "上海", Address: "a"}
	require.NoError(t, db.Create(hotel).Error)

	bedType := models.BedTypeQueen
	room := &models.Room{
		HotelID:  hotel.ID,
		Name:     "高级大床房",
		Quantity: 8,
		Price:    499,
		Capacity: 2,
		BedType:  &bedType,
	}
	require.NoError(t, repo.Create(ctx, room))
	assert.NotZero(t, room.ID)

	found, err := repo.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, found.Quantity)
	assert.Equal(t, int8(models.RoomStatusActive), found.Status)
}

func TestRoomRepository_GetByIDForUpdate(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)

	hotel := &models.Hotel{Name: "测试酒店", City: "上海", Address: "a"}
	require.NoError(t, db.Create(hotel).Error)
	room := &models.Room{HotelID: hotel.ID, Name: "标准间", Quantity: 3, Price: 299, Capacity: 2}
	require.NoError(t, db.Create(room).Error)

	// sqlite 不支持 FOR UPDATE，应跳过锁子句正常返回
	err := db.Transaction(func(tx *gorm.DB) error {
		found, err := repo.GetByIDForUpdate(tx, room.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, room.ID, found.ID)
		return nil
	})
	require.NoError(t, err)
}

func TestRoomRepository_ListByHotel(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{Name: "测试酒店", City: "上海", Address: "a"}
	require.NoError(t, db.Create(hotel).Error)

	require.NoError(t, db.Create(&models.Room{HotelID: hotel.ID, Name: "豪华房", Quantity: 2, Price: 899, Capacity: 2}).Error)
	require.NoError(t, db.Create(&models.Room{HotelID: hotel.ID, Name: "标准房", Quantity: 10, Price: 299, Capacity: 2}).Error)
	require.NoError(t, db.Create(&models.Room{
		HotelID: hotel.ID, Name: "下架房", Quantity: 1, Price: 199, Capacity: 1,
		Status: models.RoomStatusDisabled,
	}).Error)

	t.Run("用户端仅上架房型且按价格排序", func(t *testing.T) {
		rooms, err := repo.ListByHotel(ctx, hotel.ID, true)
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		assert.Equal(t, "标准房", rooms[0].Name)
		assert.Equal(t, "豪华房", rooms[1].Name)
	})

	t.Run("管理端包含下架房型", func(t *testing.T) {
		rooms, err := repo.ListByHotel(ctx, hotel.ID, false)
		require.NoError(t, err)
		assert.Len(t, rooms, 3)
	})
}

func TestRoomRepository_Services(t *testing.T) {
	db := setupRoomTestDB(t)
	repo := NewRoomRepository(db)
	ctx := context.Background()

	hotel := &models.Hotel{Name: "测试酒店", City: "上海", Address: "a"}
	require.NoError(t, db.Create(hotel).Error)
	room := &models.Room{HotelID: hotel.ID, Name: "标准间", Quantity: 3, Price: 299, Capacity: 2}
	require.NoError(t, db.Create(room).Error)

	service := &models.RoomService{RoomID: room.ID, Name: "双人早餐", Price: 88}
	require.NoError(t, repo.CreateService(ctx, service))

	services, err := repo.ListServices(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "双人早餐", services[0].Name)

	require.NoError(t, repo.DeleteService(ctx, service.ID))
	services, err = repo.ListServices(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, services)
}

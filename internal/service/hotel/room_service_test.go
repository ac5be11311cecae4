package hotel

import (
	"context"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-booking-backend/internal/common/errors"
	"github.com/dumeirei/hotel-booking-backend/internal/common/utils"
	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

func setupRoomService(t *testing.T) (*RoomService, *models.Hotel, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)

	hotel := &models.Hotel{
		Name:    "测试酒店",
		City:    "杭州",
		Address: "西湖区",
		Status:  models.HotelStatusActive,
	}
	require.NoError(t, db.Create(hotel).Error)

	svc := NewRoomService(db,
		repository.NewRoomRepository(db),
		repository.NewHotelRepository(db),
	)
	return svc, hotel, db
}

func TestRoomService_CreateAndList(t *testing.T) {
	svc, hotel, _ := setupRoomService(t)
	ctx := context.Background()

	deluxe, err := svc.CreateRoom(ctx, &CreateRoomRequest{
		HotelID:  hotel.ID,
		Name:     "豪华大床房",
		Quantity: utils.IntPtr(10),
		Price:    588,
		Capacity: 2,
		BedType:  utils.StringPtr(models.BedTypeQueen),
	})
	require.NoError(t, err)
	assert.Equal(t, int8(models.RoomStatusActive), deluxe.Status)
	assert.Equal(t, 10, deluxe.Quantity)

	standard, err := svc.CreateRoom(ctx, &CreateRoomRequest{
		HotelID:  hotel.ID,
		Name:     "标准双床房",
		Quantity: utils.IntPtr(20),
		Price:    328,
	})
	require.NoError(t, err)
	// 未指定容量时默认2人
	assert.Equal(t, 2, standard.Capacity)

	t.Run("房型列表按价格升序", func(t *testing.T) {
		rooms, err := svc.GetRoomList(ctx, hotel.ID)
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		assert.Equal(t, "标准双床房", rooms[0].Name)
		assert.Equal(t, "豪华大床房", rooms[1].Name)
	})

	t.Run("停售房型不在用户端列表", func(t *testing.T) {
		var status int8 = models.RoomStatusDisabled
		_, err := svc.UpdateRoom(ctx, deluxe.ID, &UpdateRoomRequest{Status: &status})
		require.NoError(t, err)

		rooms, err := svc.GetRoomList(ctx, hotel.ID)
		require.NoError(t, err)
		assert.Len(t, rooms, 1)

		_, err = svc.GetRoomDetail(ctx, deluxe.ID)
		assert.Equal(t, errors.ErrRoomNotFound, err)
	})

	t.Run("酒店不存在", func(t *testing.T) {
		_, err := svc.GetRoomList(ctx, 999)
		assert.Equal(t, errors.ErrHotelNotFound, err)
	})
}

func TestRoomService_ZeroQuantityRoom(t *testing.T) {
	svc, hotel, _ := setupRoomService(t)
	ctx := context.Background()

	req := &CreateRoomRequest{
		HotelID:  hotel.ID,
		Name:     "待开放房型",
		Quantity: utils.IntPtr(0),
		Price:    199,
	}
	// 请求校验不把 0 当作缺失
	require.NoError(t, binding.Validator.ValidateStruct(req))

	room, err := svc.CreateRoom(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 0, room.Quantity)

	// 未传 quantity 仍然校验失败
	assert.Error(t, binding.Validator.ValidateStruct(&CreateRoomRequest{
		HotelID: hotel.ID,
		Name:    "缺库存",
		Price:   199,
	}))
}

func TestRoomService_UpdateAndDelete(t *testing.T) {
	svc, hotel, _ := setupRoomService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, &CreateRoomRequest{
		HotelID:  hotel.ID,
		Name:     "海景房",
		Quantity: utils.IntPtr(5),
		Price:    888,
	})
	require.NoError(t, err)

	t.Run("调整库存和价格", func(t *testing.T) {
		updated, err := svc.UpdateRoom(ctx, room.ID, &UpdateRoomRequest{
			Quantity: utils.IntPtr(8),
			Price:    utils.Float64Ptr(999),
		})
		require.NoError(t, err)
		assert.Equal(t, 8, updated.Quantity)
		assert.Equal(t, float64(999), updated.Price)
	})

	t.Run("无效状态", func(t *testing.T) {
		var status int8 = 5
		_, err := svc.UpdateRoom(ctx, room.ID, &UpdateRoomRequest{Status: &status})
		require.Error(t, err)
		assert.Equal(t, errors.ErrInvalidParams.Code, errors.GetAppError(err).Code)
	})

	t.Run("删除房型", func(t *testing.T) {
		require.NoError(t, svc.DeleteRoom(ctx, room.ID))
		err := svc.DeleteRoom(ctx, room.ID)
		assert.Equal(t, errors.ErrRoomNotFound, err)
	})
}

func TestRoomService_RoomServices(t *testing.T) {
	svc, hotel, _ := setupRoomService(t)
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, &CreateRoomRequest{
		HotelID:  hotel.ID,
		Name:     "行政套房",
		Quantity: utils.IntPtr(3),
		Price:    1288,
	})
	require.NoError(t, err)

	t.Run("添加附加服务", func(t *testing.T) {
		service, err := svc.AddRoomService(ctx, room.ID, &AddRoomServiceRequest{
			Name:  "双人早餐",
			Price: 98,
		})
		require.NoError(t, err)
		assert.Equal(t, "双人早餐", service.Name)

		detail, err := svc.GetRoomDetail(ctx, room.ID)
		require.NoError(t, err)
		require.Len(t, detail.Services, 1)
		assert.Equal(t, float64(98), detail.Services[0].Price)
	})

	t.Run("房型不存在", func(t *testing.T) {
		_, err := svc.AddRoomService(ctx, 999, &AddRoomServiceRequest{Name: "延迟退房"})
		assert.Equal(t, errors.ErrRoomNotFound, err)
	})

	t.Run("删除附加服务", func(t *testing.T) {
		detail, err := svc.GetRoomDetail(ctx, room.ID)
		require.NoError(t, err)
		require.NotEmpty(t, detail.Services)

		require.NoError(t, svc.DeleteRoomService(ctx, detail.Services[0].ID))

		err = svc.DeleteRoomService(ctx, detail.Services[0].ID)
		assert.Equal(t, errors.ErrRoomServiceNotFound, err)
	})
}

func TestRoomService_AdminList(t *testing.T) {
	svc, hotel, _ := setupRoomService(t)
	ctx := context.Background()

	_, err := svc.CreateRoom(ctx, &CreateRoomRequest{HotelID: hotel.ID, Name: "大床房", Quantity: utils.IntPtr(5), Price: 400})
	require.NoError(t, err)
	room, err := svc.CreateRoom(ctx, &CreateRoomRequest{HotelID: hotel.ID, Name: "双床房", Quantity: utils.IntPtr(5), Price: 450})
	require.NoError(t, err)

	var status int8 = models.RoomStatusDisabled
	_, err = svc.UpdateRoom(ctx, room.ID, &UpdateRoomRequest{Status: &status})
	require.NoError(t, err)

	t.Run("管理端列表含停售房型", func(t *testing.T) {
		_, total, err := svc.GetAdminRoomList(ctx, &RoomListRequest{Page: 1, PageSize: 10, HotelID: hotel.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("按状态过滤", func(t *testing.T) {
		list, total, err := svc.GetAdminRoomList(ctx, &RoomListRequest{Page: 1, PageSize: 10, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "双床房", list[0].Name)
	})
}

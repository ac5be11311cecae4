// Package models 定义数据模型
package models

import (
	"time"
)

// Room 房型模型
// Quantity 表示该房型的总库存（物理房间数），与预订占用无关；
// 剩余可订数量由可用性服务基于预订聚合实时计算。
type Room struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID     int64     `gorm:"index;not null" json:"hotel_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Quantity    int       `gorm:"not null;default:0" json:"quantity"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Capacity    int       `gorm:"not null;default:2" json:"capacity"`
	BedType     *string   `gorm:"type:varchar(50)" json:"bed_type,omitempty"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Status      int8      `gorm:"type:smallint;not null;default:1" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Hotel    *Hotel         `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	Services []RoomService  `gorm:"foreignKey:RoomID" json:"services,omitempty"`
	Images   []UrlImageRoom `gorm:"foreignKey:RoomID" json:"images,omitempty"`
}

// TableName 表名
func (Room) TableName() string {
	return "rooms"
}

// RoomStatus 房型状态
const (
	RoomStatusDisabled = 0 // 禁用
	RoomStatusActive   = 1 // 正常
)

// BedType 床型
const (
	BedTypeSingle = "single" // 单人床
	BedTypeDouble = "double" // 双人床
	BedTypeQueen  = "queen"  // 大床
	BedTypeTwin   = "twin"   // 双床
)

// RoomService 房型附加服务（如早餐、延迟退房）
type RoomService struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID      int64     `gorm:"index;not null" json:"room_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Description *string   `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName 表名
func (RoomService) TableName() string {
	return "room_services"
}

// UrlImageRoom 房型图片记录
type UrlImageRoom struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID    int64     `gorm:"index;not null" json:"room_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	FileName  string    `gorm:"type:varchar(255);not null" json:"file_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName 表名
func (UrlImageRoom) TableName() string {
	return "url_image_rooms"
}

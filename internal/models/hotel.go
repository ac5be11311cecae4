// Package models 定义数据模型
package models

import (
	"time"
)

// Hotel 酒店模型
type Hotel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Stars        *int      `json:"stars,omitempty"`
	City         string    `gorm:"type:varchar(50);not null" json:"city"`
	Address      string    `gorm:"type:varchar(255);not null" json:"address"`
	Longitude    *float64  `gorm:"type:decimal(10,7)" json:"longitude,omitempty"`
	Latitude     *float64  `gorm:"type:decimal(10,7)" json:"latitude,omitempty"`
	ContactName  *string   `gorm:"type:varchar(50)" json:"contact_name,omitempty"`
	ContactPhone *string   `gorm:"type:varchar(20)" json:"contact_phone,omitempty"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	Status       int8      `gorm:"type:smallint;not null;default:1" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Rooms     []Room          `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
	Amenities []Amenity       `gorm:"foreignKey:HotelID" json:"amenities,omitempty"`
	Reviews   []Review        `gorm:"foreignKey:HotelID" json:"reviews,omitempty"`
	Images    []UrlImageHotel `gorm:"foreignKey:HotelID" json:"images,omitempty"`
}

// TableName 表名
func (Hotel) TableName() string {
	return "hotels"
}

// HotelStatus 酒店状态
const (
	HotelStatusDisabled = 0 // 禁用
	HotelStatusActive   = 1 // 正常
)

// Amenity 酒店设施模型
type Amenity struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID     int64     `gorm:"index;not null" json:"hotel_id"`
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
	Icon        *string   `gorm:"type:varchar(255)" json:"icon,omitempty"`
	Description *string   `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// TableName 表名
func (Amenity) TableName() string {
	return "amenities"
}

// UrlImageHotel 酒店图片记录
type UrlImageHotel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID   int64     `gorm:"index;not null" json:"hotel_id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	FileName  string    `gorm:"type:varchar(255);not null" json:"file_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// TableName 表名
func (UrlImageHotel) TableName() string {
	return "url_image_hotels"
}

// Package models 定义数据模型
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// User 用户模型
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(100);not null" json:"-"`
	Name         string     `gorm:"type:varchar(50);not null;default:''" json:"name"`
	Phone        *string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Avatar       *string    `gorm:"type:varchar(255)" json:"avatar,omitempty"`
	Birthday     *time.Time `gorm:"type:date" json:"birthday,omitempty"`
	Role         string     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status       int8       `gorm:"type:smallint;not null;default:1" json:"status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Bookings []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}

// UserStatus 用户状态
const (
	UserStatusDisabled = 0 // 禁用
	UserStatusActive   = 1 // 正常
)

// UserRole 用户角色
const (
	UserRoleUser  = "user"  // 普通用户
	UserRoleAdmin = "admin" // 管理员
)

// JSON 自定义 JSON 类型
type JSON map[string]interface{}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		return nil
	}
}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Unmarshal 将 JSON 值反序列化到目标结构（便于业务层使用）
func (j JSON) Unmarshal(target interface{}) error {
	if j == nil {
		return nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, target)
}

package models

import "time"

// OperationLog 管理端操作审计日志
type OperationLog struct {
	ID         int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminID    int64   `gorm:"not null;index" json:"admin_id"`
	Module     string  `gorm:"size:50;not null;index" json:"module"`
	Action     string  `gorm:"size:50;not null" json:"action"`
	TargetType *string `gorm:"size:50" json:"target_type,omitempty"`
	TargetID   *int64  `json:"target_id,omitempty"`
	Detail     JSON    `gorm:"type:jsonb" json:"detail,omitempty"`
	IP         string  `gorm:"size:45" json:"ip"`
	UserAgent  *string `gorm:"size:500" json:"user_agent,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (OperationLog) TableName() string {
	return "operation_logs"
}

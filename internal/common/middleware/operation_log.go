// Package middleware 提供 HTTP 中间件
package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dumeirei/hotel-booking-backend/internal/models"
	"github.com/dumeirei/hotel-booking-backend/internal/repository"
)

// OperationLogger 操作日志中间件
type OperationLogger struct {
	repo *repository.OperationLogRepository
}

// NewOperationLogger 创建操作日志中间件
func NewOperationLogger(repo *repository.OperationLogRepository) *OperationLogger {
	return &OperationLogger{repo: repo}
}

// OperationConfig 操作配置
type OperationConfig struct {
	Module      string
	Action      string
	TargetType  string
	GetTargetID func(*gin.Context) *int64
}

// moduleActionMap 管理端写操作路由与审计项的映射
// 键为 Method + 空格 + gin FullPath（管理端路由挂载在 /api/admin 下）
var moduleActionMap = map[string]OperationConfig{
	"POST /api/admin/hotels": {
		Module:     "hotel",
		Action:     "create",
		TargetType: "hotel",
	},
	"PUT /api/admin/hotels/:id": {
		Module:     "hotel",
		Action:     "update",
		TargetType: "hotel",
	},
	"PUT /api/admin/hotels/:id/status": {
		Module:     "hotel",
		Action:     "update",
		TargetType: "hotel",
	},
	"DELETE /api/admin/hotels/:id": {
		Module:     "hotel",
		Action:     "delete",
		TargetType: "hotel",
	},
	"POST /api/admin/rooms": {
		Module:     "room",
		Action:     "create",
		TargetType: "room",
	},
	"PUT /api/admin/rooms/:id": {
		Module:     "room",
		Action:     "update",
		TargetType: "room",
	},
	"DELETE /api/admin/rooms/:id": {
		Module:     "room",
		Action:     "delete",
		TargetType: "room",
	},
	"POST /api/admin/coupons": {
		Module:     "coupon",
		Action:     "create",
		TargetType: "coupon",
	},
	"PUT /api/admin/coupons/:id": {
		Module:     "coupon",
		Action:     "update",
		TargetType: "coupon",
	},
	"DELETE /api/admin/coupons/:id": {
		Module:     "coupon",
		Action:     "delete",
		TargetType: "coupon",
	},
	"POST /api/admin/hotels/:id/amenities": {
		Module:     "amenity",
		Action:     "create",
		TargetType: "amenity",
	},
	"DELETE /api/admin/amenities/:id": {
		Module:     "amenity",
		Action:     "delete",
		TargetType: "amenity",
	},
}

// Log 操作日志中间件处理函数
func (l *OperationLogger) Log() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 只记录写操作
		if !l.shouldLog(c) {
			c.Next()
			return
		}

		// 读取请求体
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		// 执行处理
		c.Next()

		// 记录日志（异步）
		go l.logOperation(c, requestBody)
	}
}

// shouldLog 判断是否需要记录日志
func (l *OperationLogger) shouldLog(c *gin.Context) bool {
	method := c.Request.Method
	// 只记录写操作
	return method == "POST" || method == "PUT" || method == "DELETE" || method == "PATCH"
}

// logOperation 记录操作日志
func (l *OperationLogger) logOperation(c *gin.Context, requestBody []byte) {
	if l.repo == nil {
		return
	}

	// 获取路由配置
	routeKey := c.Request.Method + " " + c.FullPath()
	config, ok := moduleActionMap[routeKey]
	if !ok {
		// 未在映射表中的写操作按路径和方法推断
		config = l.getDefaultConfig(c)
	}

	// 获取管理员 ID
	adminID, ok := l.getAdminID(c)
	if !ok {
		return
	}

	// 构建日志记录
	log := &models.OperationLog{
		AdminID: adminID,
		Module:  config.Module,
		Action:  config.Action,
		IP:      c.ClientIP(),
	}

	// 设置 User-Agent
	userAgent := c.Request.UserAgent()
	if userAgent != "" {
		log.UserAgent = &userAgent
	}

	// 设置目标类型和 ID
	if config.TargetType != "" {
		log.TargetType = &config.TargetType
		if targetID := l.getTargetID(c); targetID != nil {
			log.TargetID = targetID
		}
	}

	// 设置请求数据
	if len(requestBody) > 0 {
		var data interface{}
		if err := json.Unmarshal(requestBody, &data); err == nil {
			// 过滤敏感字段
			filteredData := l.filterSensitiveData(data)
			if mapData, ok := filteredData.(map[string]interface{}); ok {
				log.Detail = mapData
			}
		}
	}

	// 保存日志
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = l.repo.Create(ctx, log)
}

func (l *OperationLogger) getAdminID(c *gin.Context) (int64, bool) {
	// AdminAuth 设置 user_id / user_type
	userType, _ := c.Get("user_type")
	if userTypeStr, ok := userType.(string); ok && userTypeStr == "admin" {
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(int64); ok {
				return id, true
			}
		}
	}

	return 0, false
}

// getDefaultConfig 获取默认配置
func (l *OperationLogger) getDefaultConfig(c *gin.Context) OperationConfig {
	path := c.FullPath()
	method := c.Request.Method

	// 从路径推断模块
	module := "unknown"
	if strings.Contains(path, "/hotels") {
		module = "hotel"
	} else if strings.Contains(path, "/rooms") {
		module = "room"
	} else if strings.Contains(path, "/bookings") {
		module = "booking"
	} else if strings.Contains(path, "/coupons") {
		module = "coupon"
	} else if strings.Contains(path, "/amenities") {
		module = "amenity"
	} else if strings.Contains(path, "/reviews") {
		module = "review"
	} else if strings.Contains(path, "/users") {
		module = "user"
	}

	// 从方法推断操作
	action := "unknown"
	switch method {
	case "POST":
		action = "create"
	case "PUT", "PATCH":
		action = "update"
	case "DELETE":
		action = "delete"
	}

	return OperationConfig{
		Module: module,
		Action: action,
	}
}

// getTargetID 从路径参数获取目标 ID
func (l *OperationLogger) getTargetID(c *gin.Context) *int64 {
	idStr := c.Param("id")
	if idStr == "" {
		return nil
	}

	if id, err := json.Number(idStr).Int64(); err == nil {
		return &id
	}
	return nil
}

// filterSensitiveData 过滤敏感数据
func (l *OperationLogger) filterSensitiveData(data interface{}) interface{} {
	sensitiveFields := []string{
		"password", "old_password", "new_password", "confirm_password",
		"token", "access_token", "refresh_token",
		"secret", "api_key", "api_secret",
	}

	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{})
		for key, value := range v {
			lowerKey := strings.ToLower(key)
			isSensitive := false
			for _, sf := range sensitiveFields {
				if strings.Contains(lowerKey, sf) {
					isSensitive = true
					break
				}
			}
			if isSensitive {
				result[key] = "***"
			} else {
				result[key] = l.filterSensitiveData(value)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = l.filterSensitiveData(item)
		}
		return result
	default:
		return data
	}
}

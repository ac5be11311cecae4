package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dumeirei/hotel-booking-backend/internal/common/jwt"
)

func newAuthRouter(t *testing.T, handler gin.HandlerFunc) (*gin.Engine, *jwt.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	manager := jwt.NewManager(&jwt.Config{
		Secret:            "test-secret",
		AccessExpireTime:  time.Hour,
		RefreshExpireTime: time.Hour,
		Issuer:            "hotel-booking",
	})
	r := gin.New()
	r.GET("/me", UserAuth(manager), handler)
	r.GET("/admin", AdminAuth(manager), handler)
	return r, manager
}

func TestUserAuth(t *testing.T) {
	r, manager := newAuthRouter(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
			"email":   GetUserEmail(c),
		})
	})

	t.Run("缺少令牌返回401", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("有效令牌放行并注入上下文", func(t *testing.T) {
		token, _, err := manager.GenerateAccessToken(9, "alice@example.com", jwt.UserTypeUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":9`)
		assert.Contains(t, w.Body.String(), "alice@example.com")
	})

	t.Run("无效令牌返回401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminAuth(t *testing.T) {
	r, manager := newAuthRouter(t, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin": IsAdmin(c)})
	})

	t.Run("普通用户访问管理接口返回403", func(t *testing.T) {
		token, _, err := manager.GenerateAccessToken(9, "alice@example.com", jwt.UserTypeUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("管理员放行", func(t *testing.T) {
		token, _, err := manager.GenerateAccessToken(1, "admin@example.com", jwt.UserTypeAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"admin":true`)
	})
}

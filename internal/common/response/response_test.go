// Package response 统一响应格式单元测试
package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	c, w := setupTestContext()

	Success(c, gin.H{"id": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "success", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestSuccessWithMessage(t *testing.T) {
	c, w := setupTestContext()

	SuccessWithMessage(c, "预订成功", nil)

	resp := decodeBody(t, w)
	assert.Equal(t, 0, resp.Code)
	assert.Equal(t, "预订成功", resp.Message)
}

func TestSuccessPage(t *testing.T) {
	c, w := setupTestContext()

	list := []string{"a", "b"}
	SuccessPage(c, list, 25, 2, 10)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int      `json:"code"`
		Data PageData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(25), resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Page)
	assert.Equal(t, 10, resp.Data.PageSize)
}

func TestError(t *testing.T) {
	c, w := setupTestContext()

	Error(c, 5004, "Not enough rooms available for the selected dates")

	// 业务错误统一走 HTTP 200 + 业务码
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, 5004, resp.Code)
	assert.Equal(t, "Not enough rooms available for the selected dates", resp.Message)
}

func TestHTTPStatusHelpers(t *testing.T) {
	cases := []struct {
		name       string
		fn         func(*gin.Context, string)
		message    string
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{"BadRequest", BadRequest, "参数错误", http.StatusBadRequest, 400, "参数错误"},
		{"Unauthorized默认消息", Unauthorized, "", http.StatusUnauthorized, 401, "unauthorized"},
		{"Forbidden", Forbidden, "无权访问", http.StatusForbidden, 403, "无权访问"},
		{"NotFound默认消息", NotFound, "", http.StatusNotFound, 404, "not found"},
		{"InternalError", InternalError, "boom", http.StatusInternalServerError, 500, "boom"},
		{"TooManyRequests默认消息", TooManyRequests, "", http.StatusTooManyRequests, 429, "too many requests"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := setupTestContext()
			tc.fn(c, tc.message)

			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decodeBody(t, w)
			assert.Equal(t, tc.wantCode, resp.Code)
			assert.Equal(t, tc.wantMsg, resp.Message)
		})
	}
}

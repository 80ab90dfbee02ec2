package public

import (
	"github.com/globalforge/marketplace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// getUserID 从上下文取登录用户 ID（未登录时回写 401 并返回 false）
func getUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "请先登录")
		return 0, false
	}
	uid, ok := value.(uint)
	if !ok || uid == 0 {
		response.Unauthorized(c, "请先登录")
		return 0, false
	}
	return uid, true
}

// getSessionID 从上下文取购物车会话 ID（由会话中间件写入）
func getSessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get("cart_session_id")
	if !exists {
		response.BadRequest(c, "购物车会话缺失")
		return "", false
	}
	sid, ok := value.(string)
	if !ok || sid == "" {
		response.BadRequest(c, "购物车会话缺失")
		return "", false
	}
	return sid, true
}

package middleware

import (
	"strings"

	"ihome/api/v1/response"
	"ihome/internal/auth"

	"github.com/gin-gonic/gin"
)

// CookieName 客户端会话令牌的 cookie 名称
const CookieName = "ihome_session"

// tokenFromRequest 优先读取 cookie,其次兼容 Authorization 头
func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// AuthMiddleware 验证会话有效后,将用户身份写入请求上下文
func AuthMiddleware(session *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortSession(c, "用户未登录")
			return
		}
		sess, err := session.Get(c.Request.Context(), token)
		if err != nil {
			response.AbortSession(c, "会话无效或已过期")
			return
		}
		// 将用户信息写入上下文
		c.Set("user_id", sess.UserID)
		c.Set("name", sess.Name)
		c.Set("mobile", sess.Mobile)
		c.Set("session_token", token)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"acquire/utils"
)

// AuthMiddleware 校验会话令牌，并把 playerID 放进请求上下文
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未授权"})
			c.Abort()
			return
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := utils.ParseSessionToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "会话令牌无效"})
			c.Abort()
			return
		}
		c.Set("playerID", claims.PlayerID)
		c.Next()
	}
}

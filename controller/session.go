package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"acquire/utils"
)

// CreateSession 发一个匿名会话：随机玩家 ID + 签名 token，前端存本地复用
func CreateSession(c *gin.Context) {
	playerID := "player_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	token, err := utils.GenerateSessionToken(playerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成会话失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data": gin.H{
			"playerId": playerID,
			"token":    token,
		},
	})
}

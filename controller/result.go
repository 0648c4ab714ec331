package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"acquire/repository"
)

// GetRecentResults 查最近若干局的战绩，默认 20 局
func GetRecentResults(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	results, err := repository.RecentResults(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取战绩失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"data":        results,
	})
}

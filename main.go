package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"acquire/logger"
	"acquire/repository"
	"acquire/router"
	"acquire/ws"
)

func main() {
	logger.Init()
	repository.InitRedis()
	repository.InitMySQL()

	r := gin.Default()

	// 设置 CORS 中间件，允许所有域名、所有方法、所有 header
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	hub := ws.NewHub()
	router.InitRouter(r, hub)

	go hub.ScheduleRoomEviction(time.Hour)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	if err := r.Run(addr); err != nil {
		logger.L().Fatalf("服务启动失败: %v", err)
	}
}

package router

import (
	"github.com/gin-gonic/gin"

	"acquire/controller"
	"acquire/middleware"
	"acquire/service"
	"acquire/ws"
)

func InitRouter(r *gin.Engine, hub *ws.Hub) {
	roomController := controller.NewRoomController(service.NewRoomService(hub))

	api := r.Group("/room")
	{
		api.POST("/create", middleware.AuthMiddleware(), roomController.CreateRoom)
		api.POST("/delete", middleware.AuthMiddleware(), roomController.DeleteRoom)
		api.GET("/list", roomController.GetRoomList)
		api.GET("/:roomID", roomController.GetRoomInfo)
	}

	r.POST("/session", controller.CreateSession)
	r.GET("/results", controller.GetRecentResults)

	// WebSocket 路由
	r.GET("/ws", hub.HandleWebSocket)
}

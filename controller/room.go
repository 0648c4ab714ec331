package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"acquire/dto"
	"acquire/repository"
	"acquire/service"
	"acquire/ws"
)

type RoomController struct {
	rooms *service.RoomService
}

func NewRoomController(rooms *service.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}

	roomID, err := rc.rooms.CreateRoom(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间创建成功",
		"data": dto.CreateRoomResponse{
			RoomID: roomID,
		},
	})
}

func (rc *RoomController) DeleteRoom(c *gin.Context) {
	var req dto.DeleteRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	if err := rc.rooms.DeleteRoom(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "房间删除成功",
	})
}

func (rc *RoomController) GetRoomList(c *gin.Context) {
	rooms, err := rc.rooms.GetRoomList()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "获取房间列表失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "获取成功",
		"status_code": http.StatusOK,
		"data": dto.GetRoomList{
			Rooms: rooms,
		},
	})
}

func (rc *RoomController) GetRoomInfo(c *gin.Context) {
	roomID := c.Param("roomID")
	roomInfo, err := ws.GetRoomInfo(repository.Rdb, roomID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "房间不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roomID":     roomID,
		"started":    roomInfo.RoomStatus,
		"gameStatus": roomInfo.GameStatus,
		"maxPlayers": roomInfo.MaxPlayers,
	})
}

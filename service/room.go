package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"acquire/dto"
	"acquire/entities"
	"acquire/repository"
	"acquire/ws"
)

// RoomService 房间的增删查都经由 Hub，避免直接摸包级全局状态
type RoomService struct {
	hub *ws.Hub
}

func NewRoomService(hub *ws.Hub) *RoomService {
	return &RoomService{hub: hub}
}

// CreateRoom 生成 8 位房间号并初始化 Redis 房间信息，等玩家入座
func (s *RoomService) CreateRoom(params dto.CreateRoomRequest) (string, error) {
	uuidStr := uuid.New().String()
	roomID := strings.ReplaceAll(uuidStr, "-", "")[:8]

	err := ws.SetRoomInfo(repository.Rdb, repository.Ctx, roomID, entities.RoomInfo{
		MaxPlayers: params.MaxPlayers,
		GameStatus: dto.RoomStatusWaiting,
		RoomStatus: false,
		UserID:     params.UserID,
	})
	if err != nil {
		return "", fmt.Errorf("初始化房间信息失败: %w", err)
	}
	s.hub.RegisterRoom(roomID)
	return roomID, nil
}

// DeleteRoom 解散房间：断开连接、销毁对局、清掉 Redis 键
func (s *RoomService) DeleteRoom(params dto.DeleteRoomRequest) error {
	if err := ws.DeleteRoomKeys(repository.Rdb, repository.Ctx, params.RoomID); err != nil {
		return fmt.Errorf("删除房间相关 key 失败: %w", err)
	}
	s.hub.DropRoom(params.RoomID)
	return nil
}

func (s *RoomService) GetRoomList() ([]dto.RoomInfo, error) {
	var rooms []dto.RoomInfo
	for _, roomID := range s.hub.RoomIDs() {
		roomInfo, err := ws.GetRoomInfo(repository.Rdb, roomID)
		if err != nil {
			continue
		}

		seats := s.hub.RoomPlayers(roomID)
		roomPlayers := make([]dto.RoomPlayer, 0, len(seats))
		for _, player := range seats {
			roomPlayers = append(roomPlayers, dto.RoomPlayer{
				PlayerID: player.PlayerID,
				Online:   player.Online,
			})
		}

		rooms = append(rooms, dto.RoomInfo{
			RoomID:     roomID,
			UserID:     roomInfo.UserID,
			MaxPlayers: roomInfo.MaxPlayers,
			Status:     roomInfo.RoomStatus,
			RoomPlayer: roomPlayers,
		})
	}
	return rooms, nil
}

func (s *RoomService) GetOnlinePlayer() (int, error) {
	onlinePlayer := 0
	for _, roomID := range s.hub.RoomIDs() {
		for _, player := range s.hub.RoomPlayers(roomID) {
			if player.Online && !player.IsBot {
				onlinePlayer++
			}
		}
	}
	return onlinePlayer, nil
}

package entities

import "acquire/dto"

// RoomInfo 房间元信息，存在 Redis 的 room:{id}:roomInfo 哈希里。
// RoomStatus 为 true 表示人齐开局，GameStatus 是当前回合阶段。
type RoomInfo struct {
	RoomStatus bool           `json:"roomStatus"`
	GameStatus dto.RoomStatus `json:"gameStatus"`
	MaxPlayers int            `json:"maxPlayers"`
	UserID     string         `json:"userID"`
}

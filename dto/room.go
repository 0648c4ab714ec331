package dto

type RoomPlayer struct {
	PlayerID string `json:"playerId"`
	Online   bool   `json:"online"`
}

type RoomInfo struct {
	RoomID     string       `json:"roomID"`
	UserID     string       `json:"userID"`
	MaxPlayers int          `json:"maxPlayers"`
	Status     bool         `json:"status"`
	RoomPlayer []RoomPlayer `json:"players"`
}

type CreateRoomRequest struct {
	MaxPlayers int    `json:"maxPlayers" binding:"required"`
	UserID     string `json:"userID"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id" binding:"required"`
}

type DeleteRoomRequest struct {
	RoomID string `json:"roomID" binding:"required"`
}

type GetRoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}

// MatchResult 一局结束后写入数据库的战绩
type MatchResult struct {
	RoomID   string         `json:"roomID"`
	WinnerID string         `json:"winnerId"`
	Cash     map[string]int `json:"cash"`
}

package ws

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"acquire/game"
	"acquire/logger"
	"acquire/repository"
)

// roomSeat 推给前端的座位信息
type roomSeat struct {
	PlayerID string `json:"playerId"`
	Online   bool   `json:"online"`
	IsBot    bool   `json:"isBot"`
}

// broadcastToRoom 全量同步：每个玩家收到一份只含自己手牌的视图。
// 广播完成后顺手触发机器人走棋检查。
func (h *Hub) broadcastToRoom(roomID string) {
	players := h.RoomPlayers(roomID)
	if len(players) == 0 {
		return
	}

	roomInfo, err := GetRoomInfo(repository.Rdb, roomID)
	if err != nil {
		logger.L().Warnf("❌ 获取房间信息失败: %v", err)
		return
	}

	seats := make([]roomSeat, 0, len(players))
	for _, pc := range players {
		seats = append(seats, roomSeat{PlayerID: pc.PlayerID, Online: pc.Online, IsBot: pc.IsBot})
	}

	g, running := h.manager.Get(roomID)

	for _, pc := range players {
		if pc.Conn == nil || !pc.Online {
			continue
		}

		msg := map[string]interface{}{
			"type":       "sync",
			"roomStatus": roomInfo.RoomStatus,
			"gameStatus": roomInfo.GameStatus,
			"maxPlayers": roomInfo.MaxPlayers,
			"players":    seats,
		}
		if running {
			msg["roomData"] = g.GetGameStats(pc.PlayerID)
			msg["playerData"] = g.PlayerSnapshot(pc.PlayerID)
			if merger, ok := g.(*game.Merger); ok {
				msg["mergeDetails"] = merger.Details()
				msg["pendingPlayers"] = merger.PendingPlayers()
			}
		}

		data, err := json.Marshal(msg)
		if err != nil {
			logger.L().Errorf("❌ 同步消息序列化失败: %v", err)
			return
		}
		if err := pc.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logger.L().Warnf("⚠️ 推送给玩家 %s 失败: %v", pc.PlayerID, err)
			h.markOffline(roomID, pc.PlayerID)
		}
	}

	h.scheduleBot(roomID)
}

// broadcastMessage 同一份消息发给房间里所有在线玩家
func (h *Hub) broadcastMessage(roomID string, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.L().Errorf("❌ 消息序列化失败: %v", err)
		return
	}
	for _, pc := range h.RoomPlayers(roomID) {
		if pc.Conn == nil || !pc.Online {
			continue
		}
		if err := pc.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.markOffline(roomID, pc.PlayerID)
		}
	}
}

func (h *Hub) markOffline(roomID, playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, pc := range h.rooms[roomID] {
		if pc.PlayerID == playerID {
			h.rooms[roomID][i].Online = false
			return
		}
	}
}

func (h *Hub) handlePlayAudioMessage(roomID, playerID string, msgMap map[string]interface{}) {
	h.broadcastMessage(roomID, map[string]interface{}{
		"type":     "play_audio",
		"playerId": playerID,
		"payload":  msgMap["payload"],
	})
}

package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"acquire/game"
	"acquire/logger"
	"acquire/repository"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub 持有两样东西：每个房间的连接列表和对局注册表。
// 对局注册表透过 Update 在标准模式和并购模式之间切换条目。
// 对局内部没有锁，所以同一房间的消息处理（含机器人行动和同步广播）
// 都要持有该房间的互斥锁，逐条串行执行。
type Hub struct {
	mu      sync.Mutex
	rooms   map[string][]PlayerConn
	manager *game.Manager

	lockMu   sync.Mutex
	roomLock map[string]*sync.Mutex

	botMu   sync.Mutex
	botBusy map[string]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms:    make(map[string][]PlayerConn),
		manager:  game.NewManager(),
		roomLock: make(map[string]*sync.Mutex),
		botBusy:  make(map[string]bool),
	}
}

// roomLocker 同一房间始终拿到同一把锁
func (h *Hub) roomLocker(roomID string) *sync.Mutex {
	h.lockMu.Lock()
	defer h.lockMu.Unlock()
	lock, ok := h.roomLock[roomID]
	if !ok {
		lock = &sync.Mutex{}
		h.roomLock[roomID] = lock
	}
	return lock
}

// Manager 暴露给清扫和测试用
func (h *Hub) Manager() *game.Manager {
	return h.manager
}

// RegisterRoom 建房时先占个空座位表，房间列表里能查到
func (h *Hub) RegisterRoom(roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = []PlayerConn{}
	}
}

// RoomPlayers 房间内座位快照（含机器人和掉线玩家）
func (h *Hub) RoomPlayers(roomID string) []PlayerConn {
	h.mu.Lock()
	defer h.mu.Unlock()
	players := make([]PlayerConn, len(h.rooms[roomID]))
	copy(players, h.rooms[roomID])
	return players
}

func (h *Hub) RoomIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]string, 0, len(h.rooms))
	for id := range h.rooms {
		ids = append(ids, id)
	}
	return ids
}

// DropRoom 房间解散：断掉所有连接、移除对局
func (h *Hub) DropRoom(roomID string) {
	h.mu.Lock()
	for _, pc := range h.rooms[roomID] {
		if pc.Conn != nil {
			pc.Conn.Close()
		}
	}
	delete(h.rooms, roomID)
	h.mu.Unlock()
	h.manager.Remove(roomID)

	h.lockMu.Lock()
	delete(h.roomLock, roomID)
	h.lockMu.Unlock()
}

func (h *Hub) roomPlayerCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}

// validateAndJoinRoom 校验空位并入座，掉线玩家用新连接顶回原座位
func (h *Hub) validateAndJoinRoom(roomID, playerID string, conn WriteOnlyConn, isBot bool) (bool, int) {
	roomInfo, err := GetRoomInfo(repository.Rdb, roomID)
	if err != nil {
		logger.L().Warnf("❌ 无法获取房间信息: %v", err)
		return false, 0
	}
	maxPlayers := roomInfo.MaxPlayers

	h.mu.Lock()
	defer h.mu.Unlock()

	for i, pc := range h.rooms[roomID] {
		if pc.PlayerID == playerID {
			h.rooms[roomID][i].Conn = conn
			h.rooms[roomID][i].Online = true
			logger.L().Infof("玩家 %s 重连成功", playerID)
			return true, maxPlayers
		}
	}

	if len(h.rooms[roomID]) >= maxPlayers {
		return false, maxPlayers
	}

	h.rooms[roomID] = append(h.rooms[roomID], PlayerConn{
		PlayerID: playerID,
		Conn:     conn,
		Online:   true,
		IsBot:    isBot,
	})
	logger.L().Infof("玩家 %s 加入房间 %s", playerID, roomID)
	return true, maxPlayers
}

// cleanupOnDisconnect 真人掉线只标记离线，座位保留等重连
func (h *Hub) cleanupOnDisconnect(roomID, playerID string, conn WriteOnlyConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, pc := range h.rooms[roomID] {
		if pc.PlayerID == playerID && pc.Conn == conn {
			h.rooms[roomID][i].Online = false
			break
		}
	}
	logger.L().Infof("玩家 %s 离开房间 %s", playerID, roomID)
}

type messageHandler func(roomID, playerID string, msgMap map[string]interface{})

func (h *Hub) handlers() map[string]messageHandler {
	return map[string]messageHandler{
		"place_tile":        h.handlePlaceTileMessage,
		"create_company":    h.handleCreateCompanyMessage,
		"buy_stock":         h.handleBuyStockMessage,
		"end_turn":          h.handleEndTurnMessage,
		"merging_selection": h.handleMergingSelectionMessage,
		"merging_settle":    h.handleMergingSettleMessage,
		"game_end":          h.handleGameEndMessage,
		"add_bot":           h.handleAddBotMessage,
		"play_audio":        h.handlePlayAudioMessage,
	}
}

// listenMessages 逐条处理该连接的消息，处理完同步一次全房间。
// 每条消息都在房间锁内执行，多个连接不会并发改同一局。
func (h *Hub) listenMessages(conn *websocket.Conn, roomID, playerID string) {
	handlers := h.handlers()
	lock := h.roomLocker(roomID)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			logger.L().Infof("读取消息失败: %v", err)
			break
		}
		msgMap := make(map[string]interface{})
		if err := json.Unmarshal(msg, &msgMap); err != nil {
			logger.L().Warnf("消息解析失败: %v", err)
			continue
		}
		msgType, ok := msgMap["type"].(string)
		if !ok {
			continue
		}
		handler, found := handlers[msgType]
		if !found {
			logger.L().Warnf("⚠️ 未知的消息类型: %s", msgType)
			continue
		}
		lock.Lock()
		handler(roomID, playerID, msgMap)
		h.broadcastToRoom(roomID)
		lock.Unlock()
	}
}

// HandleWebSocket 每个连接的主入口
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warnf("WebSocket 升级失败: %v", err)
		return
	}
	defer conn.Close()

	roomID := c.Query("roomID")
	if roomID == "" {
		logger.L().Warn("缺少 roomID")
		return
	}
	playerID := c.Query("userId")
	if playerID == "" {
		logger.L().Warn("缺少 userId")
		return
	}

	ok, maxPlayers := h.validateAndJoinRoom(roomID, playerID, conn, false)
	if !ok {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","message":"房间已满"}`))
		return
	}
	defer h.cleanupOnDisconnect(roomID, playerID, conn)

	playerCount := h.roomPlayerCount(roomID)
	logger.L().Infof("玩家加入 room=%s，ID=%s，当前人数=%d/%d", roomID, playerID, playerCount, maxPlayers)

	lock := h.roomLocker(roomID)
	lock.Lock()
	if playerCount == maxPlayers {
		if err := h.startGame(roomID); err != nil {
			logger.L().Errorf("❌ 开局失败: %v", err)
		}
	}
	h.broadcastToRoom(roomID)
	lock.Unlock()

	h.listenMessages(conn, roomID, playerID)
}

package ws

import (
	"time"

	"acquire/dto"
	"acquire/logger"
	"acquire/repository"
)

// ScheduleRoomEviction 定期清理已收局的房间：对局条目、座位、Redis 键一并回收
func (h *Hub) ScheduleRoomEviction(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		h.evictFinishedRooms()
	}
}

func (h *Hub) evictFinishedRooms() {
	for _, roomID := range h.RoomIDs() {
		roomInfo, err := GetRoomInfo(repository.Rdb, roomID)
		if err != nil {
			continue
		}
		if roomInfo.GameStatus != dto.RoomStatusGameOver {
			continue
		}
		logger.L().Infof("⏰ 清理已结束的房间 %s", roomID)

		lock := h.roomLocker(roomID)
		lock.Lock()
		h.DropRoom(roomID)
		lock.Unlock()

		if err := DeleteRoomKeys(repository.Rdb, repository.Ctx, roomID); err != nil {
			logger.L().Warnf("⚠️ 清理房间 %s 的 Redis 键失败: %v", roomID, err)
		}
	}
}

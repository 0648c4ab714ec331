package ws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"acquire/dto"
	"acquire/entities"
	"acquire/repository"
)

// 房间元信息和回合阶段放在 Redis 里，对局本体放在内存注册表里

func SetRoomInfo(rdb *redis.Client, ctx context.Context, roomID string, info entities.RoomInfo) error {
	roomKey := fmt.Sprintf("room:%s:roomInfo", roomID)
	err := rdb.HSet(ctx, roomKey, map[string]interface{}{
		"roomStatus": strconv.FormatBool(info.RoomStatus),
		"gameStatus": string(info.GameStatus),
		"maxPlayers": info.MaxPlayers,
		"userID":     info.UserID,
	}).Err()
	if err != nil {
		return fmt.Errorf("写入房间信息失败: %w", err)
	}
	return nil
}

func GetRoomInfo(rdb *redis.Client, roomID string) (entities.RoomInfo, error) {
	roomKey := fmt.Sprintf("room:%s:roomInfo", roomID)
	data, err := rdb.HGetAll(repository.Ctx, roomKey).Result()
	if err != nil {
		return entities.RoomInfo{}, fmt.Errorf("获取房间信息失败: %w", err)
	}
	if len(data) == 0 {
		return entities.RoomInfo{}, fmt.Errorf("房间[%s]不存在", roomID)
	}

	roomStatus, _ := strconv.ParseBool(data["roomStatus"])
	maxPlayers, _ := strconv.Atoi(data["maxPlayers"])
	return entities.RoomInfo{
		RoomStatus: roomStatus,
		GameStatus: dto.RoomStatus(data["gameStatus"]),
		MaxPlayers: maxPlayers,
		UserID:     data["userID"],
	}, nil
}

// SetGameStatus 推进回合阶段（setTile / createCompany / buyStock / merging...）
func SetGameStatus(rdb *redis.Client, roomID string, status dto.RoomStatus) error {
	roomKey := fmt.Sprintf("room:%s:roomInfo", roomID)
	if err := rdb.HSet(repository.Ctx, roomKey, "gameStatus", string(status)).Err(); err != nil {
		return fmt.Errorf("更新房间状态失败（roomID: %s，gameStatus: %s）: %w", roomID, status, err)
	}
	return nil
}

func SetRoomStatus(rdb *redis.Client, roomID string, started bool) error {
	roomKey := fmt.Sprintf("room:%s:roomInfo", roomID)
	if err := rdb.HSet(repository.Ctx, roomKey, "roomStatus", strconv.FormatBool(started)).Err(); err != nil {
		return fmt.Errorf("更新房间状态失败: %w", err)
	}
	return nil
}

// SetLastTileKey 记住刚放下的 tile，创建酒店时要用
func SetLastTileKey(rdb *redis.Client, ctx context.Context, roomID, tileKey string) error {
	key := fmt.Sprintf("room:%s:last_tile_key_temp", roomID)
	if err := rdb.Set(ctx, key, tileKey, 0).Err(); err != nil {
		return fmt.Errorf("保存最近放置的 tile 失败: %w", err)
	}
	return nil
}

func GetLastTileKey(rdb *redis.Client, ctx context.Context, roomID string) (string, error) {
	key := fmt.Sprintf("room:%s:last_tile_key_temp", roomID)
	tileKey, err := rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("获取最近放置的 tile 失败: %w", err)
	}
	return tileKey, nil
}

// DeleteRoomKeys 扫掉一个房间在 Redis 里的全部 key
func DeleteRoomKeys(rdb *redis.Client, ctx context.Context, roomID string) error {
	prefix := fmt.Sprintf("room:%s:", roomID)
	var cursor uint64
	var keysToDelete []string

	for {
		keys, cur, err := rdb.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("扫描房间相关 key 失败: %w", err)
		}
		keysToDelete = append(keysToDelete, keys...)
		cursor = cur
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) > 0 {
		if _, err := rdb.Del(ctx, keysToDelete...).Result(); err != nil {
			return fmt.Errorf("删除房间相关 key 失败: %w", err)
		}
	}
	return nil
}

package game

import (
	"fmt"
	"sync"
)

// Manager 房间号 -> 对局 的注册表。并购开始/结束时通过 Update 在标准模式
// 和并购模式之间切换同一个条目。注册表本身只做串行化的增删查改，
// 对局内部没有锁，同一局的操作必须经由持有者逐条执行。
type Manager struct {
	mu    sync.RWMutex
	games map[string]Play
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]Play)}
}

// Create 为一批玩家开一局新游戏，房间号已存在时报错
func (m *Manager) Create(roomID string, playerIDs []string) (Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.games[roomID]; exists {
		return nil, fmt.Errorf("房间[%s]的对局已存在", roomID)
	}
	if len(playerIDs) == 0 {
		return nil, fmt.Errorf("房间[%s]没有玩家，无法开局", roomID)
	}
	g := NewStdGame(playerIDs)
	m.games[roomID] = g
	return g, nil
}

func (m *Manager) Get(roomID string) (Play, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[roomID]
	return g, ok
}

// Update 替换条目（标准模式 <-> 并购模式切换用）
func (m *Manager) Update(roomID string, g Play) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[roomID] = g
}

func (m *Manager) Remove(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, roomID)
}

// IDs 当前所有对局的房间号
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	return ids
}

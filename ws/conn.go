package ws

import "fmt"

// WriteOnlyConn 抽掉 *websocket.Conn，机器人用虚拟连接顶替真人连接
type WriteOnlyConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// PlayerConn 房间里的一个座位
type PlayerConn struct {
	PlayerID string
	Conn     WriteOnlyConn
	Online   bool
	IsBot    bool
}

// VirtualConn 机器人的假连接：收到同步消息时触发机器人决策，别的什么都不做
type VirtualConn struct {
	PlayerID string
	RoomID   string
	hub      *Hub
}

var _ WriteOnlyConn = (*VirtualConn)(nil) // 编译期断言实现

func (v *VirtualConn) WriteMessage(messageType int, data []byte) error {
	// 广播正持有房间锁，决策放到另一个 goroutine 里跑
	go v.hub.scheduleBot(v.RoomID)
	return nil
}

func (v *VirtualConn) Close() error {
	return nil
}

func (v *VirtualConn) ReadMessage() (int, []byte, error) {
	return 0, nil, fmt.Errorf("virtual connection cannot read")
}

package ws

import (
	"sync"
	"testing"
)

func TestRoomLockerIdentity(t *testing.T) {
	h := NewHub()
	if h.roomLocker("room1") != h.roomLocker("room1") {
		t.Fatal("同一房间应拿到同一把锁")
	}
	if h.roomLocker("room1") == h.roomLocker("room2") {
		t.Fatal("不同房间不应共用一把锁")
	}
}

// 对局内部没有锁，并发消息全靠房间锁串行
func TestRoomLockerSerializesWriters(t *testing.T) {
	h := NewHub()
	lock := h.roomLocker("room1")

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock.Lock()
			counter++
			lock.Unlock()
		}()
	}
	wg.Wait()
	if counter != 64 {
		t.Fatalf("串行计数应为 64，实际 %d", counter)
	}
}

func TestDropRoomClearsLockEntry(t *testing.T) {
	h := NewHub()
	h.RegisterRoom("room1")
	h.roomLocker("room1")
	h.DropRoom("room1")

	h.lockMu.Lock()
	_, ok := h.roomLock["room1"]
	h.lockMu.Unlock()
	if ok {
		t.Fatal("房间解散后锁条目应被回收")
	}
}

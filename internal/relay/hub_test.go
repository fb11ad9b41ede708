package relay

import (
	"fmt"
	"sync"
	"testing"

	"github.com/emoji-rain/emojirain/internal/wire"
)

// addStalledClient registers a client whose send buffer is nearly full and
// that nothing drains, so broadcasts hit the slow-client path immediately.
func addStalledClient(h *Hub, id string) *client {
	c := &client{id: id, send: make(chan []byte, 64)}
	for i := 0; i < cap(c.send)-2; i++ {
		c.send <- []byte("{}")
	}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	return c
}

// Concurrent broadcasts hitting slow clients must disconnect them without
// ever sending on a closed channel. Before the per-client close guard this
// panicked the whole process.
func TestConcurrentBroadcastsToSlowClients(t *testing.T) {
	h := NewHub()
	for i := 0; i < 16; i++ {
		addStalledClient(h, fmt.Sprintf("player-%d", i+1))
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 30; j++ {
				h.Broadcast(wire.EventUpdatePlayers, map[string]wire.PlayerState{})
			}
		}()
	}
	wg.Wait()

	if n := h.ClientCount(); n != 0 {
		t.Fatalf("%d stalled clients still registered, want 0", n)
	}
}

func TestUnregisterTwiceIsSafe(t *testing.T) {
	h := NewHub()
	c := addStalledClient(h, "player-1")

	h.Unregister(c)
	h.Unregister(c)

	if h.ClientCount() != 0 {
		t.Fatal("client still registered after Unregister")
	}
}

package relay

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/emoji-rain/emojirain/internal/wire"
	"github.com/gorilla/websocket"
)

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

func newClient(id string, conn *websocket.Conn) *client {
	c := &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, 64),
	}
	go c.writePump()
	return c
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// trySend queues msg without blocking; false means the buffer is full. The
// client mutex orders it against close: a broadcaster may still hold a
// snapshot taken before Unregister ran, and a send on the closed channel
// would panic the process.
func (c *client) trySend(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// Hub tracks connected relay clients and fans events out to all of them.
// Every event is fire-and-forget: no ordering guarantees across senders,
// no retries.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool
	nextID  int
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
	}
}

// Register adds a connection and assigns it a connection id.
func (h *Hub) Register(conn *websocket.Conn) *client {
	h.mu.Lock()
	h.nextID++
	c := newClient(fmt.Sprintf("player-%d", h.nextID), conn)
	h.clients[c] = true
	h.mu.Unlock()
	return c
}

// Unregister removes a connection and stops its write pump. It is the only
// path that closes the send channel and is safe to call more than once.
func (h *Hub) Unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event wire.EventType, data any) {
	msg, err := wire.Marshal(event, data)
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}
	h.send(msg)
}

// BroadcastRaw relays pre-encoded payload bytes without re-interpreting them.
func (h *Hub) BroadcastRaw(event wire.EventType, raw []byte) {
	msg, err := wire.Marshal(event, json.RawMessage(raw))
	if err != nil {
		log.Printf("broadcast marshal error: %v", err)
		return
	}
	h.send(msg)
}

func (h *Hub) send(msg []byte) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if !c.trySend(msg) {
			// Client can't keep up, disconnect it
			log.Printf("relay client %s too slow, disconnecting", c.id)
			h.Unregister(c)
		}
	}
}

// ClientCount returns the number of registered connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

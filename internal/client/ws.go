// Package client provides the websocket and HTTP clients the TUI uses to
// talk to the relay, plus the score reporter that drives end-of-session
// submission.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/emoji-rain/emojirain/internal/wire"
	"github.com/gorilla/websocket"
)

const (
	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
	writeTimeout       = 10 * time.Second
)

// WSClient manages the relay connection.
type WSClient struct {
	url string

	mu      sync.Mutex
	writeMu sync.Mutex // serialises all conn writes
	conn    *websocket.Conn
}

// NewWSClient creates a client that dials the given websocket URL.
func NewWSClient(url string) *WSClient {
	return &WSClient{url: url}
}

// --- Bubble Tea messages ---

// ConnectedMsg is sent when the relay connection is established.
type ConnectedMsg struct{}

// DisconnectedMsg is sent when the connection drops.
type DisconnectedMsg struct{ Err error }

// PlayersMsg delivers the full player mapping from an updatePlayers event.
type PlayersMsg struct{ Players map[string]wire.PlayerState }

// NodeMsg delivers a relayed node placement.
type NodeMsg struct{ Raw json.RawMessage }

// PuzzleMsg delivers another player's session completion.
type PuzzleMsg struct{ Update wire.PuzzleUpdate }

// Listen returns a command that connects to the relay, retrying with
// exponential backoff until the context is cancelled.
func (c *WSClient) Listen(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		delay := reconnectBaseDelay
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
			if err != nil {
				log.Printf("relay dial error: %v (retry in %v)", err, delay)
				time.Sleep(delay)
				delay = min(delay*2, reconnectMaxDelay)
				continue
			}

			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()

			return ConnectedMsg{}
		}
	}
}

// ReadLoop returns a command that reads relay events until one produces a
// message for the UI. Start it after receiving ConnectedMsg and re-arm it
// after every delivered message.
func (c *WSClient) ReadLoop(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return DisconnectedMsg{Err: fmt.Errorf("no connection")}
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				c.mu.Lock()
				if c.conn == conn {
					c.conn = nil
				}
				c.mu.Unlock()
				conn.Close()
				return DisconnectedMsg{Err: err}
			}

			var env wire.Envelope
			if err := json.Unmarshal(data, &env); err != nil {
				continue
			}

			if msg := dispatch(env); msg != nil {
				return msg
			}
		}
	}
}

// SendPosition reports this player's pose to the relay.
func (c *WSClient) SendPosition(state wire.PlayerState) error {
	return c.write(wire.EventUpdatePosition, state)
}

// SendPuzzleComplete announces a finished session to the other players.
func (c *WSClient) SendPuzzleComplete(score, perfects int) error {
	return c.write(wire.EventPuzzleComplete, map[string]int{
		"score":    score,
		"perfects": perfects,
	})
}

func (c *WSClient) write(event wire.EventType, data any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected")
	}

	msg, err := wire.Marshal(event, data)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, msg)
}

func dispatch(env wire.Envelope) tea.Msg {
	switch env.Event {
	case wire.EventUpdatePlayers:
		players := make(map[string]wire.PlayerState)
		if json.Unmarshal(env.Data, &players) == nil {
			return PlayersMsg{Players: players}
		}
	case wire.EventNewNode:
		return NodeMsg{Raw: env.Data}
	case wire.EventPuzzleUpdate:
		var upd wire.PuzzleUpdate
		if json.Unmarshal(env.Data, &upd) == nil {
			return PuzzleMsg{Update: upd}
		}
	}
	return nil
}

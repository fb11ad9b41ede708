// Package relay implements the multiplayer relay: a websocket hub that
// rebroadcasts player positions, node placements, and puzzle completions to
// every connected client, plus the HTTP surface around it. The relay keeps
// no authoritative game logic; shared state is eventually consistent and
// last-write-wins.
package relay

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/emoji-rain/emojirain/internal/prove"
	"github.com/emoji-rain/emojirain/internal/wire"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type Server struct {
	store     *PlayerStore
	hub       *Hub
	staticDir string
	upgrader  websocket.Upgrader
}

func NewServer(store *PlayerStore, hub *Hub, staticDir string) *Server {
	return &Server{
		store:     store,
		hub:       hub,
		staticDir: staticDir,
		upgrader: websocket.Upgrader{
			// The relay trusts any origin; there is no authority to protect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Routes registers all HTTP handlers on the router.
func (s *Server) Routes(r *mux.Router) {
	r.HandleFunc("/ws", s.handleWS)
	r.HandleFunc("/prove-score", prove.Handler()).Methods(http.MethodPost)
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	if s.staticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.staticDir)))
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	c := s.hub.Register(conn)
	s.store.Add(c.id)
	log.Printf("player connected: %s", c.id)

	go s.readLoop(c)
}

// readLoop processes one connection's events in arrival order. Transport
// errors end the loop; that is also the only disconnect detection, so a
// client that stops sending without closing leaves its state in place until
// the read fails.
func (s *Server) readLoop(c *client) {
	defer func() {
		s.hub.Unregister(c)
		s.store.Remove(c.id)
		s.hub.Broadcast(wire.EventUpdatePlayers, s.store.Snapshot())
		log.Printf("player disconnected: %s", c.id)
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var env wire.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Printf("malformed event from %s: %v", c.id, err)
			continue
		}
		s.dispatch(c, env)
	}
}

func (s *Server) dispatch(c *client, env wire.Envelope) {
	switch env.Event {
	case wire.EventUpdatePosition:
		var state wire.PlayerState
		if err := json.Unmarshal(env.Data, &state); err != nil {
			log.Printf("bad position from %s: %v", c.id, err)
			return
		}
		s.store.Set(c.id, state)
		s.hub.Broadcast(wire.EventUpdatePlayers, s.store.Snapshot())

	case wire.EventPlaceNode:
		// Fire-and-forget: nodes are relayed, never stored.
		s.hub.BroadcastRaw(wire.EventNewNode, env.Data)

	case wire.EventPuzzleComplete:
		merged, err := wire.WithPlayerID(env.Data, c.id)
		if err != nil {
			log.Printf("bad puzzle payload from %s: %v", c.id, err)
			return
		}
		s.hub.BroadcastRaw(wire.EventPuzzleUpdate, merged)

	default:
		log.Printf("unknown event %q from %s", env.Event, c.id)
	}
}

// ListenAndServe starts the relay's HTTP server.
func ListenAndServe(host string, port int, handler http.Handler) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("relay listening on %s", addr)
	return http.ListenAndServe(addr, handler)
}

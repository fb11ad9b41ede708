package relay

import (
	"sync"

	"github.com/emoji-rain/emojirain/internal/wire"
)

// PlayerStore is the process-wide mapping of connection id to last-known
// player state. Writes replace the entry wholesale; last write wins, no
// versioning. Nothing persists across restarts.
type PlayerStore struct {
	mu      sync.RWMutex
	players map[string]wire.PlayerState
}

func NewPlayerStore() *PlayerStore {
	return &PlayerStore{
		players: make(map[string]wire.PlayerState),
	}
}

// Add inserts the default pose for a newly connected player.
func (s *PlayerStore) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := wire.DefaultPose()
	state.ID = id
	s.players[id] = state
}

// Set replaces a player's state. The stored id always stays the connection's
// own; a client cannot claim another id, only any position.
func (s *PlayerStore) Set(id string, state wire.PlayerState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state.ID = id
	s.players[id] = state
}

// Get returns a player's state.
func (s *PlayerStore) Get(id string) (wire.PlayerState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.players[id]
	return st, ok
}

// Remove drops a player on disconnect.
func (s *PlayerStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
}

// Snapshot returns a copy of the full mapping, safe to marshal outside the
// lock.
func (s *PlayerStore) Snapshot() map[string]wire.PlayerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]wire.PlayerState, len(s.players))
	for id, st := range s.players {
		out[id] = st
	}
	return out
}

// Count returns the number of connected players.
func (s *PlayerStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}

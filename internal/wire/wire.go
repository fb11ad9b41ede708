// Package wire defines the relay's websocket protocol. Both the server and
// the TUI client speak these types, so neither side re-declares payloads.
package wire

import "encoding/json"

// EventType identifies the kind of relay event.
type EventType string

// Client-to-server events.
const (
	EventUpdatePosition EventType = "updatePosition"
	EventPlaceNode      EventType = "placeNode"
	EventPuzzleComplete EventType = "puzzleComplete"
)

// Server-to-client events.
const (
	EventUpdatePlayers EventType = "updatePlayers"
	EventNewNode       EventType = "newNode"
	EventPuzzleUpdate  EventType = "puzzleUpdate"
)

// Envelope wraps every relay message. Data stays raw until the event type
// selects a payload; unknown events are skipped, not rejected.
type Envelope struct {
	Event EventType       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// PlayerState is a player's last-known pose. Replaced wholesale on every
// updatePosition; last write wins.
type PlayerState struct {
	ID string  `json:"id,omitempty"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
}

// DefaultPose is the state assigned to a player on connect, before their
// first updatePosition.
func DefaultPose() PlayerState {
	return PlayerState{X: 0, Y: 1, Z: 0}
}

// PuzzleUpdate is the server's rebroadcast of a puzzleComplete event,
// augmented with the sender's connection id.
type PuzzleUpdate struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
	Perfects int    `json:"perfects"`
}

// Marshal encodes data into an envelope for the given event.
func Marshal(event EventType, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: payload})
}

// WithPlayerID injects the sender's connection id into a raw JSON object,
// preserving whatever other fields the client sent.
func WithPlayerID(raw json.RawMessage, id string) (json.RawMessage, error) {
	obj := make(map[string]any)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
	}
	obj["playerId"] = id
	return json.Marshal(obj)
}

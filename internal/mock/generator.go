// Package mock simulates connected players so the relay can be demoed (and
// the TUI's presence display exercised) without real clients.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/emoji-rain/emojirain/internal/relay"
	"github.com/emoji-rain/emojirain/internal/wire"
)

const (
	botCount     = 3
	moveInterval = 500 * time.Millisecond
	finishChance = 0.005 // per tick, per bot
)

// Generator drives a handful of fake players through the store and hub.
type Generator struct {
	store *relay.PlayerStore
	hub   *relay.Hub
	rng   *rand.Rand
}

func NewGenerator(store *relay.PlayerStore, hub *relay.Hub) *Generator {
	return &Generator{
		store: store,
		hub:   hub,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start registers the bots and begins moving them until the context ends.
func (g *Generator) Start(ctx context.Context) {
	ids := make([]string, botCount)
	for i := range ids {
		ids[i] = fmt.Sprintf("bot-%d", i+1)
		g.store.Add(ids[i])
	}

	go g.run(ctx, ids)
}

func (g *Generator) run(ctx context.Context, ids []string) {
	ticker := time.NewTicker(moveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			for _, id := range ids {
				g.store.Remove(id)
			}
			g.hub.Broadcast(wire.EventUpdatePlayers, g.store.Snapshot())
			return
		case <-ticker.C:
			g.step(ids)
		}
	}
}

func (g *Generator) step(ids []string) {
	for _, id := range ids {
		st, ok := g.store.Get(id)
		if !ok {
			continue
		}
		st.X += g.rng.Float64()*2 - 1
		st.Z += g.rng.Float64()*2 - 1
		g.store.Set(id, st)

		if g.rng.Float64() < finishChance {
			raw, err := g.finishUpdate(id)
			if err == nil {
				g.hub.BroadcastRaw(wire.EventPuzzleUpdate, raw)
			}
		}
	}
	g.hub.Broadcast(wire.EventUpdatePlayers, g.store.Snapshot())
}

// finishUpdate builds the puzzleUpdate payload for a bot that wrapped up a
// session, with a score in the range a real player would post.
func (g *Generator) finishUpdate(id string) ([]byte, error) {
	score := 10 + g.rng.Intn(40)
	payload, err := json.Marshal(map[string]int{
		"score":    score,
		"perfects": g.rng.Intn(score/5 + 1),
	})
	if err != nil {
		return nil, err
	}
	return wire.WithPlayerID(payload, id)
}

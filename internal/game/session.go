// Package game implements the headless session engine: item spawning with a
// weighted visual draw, fall advancement, reaction recording, and the
// countdown state machine. It holds no timers of its own; the caller drives
// it from whatever tick source it has and the engine stays fully testable.
package game

import (
	"sort"
	"time"
)

// Phase is the session lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Running
	Ended
)

// ReactionRecord captures one activation. Immutable once appended.
type ReactionRecord struct {
	Latency time.Duration
	Perfect bool
}

// Summary is the payload handed to the proving service at session end:
// reaction latencies in milliseconds plus the perfect count.
type Summary struct {
	ReactionTimes []int
	Perfects      int
}

// Session owns one timed round: countdown, live item set, score, and the
// recorded reactions. All mutation goes through its methods; the caller
// serialises access (single-threaded dispatch in the TUI loop).
type Session struct {
	phase     Phase
	startedAt time.Time
	remaining float64
	score     int
	perfects  int
	reactions []ReactionRecord
	items     map[int]*Item
	spawner   *Spawner
}

// New creates an idle session. The seed feeds the spawner's rng.
func New(seed int64) *Session {
	return &Session{
		spawner: NewSpawner(seed),
		items:   make(map[int]*Item),
	}
}

// Start resets the session to defaults and begins a new round. Restarting
// from Ended discards all prior state; nothing carries over.
func (s *Session) Start(now time.Time) {
	s.phase = Running
	s.startedAt = now
	s.remaining = SessionSeconds
	s.score = 0
	s.perfects = 0
	s.reactions = nil
	s.items = make(map[int]*Item)
}

func (s *Session) Phase() Phase         { return s.phase }
func (s *Session) Running() bool        { return s.phase == Running }
func (s *Session) StartedAt() time.Time { return s.startedAt }
func (s *Session) Remaining() float64   { return s.remaining }
func (s *Session) Score() int           { return s.score }
func (s *Session) Perfects() int        { return s.perfects }

// Reactions returns a copy of the recorded reactions in append order.
func (s *Session) Reactions() []ReactionRecord {
	out := make([]ReactionRecord, len(s.reactions))
	copy(out, s.reactions)
	return out
}

// CountdownTick decrements the clock by one step. Returns true exactly once,
// on the tick that crosses zero; that tick also moves the session to Ended.
// Ticks arriving after the end are no-ops.
func (s *Session) CountdownTick() (ended bool) {
	if s.phase != Running {
		return false
	}
	s.remaining -= CountdownStep
	if s.remaining <= 0 {
		s.remaining = 0
		s.phase = Ended
		return true
	}
	return false
}

// Spawn creates a new item and registers it into the live set. No-op (nil)
// when the session is not running.
func (s *Session) Spawn(now time.Time, width int) *Item {
	if s.phase != Running {
		return nil
	}
	item := s.spawner.Spawn(now.Sub(s.startedAt), width)
	s.items[item.ID] = item
	return item
}

// AdvanceFalls moves every live item down by its speed and removes items
// that exit the play area, returning their ids. No-op once the session has
// stopped, so a fall tick racing the end of the round does nothing.
func (s *Session) AdvanceFalls(height float64) (exited []int) {
	if s.phase != Running {
		return nil
	}
	for id, item := range s.items {
		item.Y += item.Speed
		if item.Y > height {
			delete(s.items, id)
			exited = append(exited, id)
		}
	}
	return exited
}

// Activate records a hit on the given item: latency from session start,
// perfect iff within PerfectWindow of the item's nominal arrival. The item
// leaves the live set here; a later fall tick finding it gone is fine, and
// activating an already-removed item is a silent no-op.
func (s *Session) Activate(id int, now time.Time) (ReactionRecord, bool) {
	if s.phase != Running {
		return ReactionRecord{}, false
	}
	item, ok := s.items[id]
	if !ok {
		return ReactionRecord{}, false
	}

	latency := now.Sub(s.startedAt)
	diff := latency - item.TargetOffset
	if diff < 0 {
		diff = -diff
	}

	rec := ReactionRecord{
		Latency: latency,
		Perfect: diff < PerfectWindow,
	}
	s.reactions = append(s.reactions, rec)
	s.score++
	if rec.Perfect {
		s.perfects++
	}
	delete(s.items, id)
	return rec, true
}

// Items returns a snapshot of the live set ordered by id.
func (s *Session) Items() []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ItemCount returns the number of live items.
func (s *Session) ItemCount() int { return len(s.items) }

// Clear drops all live items. Called after the end-of-round grace delay.
func (s *Session) Clear() {
	s.items = make(map[int]*Item)
}

// Summary derives the proving payload from the recorded reactions.
func (s *Session) Summary() Summary {
	times := make([]int, len(s.reactions))
	for i, r := range s.reactions {
		times[i] = int(r.Latency / time.Millisecond)
	}
	return Summary{ReactionTimes: times, Perfects: s.perfects}
}

// ResultMessage maps a final score to its end-of-round message band.
func ResultMessage(score int) string {
	switch {
	case score == 0:
		return "Try clicking the logos and emojis!"
	case score < 10:
		return "Keep practicing!"
	case score < 25:
		return "Nice! You're quick!"
	case score < 40:
		return "Great job! True fan!"
	default:
		return "Incredible! Emoji Master!"
	}
}

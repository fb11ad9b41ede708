package game

import (
	"math/rand"
	"time"
)

// logoChance is the probability that a spawn is the logo rather than an emoji.
const logoChance = 0.3

// Spawner mints falling items with strictly increasing ids and a two-stage
// weighted visual draw.
type Spawner struct {
	rng    *rand.Rand
	nextID int
}

// NewSpawner creates a spawner seeded deterministically; tests pass a fixed
// seed, the session passes the wall clock.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// Spawn creates the next item. elapsed is the time since session start and
// width the play area width in columns.
func (s *Spawner) Spawn(elapsed time.Duration, width int) *Item {
	kind, glyph := s.draw()

	if width < 2 {
		width = 2
	}

	item := &Item{
		ID:           s.nextID,
		Kind:         kind,
		Glyph:        glyph,
		Column:       s.rng.Intn(width - 1),
		Y:            0,
		Speed:        2 + s.rng.Float64()*2,
		SpawnOffset:  elapsed,
		TargetOffset: elapsed + FallDuration,
	}
	s.nextID++
	return item
}

// draw picks the item visual: logoChance for the logo, otherwise a
// cumulative-weight draw over the emoji palette. Falls back to the first
// symbol if floating-point residue leaves the loop without a pick.
func (s *Spawner) draw() (Kind, string) {
	if s.rng.Float64() < logoChance {
		return KindLogo, LogoGlyph
	}

	total := 0
	for _, w := range EmojiWeights {
		total += w
	}

	r := s.rng.Float64() * float64(total)
	for i, w := range EmojiWeights {
		r -= float64(w)
		if r <= 0 {
			return KindEmoji, Emojis[i]
		}
	}
	return KindEmoji, Emojis[0]
}

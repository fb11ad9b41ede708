package game

import (
	"math"
	"testing"
	"time"
)

func TestSpawnIDsStrictlyIncrease(t *testing.T) {
	sp := NewSpawner(7)

	prev := -1
	for i := 0; i < 50; i++ {
		item := sp.Spawn(time.Duration(i)*SpawnInterval, 40)
		if item.ID <= prev {
			t.Fatalf("id %d after %d", item.ID, prev)
		}
		prev = item.ID
	}
}

func TestSpawnTargetOffset(t *testing.T) {
	sp := NewSpawner(7)

	elapsed := 3 * time.Second
	item := sp.Spawn(elapsed, 40)
	if item.TargetOffset != elapsed+FallDuration {
		t.Errorf("target offset = %v, want %v", item.TargetOffset, elapsed+FallDuration)
	}
	if item.SpawnOffset != elapsed {
		t.Errorf("spawn offset = %v, want %v", item.SpawnOffset, elapsed)
	}
}

func TestSpawnSpeedRange(t *testing.T) {
	sp := NewSpawner(7)

	for i := 0; i < 1000; i++ {
		item := sp.Spawn(0, 40)
		if item.Speed < 2 || item.Speed >= 4 {
			t.Fatalf("speed %v outside [2,4)", item.Speed)
		}
		if item.Column < 0 || item.Column >= 39 {
			t.Fatalf("column %d outside play area", item.Column)
		}
	}
}

// TestWeightedDrawConvergence checks that observed emoji frequencies track
// the configured weights, and that the logo share tracks its 30% chance.
func TestWeightedDrawConvergence(t *testing.T) {
	sp := NewSpawner(42)

	const n = 200000
	logos := 0
	counts := make(map[string]int)
	for i := 0; i < n; i++ {
		kind, glyph := sp.draw()
		if kind == KindLogo {
			logos++
			continue
		}
		counts[glyph]++
	}

	logoShare := float64(logos) / n
	if math.Abs(logoShare-logoChance) > 0.01 {
		t.Errorf("logo share = %.3f, want ~%.2f", logoShare, logoChance)
	}

	total := 0
	for _, w := range EmojiWeights {
		total += w
	}
	emojiDraws := n - logos
	for i, glyph := range Emojis {
		want := float64(EmojiWeights[i]) / float64(total)
		got := float64(counts[glyph]) / float64(emojiDraws)
		if math.Abs(got-want) > 0.01 {
			t.Errorf("%s: frequency %.3f, want ~%.3f", glyph, got, want)
		}
	}
}

func TestKindNames(t *testing.T) {
	if KindLogo.String() != "logo" || KindEmoji.String() != "emoji" {
		t.Fatalf("unexpected kind names: %s, %s", KindLogo, KindEmoji)
	}
}

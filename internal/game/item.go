package game

import (
	"encoding/json"
	"time"
)

// Kind classifies a falling item.
type Kind int

const (
	KindLogo Kind = iota
	KindEmoji
)

var kindNames = map[Kind]string{
	KindLogo:  "logo",
	KindEmoji: "emoji",
}

var kindFromName = map[string]Kind{
	"logo":  KindLogo,
	"emoji": KindEmoji,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, ok := kindFromName[s]; ok {
		*k = v
	}
	return nil
}

// Timing constants for a session. FallDuration is the nominal time an item
// takes to reach the bottom and anchors the perfect window; the actual fall
// speed is randomized per item and deliberately decoupled from it.
const (
	SessionSeconds    = 30.0
	CountdownStep     = 0.1
	CountdownInterval = 100 * time.Millisecond
	SpawnInterval     = 400 * time.Millisecond
	FallInterval      = 20 * time.Millisecond
	FallDuration      = 2 * time.Second
	PerfectWindow     = 100 * time.Millisecond
	ClearGrace        = 800 * time.Millisecond
	PopDelay          = 80 * time.Millisecond
)

// LogoGlyph stands in for the logo mark in a cell grid.
const LogoGlyph = "◆"

// Emojis is the spawn palette; EmojiWeights gives the relative draw weight
// of the symbol at the same index. More common symbols carry higher weight.
var (
	Emojis       = []string{"🚀", "💫", "🌌", "⚡", "🔮", "🌠", "💎", "🔷", "✨", "🌟"}
	EmojiWeights = []int{3, 2, 2, 2, 2, 2, 1, 1, 1, 1}
)

// Item is one falling thing. Created once by the Spawner; Y is advanced by
// fall ticks until the item either exits the play area or is activated.
type Item struct {
	ID           int
	Kind         Kind
	Glyph        string
	Column       int
	Y            float64
	Speed        float64
	SpawnOffset  time.Duration
	TargetOffset time.Duration
}

// Package arena renders the play area: a character grid that falling items
// move through, with short-lived pop markers where items were hit.
package arena

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/emoji-rain/emojirain/internal/game"
	"github.com/emoji-rain/emojirain/internal/theme"
)

// cellWidth is how many terminal columns one item column occupies. Emoji
// glyphs are double-width, so the grid reserves two cells per column.
const cellWidth = 2

// Pop marks a recent hit; it lingers briefly where the item was.
type Pop struct {
	Column int
	Row    int
}

// Model holds the arena's render state.
type Model struct {
	Width  int // columns of the play area (item columns, not terminal cells)
	Height int // rows of the play area
}

// New creates an arena sized for the given terminal dimensions.
func New() Model {
	return Model{Width: 40, Height: 20}
}

// Resize fits the arena into the given terminal space.
func (m *Model) Resize(termWidth, termHeight int) {
	w := termWidth / cellWidth
	if w < 10 {
		w = 10
	}
	h := termHeight
	if h < 5 {
		h = 5
	}
	m.Width = w
	m.Height = h
}

// HitTest maps a terminal cell back to the item occupying it, if any. The
// x tolerance covers both cells of a double-width glyph.
func (m Model) HitTest(items []game.Item, x, y int) (int, bool) {
	for _, item := range items {
		if int(item.Y) == y && x >= item.Column*cellWidth && x < (item.Column+1)*cellWidth {
			return item.ID, true
		}
	}
	return 0, false
}

// Lowest returns the live item closest to the bottom, used for keyboard
// activation.
func Lowest(items []game.Item) (int, bool) {
	best := -1
	bestY := -1.0
	for _, item := range items {
		if item.Y > bestY {
			bestY = item.Y
			best = item.ID
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// View renders the grid with items and pops placed on it.
func (m Model) View(items []game.Item, pops []Pop) string {
	type cell struct {
		glyph string
		style lipgloss.Style
	}

	grid := make(map[[2]int]cell)
	for _, item := range items {
		row := int(item.Y)
		if row < 0 || row >= m.Height {
			continue
		}
		c := cell{glyph: item.Glyph}
		if item.Kind == game.KindLogo {
			c.style = theme.StyleLogo
		}
		grid[[2]int{item.Column, row}] = c
	}
	for _, p := range pops {
		if p.Row < 0 || p.Row >= m.Height {
			continue
		}
		grid[[2]int{p.Column, p.Row}] = cell{glyph: "✸", style: theme.StylePop}
	}

	var b strings.Builder
	for row := 0; row < m.Height; row++ {
		col := 0
		for col < m.Width {
			if c, ok := grid[[2]int{col, row}]; ok {
				g := c.glyph
				if lipgloss.Width(g) < cellWidth {
					g += strings.Repeat(" ", cellWidth-lipgloss.Width(g))
				}
				b.WriteString(c.style.Render(g))
			} else {
				b.WriteString(strings.Repeat(" ", cellWidth))
			}
			col++
		}
		if row < m.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

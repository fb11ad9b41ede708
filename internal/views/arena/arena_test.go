package arena

import (
	"testing"

	"github.com/emoji-rain/emojirain/internal/game"
)

func TestHitTest(t *testing.T) {
	m := Model{Width: 40, Height: 20}
	items := []game.Item{
		{ID: 1, Column: 3, Y: 5.7},
		{ID: 2, Column: 10, Y: 5.2},
	}

	tests := []struct {
		name   string
		x, y   int
		wantID int
		wantOK bool
	}{
		{"LeftCell", 6, 5, 1, true},
		{"RightCell", 7, 5, 1, true},
		{"SecondItem", 20, 5, 2, true},
		{"WrongRow", 6, 6, 0, false},
		{"EmptyCell", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := m.HitTest(items, tt.x, tt.y)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("HitTest(%d,%d) = (%d,%v), want (%d,%v)",
					tt.x, tt.y, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestLowest(t *testing.T) {
	items := []game.Item{
		{ID: 1, Y: 3},
		{ID: 2, Y: 17.5},
		{ID: 3, Y: 9},
	}

	id, ok := Lowest(items)
	if !ok || id != 2 {
		t.Errorf("Lowest = (%d,%v), want (2,true)", id, ok)
	}

	if _, ok := Lowest(nil); ok {
		t.Error("Lowest of empty set reported an item")
	}
}

func TestResizeClampsMinimums(t *testing.T) {
	m := New()
	m.Resize(4, 2)
	if m.Width < 10 || m.Height < 5 {
		t.Errorf("arena %dx%d below minimums", m.Width, m.Height)
	}
}

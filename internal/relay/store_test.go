package relay

import (
	"testing"

	"github.com/emoji-rain/emojirain/internal/wire"
)

func TestStoreDefaultPose(t *testing.T) {
	s := NewPlayerStore()
	s.Add("player-1")

	st, ok := s.Get("player-1")
	if !ok {
		t.Fatal("player missing after Add")
	}
	if st.X != 0 || st.Y != 1 || st.Z != 0 {
		t.Errorf("default pose = {%v %v %v}, want {0 1 0}", st.X, st.Y, st.Z)
	}
}

func TestStoreSetReplacesWholesale(t *testing.T) {
	s := NewPlayerStore()
	s.Add("player-1")
	s.Set("player-1", wire.PlayerState{ID: "spoofed", X: 1, Y: 2, Z: 3})

	st, _ := s.Get("player-1")
	if st.X != 1 || st.Y != 2 || st.Z != 3 {
		t.Errorf("state = {%v %v %v}, want {1 2 3}", st.X, st.Y, st.Z)
	}
	if st.ID != "player-1" {
		t.Errorf("stored id = %q, want connection's own id", st.ID)
	}
}

func TestStoreRemove(t *testing.T) {
	s := NewPlayerStore()
	s.Add("player-1")
	s.Add("player-2")
	s.Remove("player-1")

	if _, ok := s.Get("player-1"); ok {
		t.Error("player-1 still present after Remove")
	}
	if s.Count() != 1 {
		t.Errorf("count = %d, want 1", s.Count())
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := NewPlayerStore()
	s.Add("player-1")

	snap := s.Snapshot()
	snap["player-1"] = wire.PlayerState{X: 99}

	st, _ := s.Get("player-1")
	if st.X == 99 {
		t.Error("mutating the snapshot leaked into the store")
	}
}

package game

import (
	"testing"
	"time"
)

func startedSession(t *testing.T) (*Session, time.Time) {
	t.Helper()
	s := New(1)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Start(start)
	return s, start
}

func TestPerfectClassification(t *testing.T) {
	tests := []struct {
		name        string
		latency     time.Duration
		wantPerfect bool
	}{
		{"InsideWindow", 1950 * time.Millisecond, true},
		{"OutsideWindow", 1850 * time.Millisecond, false},
		{"ExactBoundary", 1900 * time.Millisecond, false}, // diff == 100ms is not perfect
		{"Late", 2050 * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, start := startedSession(t)
			item := s.Spawn(start, 40)
			item.TargetOffset = 2 * time.Second

			rec, ok := s.Activate(item.ID, start.Add(tt.latency))
			if !ok {
				t.Fatal("activation rejected")
			}
			if rec.Perfect != tt.wantPerfect {
				t.Errorf("latency %v: perfect = %v, want %v", tt.latency, rec.Perfect, tt.wantPerfect)
			}
		})
	}
}

func TestScoreMatchesReactions(t *testing.T) {
	s, start := startedSession(t)

	for i := 0; i < 5; i++ {
		item := s.Spawn(start.Add(time.Duration(i)*SpawnInterval), 40)
		if _, ok := s.Activate(item.ID, start.Add(time.Duration(i)*SpawnInterval+time.Second)); !ok {
			t.Fatalf("activation %d rejected", i)
		}
	}

	if s.Score() != len(s.Reactions()) {
		t.Errorf("score %d != recorded reactions %d", s.Score(), len(s.Reactions()))
	}

	perfects := 0
	for _, r := range s.Reactions() {
		if r.Perfect {
			perfects++
		}
	}
	if s.Perfects() != perfects {
		t.Errorf("perfects %d != perfect reactions %d", s.Perfects(), perfects)
	}
}

func TestCountdownEndsExactlyOnce(t *testing.T) {
	s, _ := startedSession(t)

	endings := 0
	ticks := 0
	prev := s.Remaining()
	for s.Running() {
		ticks++
		if ticks > 1000 {
			t.Fatal("session never ended")
		}
		if s.CountdownTick() {
			endings++
		}
		if s.Remaining() >= prev {
			t.Fatalf("remaining did not decrease: %v -> %v", prev, s.Remaining())
		}
		prev = s.Remaining()
	}

	// Ticks after the end are no-ops and never report a second ending.
	for i := 0; i < 10; i++ {
		if s.CountdownTick() {
			endings++
		}
	}

	if endings != 1 {
		t.Errorf("session ended %d times, want 1", endings)
	}
	if ticks != 300 {
		t.Errorf("ended after %d ticks, want 300", ticks)
	}
	if s.Phase() != Ended {
		t.Errorf("phase = %v, want Ended", s.Phase())
	}
}

func TestEveryItemRemovedByExactlyOnePath(t *testing.T) {
	s, start := startedSession(t)

	a := s.Spawn(start, 40)
	b := s.Spawn(start, 40)

	// a is activated; the next fall tick must not remove it again.
	if _, ok := s.Activate(a.ID, start.Add(time.Second)); !ok {
		t.Fatal("activation rejected")
	}
	if _, ok := s.Activate(a.ID, start.Add(time.Second)); ok {
		t.Error("second activation of the same item succeeded")
	}

	// b falls out; activating it afterwards is a no-op.
	var exited []int
	for i := 0; i < 200 && len(exited) == 0; i++ {
		exited = append(exited, s.AdvanceFalls(24)...)
	}
	if len(exited) != 1 || exited[0] != b.ID {
		t.Fatalf("exited = %v, want [%d]", exited, b.ID)
	}
	if _, ok := s.Activate(b.ID, start.Add(time.Second)); ok {
		t.Error("activated an item that already fell out")
	}

	if s.ItemCount() != 0 {
		t.Errorf("%d items still live, want 0", s.ItemCount())
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, want 1", s.Score())
	}
}

func TestNoSpawnOrActivationWhenStopped(t *testing.T) {
	s := New(1)
	now := time.Now()

	if item := s.Spawn(now, 40); item != nil {
		t.Error("spawned while idle")
	}
	if _, ok := s.Activate(0, now); ok {
		t.Error("activated while idle")
	}
	if got := s.AdvanceFalls(24); got != nil {
		t.Errorf("fall tick advanced while idle: %v", got)
	}

	s.Start(now)
	s.Spawn(now, 40)
	for s.Running() {
		s.CountdownTick()
	}
	if got := s.AdvanceFalls(24); got != nil {
		t.Errorf("fall tick advanced after end: %v", got)
	}
}

func TestRestartResetsEverything(t *testing.T) {
	s, start := startedSession(t)

	item := s.Spawn(start, 40)
	s.Activate(item.ID, start.Add(2*time.Second))
	for s.Running() {
		s.CountdownTick()
	}

	s.Start(start.Add(time.Minute))

	if s.Score() != 0 || s.Perfects() != 0 || len(s.Reactions()) != 0 {
		t.Errorf("residue after restart: score=%d perfects=%d reactions=%d",
			s.Score(), s.Perfects(), len(s.Reactions()))
	}
	if s.Remaining() != SessionSeconds {
		t.Errorf("remaining = %v, want %v", s.Remaining(), SessionSeconds)
	}
	if s.ItemCount() != 0 {
		t.Errorf("%d items survived restart", s.ItemCount())
	}
	if !s.Running() {
		t.Error("session not running after restart")
	}
}

func TestSummary(t *testing.T) {
	s, start := startedSession(t)

	item := s.Spawn(start, 40)
	item.TargetOffset = 2 * time.Second
	s.Activate(item.ID, start.Add(1950*time.Millisecond))

	sum := s.Summary()
	if len(sum.ReactionTimes) != 1 || sum.ReactionTimes[0] != 1950 {
		t.Errorf("reaction times = %v, want [1950]", sum.ReactionTimes)
	}
	if sum.Perfects != 1 {
		t.Errorf("perfects = %d, want 1", sum.Perfects)
	}
}

func TestResultMessageBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "Try clicking the logos and emojis!"},
		{1, "Keep practicing!"},
		{9, "Keep practicing!"},
		{10, "Nice! You're quick!"},
		{24, "Nice! You're quick!"},
		{25, "Great job! True fan!"},
		{37, "Great job! True fan!"},
		{39, "Great job! True fan!"},
		{40, "Incredible! Emoji Master!"},
		{45, "Incredible! Emoji Master!"},
	}

	for _, tt := range tests {
		if got := ResultMessage(tt.score); got != tt.want {
			t.Errorf("ResultMessage(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

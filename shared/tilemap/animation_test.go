package tilemap

import (
	"testing"
	"time"
)

func TestAnimatedTileCursor(t *testing.T) {
	a := NewAnimatedTiles(map[uint32][]Frame{
		5: {{GID: 5, Duration: 100 * time.Millisecond}, {GID: 6, Duration: 200 * time.Millisecond}},
	})
	steps := []struct {
		now   time.Duration
		frame int
		gid   uint32
	}{
		{0, 0, 5},
		{150 * time.Millisecond, 1, 6},
		{320 * time.Millisecond, 0, 5},
		{399 * time.Millisecond, 0, 5},
		{400 * time.Millisecond, 1, 6},
	}
	for _, s := range steps {
		a.Advance(s.now)
		if got := a.FrameIndex(5); got != s.frame {
			t.Fatalf("t=%v frame = %d, want %d", s.now, got, s.frame)
		}
		if gid, ok := a.Current(5); !ok || gid != s.gid {
			t.Fatalf("t=%v Current = %d, want %d", s.now, gid, s.gid)
		}
	}
}

func TestAdvanceIsIdempotentWithinAFrame(t *testing.T) {
	a := NewAnimatedTiles(map[uint32][]Frame{
		1: {{GID: 1, Duration: 10 * time.Millisecond}, {GID: 2, Duration: 10 * time.Millisecond}},
	})
	a.Advance(0)
	for i := 0; i < 5; i++ {
		a.Advance(15 * time.Millisecond)
	}
	if gid, _ := a.Current(1); gid != 2 {
		t.Fatalf("repeated Advance moved the cursor past frame 1: %d", gid)
	}
}

func TestAnimatedTilesEdgeCases(t *testing.T) {
	a := NewAnimatedTiles(map[uint32][]Frame{
		1: {{GID: 3, Duration: 0}},
		2: nil,
	})
	a.Advance(0)
	a.Advance(time.Second)
	if gid, _ := a.Current(1); gid != 3 {
		t.Fatalf("zero duration frame should hold, got %d", gid)
	}
	if a.Len() != 1 {
		t.Fatalf("empty cycles must be ignored")
	}

	var nilTiles *AnimatedTiles
	nilTiles.Advance(time.Second)
	if gid, ok := nilTiles.Current(9); ok || gid != 9 || nilTiles.Len() != 0 {
		t.Fatalf("nil registry should pass gids through")
	}

	a.Reset()
	if _, ok := a.Current(1); ok {
		t.Fatalf("Reset should drop bindings")
	}
}

package tilemap

import (
	"time"

	"github.com/lafriks/go-tiled"
)

// Frame is one step of an animated tile.
type Frame struct {
	GID      uint32
	Duration time.Duration
}

type tileCursor struct {
	frames  []Frame
	current int
	last    time.Duration
	started bool
}

// advance moves the cursor forward while the time since the last advance
// covers the current frame. last moves by whole frame durations so that
// frame boundaries do not drift with the render rate.
func (c *tileCursor) advance(now time.Duration) {
	if !c.started {
		c.last = now
		c.started = true
		return
	}
	if now < c.last {
		c.current, c.last = 0, now
		return
	}
	for {
		d := c.frames[c.current].Duration
		if d <= 0 || now-c.last < d {
			return
		}
		c.last += d
		c.current = (c.current + 1) % len(c.frames)
	}
}

// AnimatedTiles maps the global id of every animated tile to its frame cycle
// and cursor. It belongs to a single TileMap.
type AnimatedTiles struct {
	cursors map[uint32]*tileCursor
}

// NewAnimatedTiles builds a registry from explicit frame cycles keyed by gid.
// Cycles with no frames are ignored.
func NewAnimatedTiles(cycles map[uint32][]Frame) *AnimatedTiles {
	a := &AnimatedTiles{cursors: make(map[uint32]*tileCursor, len(cycles))}
	for gid, frames := range cycles {
		if len(frames) == 0 {
			continue
		}
		a.cursors[gid] = &tileCursor{frames: append([]Frame(nil), frames...)}
	}
	return a
}

func buildAnimations(tilesets []*tiled.Tileset) *AnimatedTiles {
	cycles := make(map[uint32][]Frame)
	for _, ts := range tilesets {
		for _, tile := range ts.Tiles {
			if len(tile.Animation) == 0 {
				continue
			}
			frames := make([]Frame, 0, len(tile.Animation))
			for _, f := range tile.Animation {
				frames = append(frames, Frame{
					GID:      ts.FirstGID + f.TileID,
					Duration: time.Duration(f.Duration) * time.Millisecond,
				})
			}
			cycles[ts.FirstGID+tile.ID] = frames
		}
	}
	return NewAnimatedTiles(cycles)
}

// Advance brings every cursor up to now. Calling it more than once with the
// same now is a no-op, so a frame's composite sees one consistent state.
func (a *AnimatedTiles) Advance(now time.Duration) {
	if a == nil {
		return
	}
	for _, c := range a.cursors {
		c.advance(now)
	}
}

// Current returns the frame gid to draw in place of gid. ok is false when gid
// is not animated.
func (a *AnimatedTiles) Current(gid uint32) (uint32, bool) {
	if a == nil {
		return gid, false
	}
	c, ok := a.cursors[gid]
	if !ok {
		return gid, false
	}
	return c.frames[c.current].GID, true
}

// FrameIndex exposes the cursor position, mostly for debugging overlays.
func (a *AnimatedTiles) FrameIndex(gid uint32) int {
	if a == nil {
		return -1
	}
	if c, ok := a.cursors[gid]; ok {
		return c.current
	}
	return -1
}

func (a *AnimatedTiles) Len() int {
	if a == nil {
		return 0
	}
	return len(a.cursors)
}

// Reset drops every binding.
func (a *AnimatedTiles) Reset() {
	if a == nil {
		return
	}
	a.cursors = map[uint32]*tileCursor{}
}

// Package camera tracks the viewport over a bounded world.
package camera

import (
	"math"

	"github.com/automoto/tilewalk/shared/gamemath"
)

// Camera is a viewport rectangle in world pixels.
type Camera struct {
	view                    gamemath.Rect
	worldWidth, worldHeight float64
}

// New creates a camera with a viewW x viewH viewport at the world origin.
func New(viewW, viewH, worldW, worldH float64) *Camera {
	return &Camera{
		view:        gamemath.Rect{W: viewW, H: viewH},
		worldWidth:  worldW,
		worldHeight: worldH,
	}
}

// View returns the viewport rectangle.
func (c *Camera) View() gamemath.Rect {
	return c.view
}

// Origin is the top-left of the viewport.
func (c *Camera) Origin() gamemath.Point {
	return gamemath.Point{X: c.view.X, Y: c.view.Y}
}

// WorldSize returns the clamping bounds.
func (c *Camera) WorldSize() (float64, float64) {
	return c.worldWidth, c.worldHeight
}

// Follow centres the viewport on (x, y) and clamps it inside the world. An
// axis on which the world is smaller than the viewport pins to 0. The origin
// is floored to whole pixels.
func (c *Camera) Follow(x, y float64) {
	c.view.X = clampAxis(math.Floor(x-c.view.W/2), c.view.W, c.worldWidth)
	c.view.Y = clampAxis(math.Floor(y-c.view.H/2), c.view.H, c.worldHeight)
}

func clampAxis(v, view, world float64) float64 {
	if v+view > world {
		v = world - view
	}
	if v < 0 {
		v = 0
	}
	return v
}

// Resize changes the world bounds on map change. The viewport is not moved
// until the next Follow.
func (c *Camera) Resize(worldW, worldH float64) {
	c.worldWidth = worldW
	c.worldHeight = worldH
}

// SetViewSize changes the viewport dimensions, for window layout changes.
func (c *Camera) SetViewSize(w, h float64) {
	c.view.W = w
	c.view.H = h
}

// WorldToScreen translates a world rectangle into screen space.
func (c *Camera) WorldToScreen(x, y, w, h float64) gamemath.Rect {
	return gamemath.Rect{X: x - c.view.X, Y: y - c.view.Y, W: w, H: h}
}

// Visible reports whether r overlaps the viewport.
func (c *Camera) Visible(r gamemath.Rect) bool {
	return gamemath.RectIntersectsRect(r, c.view)
}

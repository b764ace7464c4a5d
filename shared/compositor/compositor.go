// Package compositor turns a tilemap into an ordered stream of draw calls.
// It does not draw anything itself: a Sink receives source rectangles and
// screen positions, which keeps ordering and culling testable without a GPU.
package compositor

import (
	"image"
	"time"

	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/tilemap"
)

// TileDraw is one tile placed on screen.
type TileDraw struct {
	Layer   string
	GID     uint32 // after animation substitution
	Tileset *tilemap.Tileset
	// Image is the tileset sheet, or the tile's own image for image
	// collection tilesets. Src is relative to it.
	Image   image.Image
	Src     image.Rectangle
	X, Y    float64
	Opacity float64
}

// ImageDraw is an image layer placed on screen.
type ImageDraw struct {
	Layer   string
	Image   image.Image
	X, Y    float64
	Opacity float64
}

// Sink receives draw calls in paint order.
type Sink interface {
	DrawTile(TileDraw)
	DrawImage(ImageDraw)
}

// Viewport supplies the visible world rectangle. *camera.Camera satisfies it.
type Viewport interface {
	View() gamemath.Rect
}

// Compositor renders one map through one viewport.
type Compositor struct {
	m    *tilemap.TileMap
	view Viewport
	seq  []entry
}

type entry struct {
	layer   tilemap.Layer
	visible bool // including every ancestor group
	offsetX float64
	offsetY float64
	opacity float64
	// end is one past the last descendant for groups, or the entry's own
	// index + 1 otherwise.
	end int
}

// New prepares the paint sequence of m. A nil view disables culling and
// draws at world coordinates.
func New(m *tilemap.TileMap, view Viewport) *Compositor {
	c := &Compositor{m: m, view: view}
	c.seq = flatten(nil, m.Layers, true, 0, 0, 1)
	return c
}

// flatten lays out a container in paint order: its own non-group layers
// first, then each group in turn.
func flatten(seq []entry, layers []tilemap.Layer, visible bool, ox, oy, opacity float64) []entry {
	for _, l := range layers {
		if _, ok := l.(*tilemap.Group); ok {
			continue
		}
		seq = append(seq, leaf(l, visible, ox, oy, opacity, len(seq)))
	}
	for _, l := range layers {
		g, ok := l.(*tilemap.Group)
		if !ok {
			continue
		}
		e := leaf(g, visible, ox, oy, opacity, len(seq))
		idx := len(seq)
		seq = append(seq, e)
		seq = flatten(seq, g.Layers, e.visible, e.offsetX, e.offsetY, e.opacity)
		seq[idx].end = len(seq)
	}
	return seq
}

func leaf(l tilemap.Layer, visible bool, ox, oy, opacity float64, idx int) entry {
	info := l.Info()
	return entry{
		layer:   l,
		visible: visible && info.Visible,
		offsetX: ox + info.OffsetX,
		offsetY: oy + info.OffsetY,
		opacity: opacity * info.Opacity,
		end:     idx + 1,
	}
}

// Order returns the layer names in paint order, groups included, for
// debugging and tests.
func (c *Compositor) Order() []string {
	names := make([]string, len(c.seq))
	for i, e := range c.seq {
		names[i] = e.layer.Info().Name
	}
	return names
}

// Render draws every visible layer.
func (c *Compositor) Render(s Sink, now time.Duration) {
	c.m.Animations.Advance(now)
	c.drawRange(s, 0, len(c.seq))
}

// RenderLayer draws only the first layer or group called name. It reports
// whether the name was found.
func (c *Compositor) RenderLayer(s Sink, name string, now time.Duration) bool {
	i, ok := c.find(name)
	if !ok {
		return false
	}
	c.m.Animations.Advance(now)
	c.drawRange(s, i, c.seq[i].end)
	return true
}

// RenderGroup is RenderLayer restricted to groups.
func (c *Compositor) RenderGroup(s Sink, name string, now time.Duration) bool {
	for i, e := range c.seq {
		if _, ok := e.layer.(*tilemap.Group); ok && e.layer.Info().Name == name {
			c.m.Animations.Advance(now)
			c.drawRange(s, i, e.end)
			return true
		}
	}
	return false
}

// RenderBefore draws everything painted before the first layer called name.
// When there is no such layer the whole map is drawn.
func (c *Compositor) RenderBefore(s Sink, name string, now time.Duration) bool {
	c.m.Animations.Advance(now)
	i, ok := c.find(name)
	if !ok {
		c.drawRange(s, 0, len(c.seq))
		return false
	}
	c.drawRange(s, 0, i)
	return true
}

// RenderAfter draws everything painted after the first layer called name,
// skipping the layer and, for a group, all of its children. Nothing is drawn
// when there is no such layer.
func (c *Compositor) RenderAfter(s Sink, name string, now time.Duration) bool {
	i, ok := c.find(name)
	if !ok {
		return false
	}
	c.m.Animations.Advance(now)
	c.drawRange(s, c.seq[i].end, len(c.seq))
	return true
}

// find searches the paint sequence, hidden layers included, so that before
// and after stay complementary regardless of visibility.
func (c *Compositor) find(name string) (int, bool) {
	for i, e := range c.seq {
		if e.layer.Info().Name == name {
			return i, true
		}
	}
	return 0, false
}

func (c *Compositor) drawRange(s Sink, from, to int) {
	for _, e := range c.seq[from:to] {
		if !e.visible || e.opacity <= 0 {
			continue
		}
		switch l := e.layer.(type) {
		case *tilemap.TileLayer:
			c.drawTiles(s, l, e)
		case *tilemap.ImageLayer:
			c.drawImage(s, l, e)
		case *tilemap.ObjectLayer, *tilemap.Group:
			// objects carry no pixels; group children have their own entries
		}
	}
}

func (c *Compositor) origin() (gamemath.Point, gamemath.Rect, bool) {
	if c.view == nil {
		return gamemath.Point{}, gamemath.Rect{}, false
	}
	v := c.view.View()
	return gamemath.Point{X: v.X, Y: v.Y}, v, true
}

func (c *Compositor) drawTiles(s Sink, l *tilemap.TileLayer, e entry) {
	origin, view, cull := c.origin()
	tw, th := float64(c.m.TileWidth), float64(c.m.TileHeight)
	width := l.Width
	if width <= 0 {
		width = c.m.Width
	}
	if width <= 0 {
		return
	}
	for i, gid := range l.GIDs {
		if gid == 0 {
			continue
		}
		if frame, ok := c.m.Animations.Current(gid); ok {
			gid = frame
		}
		ts := c.m.TilesetForGID(gid)
		if ts == nil {
			continue
		}
		local := ts.LocalID(gid)

		img := ts.Image
		src := ts.SourceRect(local)
		if ti, ok := ts.TileImages[local]; ok {
			img, src = ti, ti.Bounds()
		}
		if img == nil {
			continue
		}

		// Tiles taller than the grid are anchored at the bottom of their cell.
		x := float64(i%width)*tw + e.offsetX
		y := float64(i/width)*th + e.offsetY + th - float64(src.Dy())
		if cull && !gamemath.RectIntersectsRect(view, gamemath.Rect{X: x, Y: y, W: float64(src.Dx()), H: float64(src.Dy())}) {
			continue
		}
		s.DrawTile(TileDraw{
			Layer:   l.Name,
			GID:     gid,
			Tileset: ts,
			Image:   img,
			Src:     src,
			X:       x - origin.X,
			Y:       y - origin.Y,
			Opacity: e.opacity,
		})
	}
}

func (c *Compositor) drawImage(s Sink, l *tilemap.ImageLayer, e entry) {
	if l.Image == nil {
		return
	}
	origin, _, _ := c.origin()
	s.DrawImage(ImageDraw{
		Layer:   l.Name,
		Image:   l.Image,
		X:       e.offsetX - origin.X,
		Y:       e.offsetY - origin.Y,
		Opacity: e.opacity,
	})
}

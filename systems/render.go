package systems

import (
	"cmp"
	"slices"

	"github.com/automoto/tilewalk/assets"
	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/compositor"
	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	drawOp = &ebiten.DrawImageOptions{}
	sink   = &ebitenSink{}
)

// ebitenSink draws compositor output onto the screen.
type ebitenSink struct {
	screen *ebiten.Image
	images *assets.ImageCache
}

func (s *ebitenSink) DrawTile(t compositor.TileDraw) {
	img := s.images.SubImage(t.Image, t.Src)
	if img == nil {
		return
	}
	drawOp.GeoM.Reset()
	drawOp.ColorScale.Reset()
	drawOp.GeoM.Translate(t.X, t.Y)
	drawOp.ColorScale.ScaleAlpha(float32(t.Opacity))
	s.screen.DrawImage(img, drawOp)
}

func (s *ebitenSink) DrawImage(d compositor.ImageDraw) {
	img := s.images.Image(d.Image)
	if img == nil {
		return
	}
	drawOp.GeoM.Reset()
	drawOp.ColorScale.Reset()
	drawOp.GeoM.Translate(d.X, d.Y)
	drawOp.ColorScale.ScaleAlpha(float32(d.Opacity))
	s.screen.DrawImage(img, drawOp)
}

func sinkFor(screen *ebiten.Image, level *components.LevelData) *ebitenSink {
	sink.screen = screen
	sink.images = level.Images
	return sink
}

// splitByGroups reports whether the map names any of the configured
// background or foreground groups. Maps without them are split around the
// actor layer instead.
func splitByGroups(m *tilemap.TileMap) bool {
	for _, names := range [][]string{cfg.Map.BackgroundGroups, cfg.Map.ForegroundGroups} {
		for _, name := range names {
			if l, ok := m.LayerByName(name); ok {
				if _, isGroup := l.(*tilemap.Group); isGroup {
					return true
				}
			}
		}
	}
	return false
}

// DrawLevelBackground draws everything that sits under the actors.
func DrawLevelBackground(e *ecs.ECS, screen *ebiten.Image) {
	level, ok := GetLevel(e)
	if !ok || level.Compositor == nil {
		return
	}
	s := sinkFor(screen, level)
	if splitByGroups(level.Map) {
		for _, name := range cfg.Map.BackgroundGroups {
			level.Compositor.RenderGroup(s, name, level.Clock)
		}
		return
	}
	// Without a match this draws the whole map under the actors.
	level.Compositor.RenderBefore(s, cfg.Map.ActorLayer, level.Clock)
}

// DrawLevelForeground draws everything that covers the actors.
func DrawLevelForeground(e *ecs.ECS, screen *ebiten.Image) {
	level, ok := GetLevel(e)
	if !ok || level.Compositor == nil {
		return
	}
	s := sinkFor(screen, level)
	if splitByGroups(level.Map) {
		for _, name := range cfg.Map.ForegroundGroups {
			level.Compositor.RenderGroup(s, name, level.Clock)
		}
		return
	}
	level.Compositor.RenderAfter(s, cfg.Map.ActorLayer, level.Clock)
}

type drawable struct {
	entry *donburi.Entry
	y     float64
}

var drawables []drawable

// DrawActors renders the player and NPCs sorted by the bottom of their
// hitbox, so an actor standing lower on screen covers the one behind it.
func DrawActors(e *ecs.ECS, screen *ebiten.Image) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return // No camera yet
	}
	camera := components.Camera.Get(cameraEntry)

	drawables = drawables[:0]
	components.Actor.Each(e.World, func(entry *donburi.Entry) {
		if !entry.HasComponent(components.Animation) {
			return
		}
		actor := components.Actor.Get(entry)
		b := actor.Bounds()
		drawables = append(drawables, drawable{entry: entry, y: b.Y + b.H})
	})
	slices.SortStableFunc(drawables, func(a, b drawable) int { return cmp.Compare(a.y, b.y) })

	for _, d := range drawables {
		actor := components.Actor.Get(d.entry)
		anim := components.Animation.Get(d.entry)
		img := anim.FrameImage()
		if img == nil {
			continue
		}
		w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
		if !camera.Visible(gamemath.Rect{X: actor.Pos.X, Y: actor.Pos.Y, W: w, H: h}) {
			continue
		}
		r := camera.WorldToScreen(actor.Pos.X, actor.Pos.Y, w, h)

		drawOp.GeoM.Reset()
		drawOp.ColorScale.Reset()
		drawOp.GeoM.Translate(r.X, r.Y)
		screen.DrawImage(img, drawOp)
	}
}

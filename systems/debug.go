package systems

import (
	"image/color"

	"github.com/automoto/tilewalk/components"
	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/camera"
	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DrawDebug outlines collision shapes, actor hitboxes and NPC routes.
func DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(e)
	if !settings.Debug {
		return
	}

	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return // No camera yet
	}
	cam := components.Camera.Get(cameraEntry).Camera

	if level, ok := GetLevel(e); ok {
		for _, obj := range level.Map.Collisions {
			if !cam.Visible(obj.Bounds()) {
				continue
			}
			if obj.Shape == tilemap.ShapePolygon {
				drawPolygon(screen, cam, obj.Polygon, cfg.Debug.PolygonColor)
				continue
			}
			drawRectOutline(screen, cam, obj.Bounds(), cfg.Debug.CollisionColor)
		}
	}

	components.Actor.Each(e.World, func(entry *donburi.Entry) {
		drawRectOutline(screen, cam, components.Actor.Get(entry).Bounds(), cfg.Debug.HitboxColor)
	})

	components.NPC.Each(e.World, func(entry *donburi.Entry) {
		npc := components.NPC.Get(entry)
		if npc.Route == nil {
			return
		}
		actor := components.Actor.Get(entry)
		prev := actor.Bounds()
		from := gamemath.Point{X: prev.X + prev.W/2, Y: prev.Y + prev.H/2}
		for _, p := range npc.Route.Waypoints() {
			b := actor.HitboxAt(p)
			to := gamemath.Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
			drawLine(screen, cam, from, to, cfg.Debug.PathColor)
			from = to
		}
	})
}

func drawRectOutline(screen *ebiten.Image, cam *camera.Camera, r gamemath.Rect, c color.Color) {
	s := cam.WorldToScreen(r.X, r.Y, r.W, r.H)
	x, y, w, h := float32(s.X), float32(s.Y), float32(s.W), float32(s.H)
	vector.FillRect(screen, x, y, w, 1, c, false)     // Top
	vector.FillRect(screen, x, y+h-1, w, 1, c, false) // Bottom
	vector.FillRect(screen, x, y, 1, h, c, false)     // Left
	vector.FillRect(screen, x+w-1, y, 1, h, c, false) // Right
}

func drawPolygon(screen *ebiten.Image, cam *camera.Camera, poly gamemath.Polygon, c color.Color) {
	for i := range poly {
		drawLine(screen, cam, poly[i], poly[(i+1)%len(poly)], c)
	}
}

func drawLine(screen *ebiten.Image, cam *camera.Camera, a, b gamemath.Point, c color.Color) {
	sa := cam.WorldToScreen(a.X, a.Y, 0, 0)
	sb := cam.WorldToScreen(b.X, b.Y, 0, 0)
	vector.StrokeLine(screen, float32(sa.X), float32(sa.Y), float32(sb.X), float32(sb.Y), 1, c, false)
}

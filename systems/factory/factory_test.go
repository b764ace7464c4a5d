package factory

import (
	"testing"
	"testing/fstest"

	cfg "github.com/automoto/tilewalk/config"
	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/movement"
	"github.com/automoto/tilewalk/shared/tilemap"
	"github.com/charmbracelet/log"
)

func TestLoadCharacter(t *testing.T) {
	fsys := fstest.MapFS{
		"sprites/guard.yaml": {Data: []byte(`
sheet: guard.png
frame_w: 25
frame_h: 32
columns: 4
rows: 5
hitbox: {offset_x: 5, offset_y: 24, width: 15, height: 8}
defs:
  idle_down: {frames: [0], duration_ms: 150, loop: true}
`)},
	}

	spec, err := LoadCharacter(fsys, "sprites/guard.yaml")
	if err != nil {
		t.Fatalf("LoadCharacter: %v", err)
	}
	if spec.Sheet != "sprites/guard.png" {
		t.Errorf("Sheet = %q, want sprites/guard.png", spec.Sheet)
	}
	if spec.Hitbox.Width != 15 {
		t.Errorf("Hitbox = %+v", spec.Hitbox)
	}

	spec, err = LoadCharacter(fsys, "sprites/villager.png")
	if err != nil {
		t.Fatalf("LoadCharacter sheet: %v", err)
	}
	if spec.Sheet != "sprites/villager.png" || spec.FrameW != cfg.Sprite.FrameWidth {
		t.Errorf("sheet spec = %+v", spec)
	}
	anims, err := spec.Animations()
	if err != nil {
		t.Fatalf("Animations: %v", err)
	}
	if _, ok := anims[movement.Up.WalkAnimation()]; !ok {
		t.Errorf("missing %s", movement.Up.WalkAnimation())
	}

	if _, err := LoadCharacter(fsys, "sprites/missing.yaml"); err == nil {
		t.Error("expected an error for a missing spec")
	}
}

func TestPatrolFor(t *testing.T) {
	m := &tilemap.TileMap{
		Layers: []tilemap.Layer{
			&tilemap.ObjectLayer{
				LayerInfo: tilemap.LayerInfo{Name: "Paths"},
				Objects: []tilemap.Object{
					{Name: "post", Shape: tilemap.ShapePoint, X: 96, Y: 48},
					{Name: "loop", Shape: tilemap.ShapePolygon, Polygon: gamemath.Polygon{
						{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 32},
					}},
				},
			},
		},
	}
	npc := func(props tilemap.Properties) *tilemap.NPC {
		return &tilemap.NPC{
			Name:       "PNJ_test",
			Actor:      movement.NewActor(16, 16, gamemath.Rect{W: 16, H: 16}, movement.Uniform(30)),
			Properties: props,
		}
	}
	logger := log.Default()

	tests := []struct {
		name  string
		props tilemap.Properties
		want  []gamemath.Point
	}{
		{"no property", nil, nil},
		{"unknown target", tilemap.Properties{"patrol": "nowhere"}, nil},
		{"point", tilemap.Properties{"patrol": "post"}, []gamemath.Point{{X: 16, Y: 16}, {X: 96, Y: 48}}},
		{"polygon", tilemap.Properties{"patrol": "loop"}, []gamemath.Point{{X: 16, Y: 16}, {X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 32}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := patrolFor(m, npc(tt.props), logger)
			if len(got) != len(tt.want) {
				t.Fatalf("patrol = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("patrol = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestPlayerSpeedsAndHitbox(t *testing.T) {
	s := PlayerSpeeds()
	if s.For(movement.Walk) != cfg.Movement.Walk || s.For(movement.Ride) != cfg.Movement.Ride {
		t.Errorf("speeds = %v", s)
	}
	h := Hitbox()
	if h.W != cfg.Movement.HitboxW || h.Y != cfg.Movement.HitboxY {
		t.Errorf("hitbox = %+v", h)
	}
	if MapNames().NPCLayer != cfg.Map.NPCLayer {
		t.Errorf("names = %+v", MapNames())
	}
}

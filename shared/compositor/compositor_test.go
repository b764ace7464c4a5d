package compositor

import (
	"image"
	"reflect"
	"testing"
	"time"

	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/tilemap"
)

type recorder struct {
	tiles  []TileDraw
	images []ImageDraw
	layers []string
}

func (r *recorder) DrawTile(d TileDraw) {
	r.tiles = append(r.tiles, d)
	r.note(d.Layer)
}

func (r *recorder) DrawImage(d ImageDraw) {
	r.images = append(r.images, d)
	r.note(d.Layer)
}

func (r *recorder) note(layer string) {
	if n := len(r.layers); n == 0 || r.layers[n-1] != layer {
		r.layers = append(r.layers, layer)
	}
}

type fixedView gamemath.Rect

func (v fixedView) View() gamemath.Rect { return gamemath.Rect(v) }

func tiles(name string, gids ...uint32) *tilemap.TileLayer {
	return &tilemap.TileLayer{
		LayerInfo: tilemap.LayerInfo{Name: name, Visible: true, Opacity: 1},
		Width:     4, Height: 2,
		GIDs: gids,
	}
}

func group(name string, children ...tilemap.Layer) *tilemap.Group {
	return &tilemap.Group{LayerInfo: tilemap.LayerInfo{Name: name, Visible: true, Opacity: 1}, Layers: children}
}

func testMap() *tilemap.TileMap {
	sheet := image.NewRGBA(image.Rect(0, 0, 64, 32))
	roof := tiles("Roof", 0, 0, 0, 0, 0, 3, 0, 0)
	inner := group("Inner", tiles("Secret", 1, 1, 1, 1, 1, 1, 1, 1))
	inner.Visible = false
	second := group("SecondPlan", roof, inner)
	second.Opacity = 0.5
	second.OffsetX, second.OffsetY = 1, 2

	return &tilemap.TileMap{
		Width: 4, Height: 2, TileWidth: 16, TileHeight: 16,
		Tilesets: []*tilemap.Tileset{
			{Name: "terrain", FirstGID: 1, TileCount: 8, Columns: 4, TileWidth: 16, TileHeight: 16, Image: sheet},
			{Name: "broken", FirstGID: 9, TileCount: 4, Columns: 2, TileWidth: 16, TileHeight: 16},
		},
		Layers: []tilemap.Layer{
			tiles("Ground", 1, 2, 2, 1, 5, 6, 6, 9),
			group("Background", tiles("Deco", 0, 4, 0, 0, 0, 0, 0, 0)),
			&tilemap.ObjectLayer{LayerInfo: tilemap.LayerInfo{Name: "CollisionObject", Visible: true, Opacity: 1}},
			&tilemap.ImageLayer{LayerInfo: tilemap.LayerInfo{Name: "Sky", Visible: true, Opacity: 1, OffsetX: 4}, Image: image.NewRGBA(image.Rect(0, 0, 8, 8))},
			second,
		},
		Animations: tilemap.NewAnimatedTiles(map[uint32][]tilemap.Frame{
			1: {{GID: 1, Duration: 100 * time.Millisecond}, {GID: 2, Duration: 200 * time.Millisecond}},
		}),
	}
}

func TestPaintOrderPutsGroupsAfterDirectLayers(t *testing.T) {
	c := New(testMap(), nil)
	want := []string{"Ground", "CollisionObject", "Sky", "Background", "Deco", "SecondPlan", "Roof", "Inner", "Secret"}
	if got := c.Order(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Order() = %v, want %v", got, want)
	}

	var r recorder
	c.Render(&r, 0)
	if want := []string{"Ground", "Sky", "Deco", "Roof"}; !reflect.DeepEqual(r.layers, want) {
		t.Fatalf("drawn layers = %v, want %v", r.layers, want)
	}
}

func TestBeforeAndAfterAreComplementary(t *testing.T) {
	c := New(testMap(), nil)
	var full recorder
	c.Render(&full, 0)

	for _, name := range c.Order() {
		t.Run(name, func(t *testing.T) {
			var before, only, after recorder
			if !c.RenderBefore(&before, name, 0) || !c.RenderLayer(&only, name, 0) || !c.RenderAfter(&after, name, 0) {
				t.Fatalf("layer %q not found", name)
			}
			for _, d := range append(append([]TileDraw{}, before.tiles...), after.tiles...) {
				if d.Layer == name {
					t.Fatalf("%q drawn by before/after", name)
				}
			}
			joined := append(append(append([]TileDraw{}, before.tiles...), only.tiles...), after.tiles...)
			if !reflect.DeepEqual(joined, full.tiles) {
				t.Fatalf("before+layer+after drew %d tiles, full render drew %d", len(joined), len(full.tiles))
			}
			if n := len(before.images) + len(only.images) + len(after.images); n != len(full.images) {
				t.Fatalf("image draws = %d, want %d", n, len(full.images))
			}
		})
	}
}

func TestMatchInsideGroupStopsBefore(t *testing.T) {
	c := New(testMap(), nil)
	var r recorder
	c.RenderBefore(&r, "Roof", 0)
	if want := []string{"Ground", "Sky", "Deco"}; !reflect.DeepEqual(r.layers, want) {
		t.Fatalf("before Roof drew %v, want %v", r.layers, want)
	}
	r = recorder{}
	c.RenderAfter(&r, "Background", 0)
	if want := []string{"Roof"}; !reflect.DeepEqual(r.layers, want) {
		t.Fatalf("after Background drew %v, want %v", r.layers, want)
	}
}

func TestUnknownLayer(t *testing.T) {
	c := New(testMap(), nil)
	var before, after, only, grp recorder
	if c.RenderBefore(&before, "nope", 0) {
		t.Fatalf("RenderBefore reported a match")
	}
	var full recorder
	c.Render(&full, 0)
	if len(before.tiles) != len(full.tiles) {
		t.Fatalf("RenderBefore with no match should draw everything")
	}
	if c.RenderAfter(&after, "nope", 0) || len(after.tiles) != 0 {
		t.Fatalf("RenderAfter with no match should draw nothing")
	}
	if c.RenderLayer(&only, "nope", 0) || c.RenderGroup(&grp, "Ground", 0) {
		t.Fatalf("RenderLayer/RenderGroup should report misses")
	}
}

func TestGroupOpacityAndOffsetCompose(t *testing.T) {
	c := New(testMap(), nil)
	var r recorder
	if !c.RenderGroup(&r, "SecondPlan", 0) {
		t.Fatalf("SecondPlan not found")
	}
	if len(r.tiles) != 1 {
		t.Fatalf("got %d tiles, want the single roof tile", len(r.tiles))
	}
	d := r.tiles[0]
	if d.Opacity != 0.5 || d.X != 16+1 || d.Y != 16+2 || d.GID != 3 {
		t.Fatalf("roof draw = %+v", d)
	}
	if d.Src != image.Rect(32, 0, 48, 16) {
		t.Fatalf("src = %v", d.Src)
	}
}

func TestCameraTranslatesAndCulls(t *testing.T) {
	c := New(testMap(), fixedView{X: 16, Y: 0, W: 16, H: 16})
	var r recorder
	c.RenderLayer(&r, "Ground", 0)
	if len(r.tiles) != 1 {
		t.Fatalf("got %d tiles, want only the one under the view", len(r.tiles))
	}
	if d := r.tiles[0]; d.X != 0 || d.Y != 0 || d.GID != 2 {
		t.Fatalf("draw = %+v", d)
	}

	r = recorder{}
	c.RenderLayer(&r, "Sky", 0)
	if len(r.images) != 1 || r.images[0].X != 4-16 {
		t.Fatalf("image layer draws = %+v", r.images)
	}
}

func TestTilesFromUnloadedSheetDrawNothing(t *testing.T) {
	c := New(testMap(), nil)
	var r recorder
	c.RenderLayer(&r, "Ground", 0)
	for _, d := range r.tiles {
		if d.Tileset.Name == "broken" {
			t.Fatalf("tile from a tileset without an image was drawn")
		}
	}
	if len(r.tiles) != 7 {
		t.Fatalf("got %d ground tiles, want 7", len(r.tiles))
	}
}

func TestAnimatedTilesShareOneFramePerRender(t *testing.T) {
	m := testMap()
	c := New(m, nil)
	steps := []struct {
		now time.Duration
		gid uint32
	}{
		{0, 1},
		{150 * time.Millisecond, 2},
		{320 * time.Millisecond, 1},
	}
	for _, s := range steps {
		var r recorder
		c.RenderBefore(&r, "SecondPlan", s.now)
		c.RenderAfter(&r, "SecondPlan", s.now)
		var seen []uint32
		for _, d := range r.tiles {
			if d.Layer == "Ground" && (d.X == 0 || d.X == 48) && d.Y == 0 {
				seen = append(seen, d.GID)
			}
		}
		if len(seen) != 2 || seen[0] != s.gid || seen[1] != s.gid {
			t.Fatalf("t=%v animated tiles drew %v, want both %d", s.now, seen, s.gid)
		}
	}
}

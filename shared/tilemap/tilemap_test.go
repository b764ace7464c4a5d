package tilemap

import (
	"errors"
	"io"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/charmbracelet/log"

	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/movement"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func loadTown(t *testing.T) *TileMap {
	t.Helper()
	m, err := Load(os.DirFS("testdata"), "town.tmx", WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return m
}

func TestLoadBuildsLayerTreeInFileOrder(t *testing.T) {
	m := loadTown(t)

	if m.Width != 6 || m.Height != 4 || m.TileWidth != 16 || m.PixelWidth() != 96 || m.PixelHeight() != 64 {
		t.Fatalf("unexpected dimensions %dx%d tiles of %dx%d", m.Width, m.Height, m.TileWidth, m.TileHeight)
	}
	if v, _ := m.Properties.Get("music"); v != "town" {
		t.Fatalf("map property music = %q", v)
	}

	want := []string{"Sky", "Ground", "Background", "CollisionObject", "PlayerObject", "Actors", "SecondPlan"}
	if len(m.Layers) != len(want) {
		t.Fatalf("got %d root layers, want %d", len(m.Layers), len(want))
	}
	for i, name := range want {
		if got := m.Layers[i].Info().Name; got != name {
			t.Errorf("layer %d = %q, want %q", i, got, name)
		}
	}

	if _, ok := m.Layers[0].(*ImageLayer); !ok {
		t.Errorf("Sky is %T, want *ImageLayer", m.Layers[0])
	}
	bg, ok := m.Layers[2].(*Group)
	if !ok || len(bg.Layers) != 1 || bg.OffsetX != 2 || bg.OffsetY != 3 {
		t.Fatalf("Background group not decoded: %#v", m.Layers[2])
	}
	if flowers := bg.Layers[0].(*TileLayer); flowers.Opacity != 0.5 || flowers.GIDs[7] != 4 {
		t.Errorf("Flowers opacity=%v gid[7]=%d", flowers.Opacity, flowers.GIDs[7])
	}
	if m.Layers[6].Info().Visible {
		t.Errorf("SecondPlan should be hidden")
	}
}

func TestLoadResolvesTilesAndTilesets(t *testing.T) {
	m := loadTown(t)

	ground, ok := m.LayerByName("Ground")
	if !ok {
		t.Fatalf("Ground layer missing")
	}
	gids := ground.(*TileLayer).GIDs
	if len(gids) != 24 || gids[0] != 1 || gids[1] != 2 || gids[23] != 9 {
		t.Fatalf("unexpected gids %v", gids)
	}

	cases := []struct {
		gid  uint32
		want string
	}{
		{0, ""},
		{1, "terrain"},
		{8, "terrain"},
		{9, "props"},
		{12, "props"},
	}
	for _, c := range cases {
		ts := m.TilesetForGID(c.gid)
		got := ""
		if ts != nil {
			got = ts.Name
		}
		if got != c.want {
			t.Errorf("TilesetForGID(%d) = %q, want %q", c.gid, got, c.want)
		}
	}

	terrain := m.TilesetForGID(1)
	if terrain.Image == nil || terrain.Image.Bounds().Dx() != 64 {
		t.Fatalf("terrain image not decoded")
	}
	if r := terrain.SourceRect(terrain.LocalID(6)); r.Min.X != 16 || r.Min.Y != 16 {
		t.Errorf("SourceRect for gid 6 = %v", r)
	}
	// An undecodable sheet keeps its metadata and simply draws nothing.
	props := m.TilesetForGID(9)
	if props.Image != nil || props.TileCount != 4 || props.ImagePath != "missing.png" {
		t.Errorf("props tileset = %+v", props)
	}
	sky, _ := m.LayerByName("Sky")
	if sky.(*ImageLayer).Image == nil {
		t.Errorf("sky image not decoded")
	}
}

func TestLoadHarvestsReservedLayers(t *testing.T) {
	m := loadTown(t)

	if len(m.Collisions) != 2 {
		t.Fatalf("got %d collision objects, want 2 (points are skipped)", len(m.Collisions))
	}
	if m.Collisions[1].Shape != ShapePolygon || len(m.Collisions[1].Polygon) != 4 || m.Collisions[1].Polygon[2] != (gamemath.Point{X: 80, Y: 16}) {
		t.Errorf("polygon not made absolute: %v", m.Collisions[1].Polygon)
	}
	if !m.HasPlayerSpawn || m.PlayerSpawn != (gamemath.Point{X: 48, Y: 48}) {
		t.Errorf("spawn = %v (%v)", m.PlayerSpawn, m.HasPlayerSpawn)
	}

	if len(m.NPCs) != 2 {
		t.Fatalf("got %d npcs, want 2", len(m.NPCs))
	}
	guard, ok := m.NPCByName("PNJ_guard")
	if !ok {
		t.Fatalf("PNJ_guard missing")
	}
	if guard.Sprite != "sprites/guard.png" || guard.Actor.Facing != movement.Right || guard.Actor.Pos != (gamemath.Point{X: 16, Y: 16}) {
		t.Errorf("guard = %+v facing %v", guard, guard.Actor.Facing)
	}
	lost, _ := m.NPCByName("PNJ_lost")
	if lost.Sprite != "" || lost.Actor.Facing != movement.Down {
		t.Errorf("lost npc should default to down with no sprite, got %v %q", lost.Actor.Facing, lost.Sprite)
	}
	if _, ok := m.NPCByName("Sign"); ok {
		t.Errorf("objects without the NPC prefix must not spawn")
	}
}

func TestBlockedUsesCollisionShapes(t *testing.T) {
	m := loadTown(t)
	cases := []struct {
		name string
		r    gamemath.Rect
		want bool
	}{
		{"inside_wall", gamemath.Rect{X: 36, Y: 36, W: 4, H: 4}, true},
		{"touching_wall", gamemath.Rect{X: 16, Y: 32, W: 16, H: 16}, false},
		{"inside_rock", gamemath.Rect{X: 66, Y: 2, W: 4, H: 4}, true},
		{"open_floor", gamemath.Rect{X: 0, Y: 48, W: 16, H: 16}, false},
		{"on_point_object", gamemath.Rect{X: 0, Y: 0, W: 10, H: 10}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := m.Blocked(c.r); got != c.want {
				t.Fatalf("Blocked(%v) = %v, want %v", c.r, got, c.want)
			}
		})
	}
}

func TestObjectLookups(t *testing.T) {
	m := loadTown(t)

	obj, ok := m.ObjectByName("Sign")
	if !ok || obj.ID != 7 || obj.Shape != ShapeRect {
		t.Fatalf("ObjectByName(Sign) = %+v, %v", obj, ok)
	}
	if _, ok := m.ObjectByName("nobody"); ok {
		t.Fatalf("lookup miss should report absent")
	}

	boulders := m.ObjectsByType("boulder")
	if len(boulders) != 2 || boulders[0].Name != "rock" || boulders[1].Name != "Sign" {
		t.Fatalf("ObjectsByType(boulder) = %v", boulders)
	}
	if got := m.ObjectsByType("dragon"); got != nil {
		t.Fatalf("miss should be empty, got %v", got)
	}

	marker, _ := m.ObjectByName("marker")
	if marker.Shape != ShapePoint {
		t.Errorf("marker shape = %v", marker.Shape)
	}
}

func TestLoadedAnimationsAdvance(t *testing.T) {
	m := loadTown(t)
	if m.Animations.Len() != 1 {
		t.Fatalf("got %d animated tiles, want 1", m.Animations.Len())
	}
	m.Animations.Advance(0)
	if gid, ok := m.Animations.Current(1); !ok || gid != 1 {
		t.Fatalf("Current(1) = %d,%v at t=0", gid, ok)
	}
	m.Animations.Advance(150 * time.Millisecond)
	if gid, _ := m.Animations.Current(1); gid != 2 {
		t.Fatalf("Current(1) = %d at t=150ms, want 2", gid)
	}
	if gid, ok := m.Animations.Current(6); ok || gid != 6 {
		t.Fatalf("static tile reported as animated")
	}

	m.Close()
	if m.Animations != nil || m.TilesetForGID(1).Image != nil {
		t.Fatalf("Close left resources behind")
	}
}

func TestLoadDefaultsMissingOptionalData(t *testing.T) {
	fsys := fstest.MapFS{
		"bare.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="2" height="2" tilewidth="16" tileheight="16" infinite="0">
 <layer id="1" name="Ground" width="2" height="2">
  <data encoding="csv">
0,0,
0,0
</data>
 </layer>
</map>`)},
	}
	m, err := Load(fsys, "bare.tmx", WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.HasPlayerSpawn || m.PlayerSpawn != (gamemath.Point{}) {
		t.Errorf("spawn should default to the origin")
	}
	if len(m.Collisions) != 0 || len(m.NPCs) != 0 || m.Animations.Len() != 0 {
		t.Errorf("expected empty collisions, npcs and animations")
	}
	if m.Blocked(gamemath.Rect{W: 16, H: 16}) {
		t.Errorf("empty map should block nothing")
	}
}

func TestLoadFailuresAreFatal(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.tmx":  {Data: []byte(`<map width="2" height="2"><layer name="x"`)},
		"notamap.tmx": {Data: []byte(`<tileset name="x"></tileset>`)},
		"badts.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="1" height="1" tilewidth="16" tileheight="16">
 <tileset firstgid="1" source="nowhere.tsx"/>
</map>`)},
		"infinite.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="1" height="1" tilewidth="16" tileheight="16" infinite="1">
</map>`)},
	}
	for _, name := range []string{"absent.tmx", "broken.tmx", "notamap.tmx", "badts.tmx", "infinite.tmx"} {
		t.Run(name, func(t *testing.T) {
			m, err := Load(fsys, name, WithLogger(quietLogger()))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !errors.Is(err, ErrAssetLoad) {
				t.Fatalf("error %v does not wrap ErrAssetLoad", err)
			}
			if m != nil {
				t.Fatalf("no map may escape a failed load")
			}
		})
	}
}

func TestCustomNames(t *testing.T) {
	names := DefaultNames()
	names.CollisionLayer = "Background"
	m, err := Load(os.DirFS("testdata"), "town.tmx", WithLogger(quietLogger()), WithNames(names))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Collisions) != 0 {
		t.Fatalf("tile-only group should harvest no collisions, got %d", len(m.Collisions))
	}
	if m.Names().CollisionLayer != "Background" {
		t.Fatalf("names not kept on the map")
	}
}

func TestLoadReadsUnusedExternalTileset(t *testing.T) {
	fsys := fstest.MapFS{
		"m.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="2" height="1" tilewidth="16" tileheight="16">
 <properties><property name="music" value="town"/></properties>
 <tileset firstgid="1" source="unused.tsx"/>
 <layer name="Ground" width="2" height="1"><data encoding="csv">0,0</data></layer>
</map>`)},
		"unused.tsx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<tileset name="unused" tilewidth="16" tileheight="16" tilecount="4" columns="2">
 <image source="unused.png" width="32" height="32"/>
</tileset>`)},
	}
	m, err := Load(fsys, "m.tmx", WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ts := m.TilesetForGID(1)
	if ts == nil || ts.Name != "unused" || ts.TileCount != 4 || ts.Columns != 2 {
		t.Fatalf("tileset = %+v", ts)
	}
	if m.Properties["music"] != "town" {
		t.Errorf("map properties = %v", m.Properties)
	}
	ground, _ := m.LayerByName("Ground")
	if tl := ground.(*TileLayer); tl.Width != 2 || tl.Height != 1 || len(tl.GIDs) != 2 {
		t.Errorf("ground = %dx%d with %d gids", tl.Width, tl.Height, len(tl.GIDs))
	}
}

func TestLoadKeepsFileOrderWithEmbeddedTileCollisions(t *testing.T) {
	fsys := fstest.MapFS{
		"m.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="1" height="1" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="t" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="t.png" width="16" height="16"/>
  <tile id="0">
   <objectgroup draworder="index" id="2">
    <object id="1" x="0" y="0" width="16" height="16"/>
   </objectgroup>
  </tile>
 </tileset>
 <objectgroup id="3" name="Top" opacity="0.5"/>
 <layer id="1" name="Ground" width="1" height="1"><data encoding="csv">1</data></layer>
</map>`)},
	}
	m, err := Load(fsys, "m.tmx", WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var names []string
	for _, l := range m.Layers {
		names = append(names, l.Info().Name)
	}
	if len(names) != 2 || names[0] != "Top" || names[1] != "Ground" {
		t.Fatalf("layer order = %v, want [Top Ground]", names)
	}
	if op := m.Layers[0].Info().Opacity; op != 0.5 {
		t.Errorf("Top opacity = %v, want 0.5", op)
	}
}

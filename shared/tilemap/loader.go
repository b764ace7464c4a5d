package tilemap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lafriks/go-tiled"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/movement"
)

// ErrAssetLoad wraps every fatal load failure.
var ErrAssetLoad = errors.New("tilemap: asset load failed")

// Names are the reserved layer and object names the loader harvests.
type Names struct {
	CollisionLayer string
	PlayerLayer    string
	PlayerSpawn    string
	NPCLayer       string
	NPCPrefix      string
	SpriteProperty string
	FacingProperty string
}

// DefaultNames returns the conventional reserved names.
func DefaultNames() Names {
	return Names{
		CollisionLayer: "CollisionObject",
		PlayerLayer:    "PlayerObject",
		PlayerSpawn:    "PlayerSpawn",
		NPCLayer:       "PNJObject",
		NPCPrefix:      "PNJ",
		SpriteProperty: "sprite",
		FacingProperty: "direction",
	}
}

type options struct {
	names     Names
	logger    *log.Logger
	npcHitbox gamemath.Rect
	npcSpeeds movement.Speeds
	npcGrid   float64
}

// Option configures Load.
type Option func(*options)

func WithNames(n Names) Option {
	return func(o *options) { o.names = n }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithNPCActor sets the hitbox, speeds and grid given to spawned NPCs.
func WithNPCActor(hitbox gamemath.Rect, speeds movement.Speeds, grid float64) Option {
	return func(o *options) {
		o.npcHitbox = hitbox
		o.npcSpeeds = speeds
		o.npcGrid = grid
	}
}

// Load parses the TMX map at mapPath within fsys, along with its tilesets and
// images. Any structural failure aborts the load; missing optional data is
// logged and defaulted.
func Load(fsys fs.FS, mapPath string, opts ...Option) (*TileMap, error) {
	o := options{
		names:     DefaultNames(),
		logger:    log.Default(),
		npcHitbox: gamemath.Rect{W: 25, H: 32},
		npcSpeeds: movement.Uniform(30),
		npcGrid:   movement.DefaultGrid,
	}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With("map", mapPath)

	raw, err := fs.ReadFile(fsys, mapPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrAssetLoad, mapPath, err)
	}
	layout, err := scanLayout(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrAssetLoad, mapPath, err)
	}
	if layout.infinite {
		return nil, fmt.Errorf("%w: %s: infinite maps are not supported", ErrAssetLoad, mapPath)
	}

	levelMap, err := tiled.LoadFile(mapPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("%w: load TMX %s: %w", ErrAssetLoad, mapPath, err)
	}
	if err := loadTilesets(levelMap); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetLoad, mapPath, err)
	}

	var mapProps tiled.Properties
	if levelMap.Properties != nil {
		mapProps = *levelMap.Properties
	}

	m := &TileMap{
		Path:       mapPath,
		Width:      levelMap.Width,
		Height:     levelMap.Height,
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
		Properties: convertProperties(mapProps),
		names:      o.names,
	}

	byTiled := make(map[*tiled.Tileset]*Tileset, len(levelMap.Tilesets))
	for _, ts := range levelMap.Tilesets {
		t := convertTileset(fsys, ts, logger)
		byTiled[ts] = t
		m.Tilesets = append(m.Tilesets, t)
	}
	sort.SliceStable(m.Tilesets, func(i, j int) bool {
		return m.Tilesets[i].FirstGID < m.Tilesets[j].FirstGID
	})

	b := builder{
		fsys:     fsys,
		mapDir:   path.Dir(mapPath),
		width:    levelMap.Width,
		height:   levelMap.Height,
		tilesets: byTiled,
		logger:   logger,
	}
	m.Layers = b.container(layout.layers, levelMap.Layers, levelMap.ObjectGroups, levelMap.ImageLayers, levelMap.Groups)

	m.Animations = buildAnimations(levelMap.Tilesets)
	harvest(m, o, logger)

	logger.Debug("map loaded",
		"size", fmt.Sprintf("%dx%d", m.Width, m.Height),
		"layers", len(m.Layers),
		"tilesets", len(m.Tilesets),
		"collisions", len(m.Collisions),
		"npcs", len(m.NPCs),
	)
	return m, nil
}

// loadTilesets opens every external tileset. go-tiled reads a .tsx lazily,
// the first time one of its gids is decoded, so a tileset no tile uses would
// otherwise reach us empty.
func loadTilesets(levelMap *tiled.Map) error {
	for _, ts := range levelMap.Tilesets {
		if ts.Source == "" || ts.SourceLoaded {
			continue
		}
		if ts.FirstGID == 0 {
			return fmt.Errorf("tileset %s: missing firstgid", ts.Source)
		}
		if _, err := levelMap.TileGIDToTile(ts.FirstGID); err != nil {
			return fmt.Errorf("tileset %s: %w", ts.Source, err)
		}
		if !ts.SourceLoaded {
			return fmt.Errorf("tileset %s: not loaded", ts.Source)
		}
	}
	return nil
}

func convertProperties(props tiled.Properties) Properties {
	if len(props) == 0 {
		return nil
	}
	out := make(Properties, len(props))
	for _, p := range props {
		out[p.Name] = p.Value
	}
	return out
}

func convertTileset(fsys fs.FS, ts *tiled.Tileset, logger *log.Logger) *Tileset {
	t := &Tileset{
		Name:       ts.Name,
		FirstGID:   ts.FirstGID,
		TileCount:  ts.TileCount,
		Columns:    ts.Columns,
		TileWidth:  ts.TileWidth,
		TileHeight: ts.TileHeight,
		Margin:     ts.Margin,
		Spacing:    ts.Spacing,
	}
	if ts.Image != nil && ts.Image.Source != "" {
		t.ImagePath = fsPath(ts.GetFileFullPath(ts.Image.Source))
		img, err := decodeImage(fsys, t.ImagePath)
		if err != nil {
			logger.Warn("tileset image unavailable, tiles will not draw", "tileset", ts.Name, "image", t.ImagePath, "err", err)
		} else {
			t.Image = img
		}
	}
	for _, tile := range ts.Tiles {
		if tile.Image == nil || tile.Image.Source == "" {
			continue
		}
		p := fsPath(ts.GetFileFullPath(tile.Image.Source))
		img, err := decodeImage(fsys, p)
		if err != nil {
			logger.Warn("tile image unavailable", "tileset", ts.Name, "tile", tile.ID, "image", p, "err", err)
			continue
		}
		if t.TileImages == nil {
			t.TileImages = make(map[uint32]image.Image)
		}
		t.TileImages[tile.ID] = img
	}
	return t
}

func decodeImage(fsys fs.FS, p string) (image.Image, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return img, nil
}

// fsPath turns an OS-joined path into an io/fs path.
func fsPath(p string) string {
	return strings.TrimPrefix(path.Clean(filepath.ToSlash(p)), "./")
}

type builder struct {
	fsys     fs.FS
	mapDir   string
	width    int
	height   int
	tilesets map[*tiled.Tileset]*Tileset
	logger   *log.Logger
}

// container rebuilds one level of the layer tree in file order. Visibility
// and opacity come from the scan so they carry Tiled's defaults for every
// layer kind, groups included.
func (b *builder) container(order []layerRef, tl []*tiled.Layer, og []*tiled.ObjectGroup, il []*tiled.ImageLayer, gr []*tiled.Group) []Layer {
	scanned := orderMatches(order, len(tl), len(og), len(il), len(gr))
	if !scanned {
		b.logger.Warn("layer order could not be recovered, using kind order")
		order = defaultOrder(len(tl), len(og), len(il), len(gr))
	}
	layers := make([]Layer, 0, len(order))
	for _, ref := range order {
		var l Layer
		switch ref.kind {
		case refTile:
			l = b.tileLayer(tl[ref.index])
		case refObject:
			l = b.objectLayer(og[ref.index])
		case refImage:
			l = b.imageLayer(il[ref.index])
		case refGroup:
			g := gr[ref.index]
			l = &Group{
				LayerInfo: LayerInfo{
					Name:       g.Name,
					Visible:    g.Visible,
					Opacity:    float64(g.Opacity),
					OffsetX:    float64(g.OffsetX),
					OffsetY:    float64(g.OffsetY),
					Properties: convertProperties(g.Properties),
				},
				Layers: b.container(ref.children, g.Layers, g.ObjectGroups, g.ImageLayers, g.Groups),
			}
		}
		if scanned {
			l.Info().Visible = ref.visible
			l.Info().Opacity = ref.opacity
		}
		layers = append(layers, l)
	}
	return layers
}

func (b *builder) tileLayer(l *tiled.Layer) *TileLayer {
	out := &TileLayer{
		LayerInfo: LayerInfo{
			Name:       l.Name,
			Visible:    l.Visible,
			Opacity:    float64(l.Opacity),
			OffsetX:    float64(l.OffsetX),
			OffsetY:    float64(l.OffsetY),
			Properties: convertProperties(l.Properties),
		},
		Width:  b.width,
		Height: b.height,
		GIDs:   make([]uint32, len(l.Tiles)),
	}
	for i, tile := range l.Tiles {
		if tile == nil || tile.IsNil() || tile.Tileset == nil {
			continue
		}
		ts, ok := b.tilesets[tile.Tileset]
		if !ok {
			continue
		}
		out.GIDs[i] = ts.FirstGID + tile.ID
	}
	return out
}

func (b *builder) objectLayer(g *tiled.ObjectGroup) *ObjectLayer {
	out := &ObjectLayer{
		LayerInfo: LayerInfo{
			Name:       g.Name,
			Visible:    g.Visible,
			Opacity:    float64(g.Opacity),
			OffsetX:    float64(g.OffsetX),
			OffsetY:    float64(g.OffsetY),
			Properties: convertProperties(g.Properties),
		},
		Objects: make([]Object, 0, len(g.Objects)),
	}
	for _, o := range g.Objects {
		out.Objects = append(out.Objects, convertObject(o))
	}
	return out
}

func convertObject(o *tiled.Object) Object {
	objType := o.Class
	if objType == "" {
		objType = o.Type //nolint:staticcheck // TMX files written before Tiled 1.9 use type=
	}
	obj := Object{
		ID:         o.ID,
		Name:       o.Name,
		Type:       objType,
		X:          o.X,
		Y:          o.Y,
		W:          o.Width,
		H:          o.Height,
		Properties: convertProperties(o.Properties),
	}
	switch {
	case len(o.Polygons) > 0 && o.Polygons[0].Points != nil:
		obj.Shape = ShapePolygon
		pts := *o.Polygons[0].Points
		obj.Polygon = make(gamemath.Polygon, 0, len(pts))
		for _, p := range pts {
			obj.Polygon = append(obj.Polygon, gamemath.Point{X: o.X + p.X, Y: o.Y + p.Y})
		}
	case len(o.Ellipses) > 0:
		obj.Shape = ShapeEllipse
	case o.Width == 0 && o.Height == 0:
		obj.Shape = ShapePoint
	default:
		obj.Shape = ShapeRect
	}
	return obj
}

func (b *builder) imageLayer(l *tiled.ImageLayer) *ImageLayer {
	out := &ImageLayer{
		LayerInfo: LayerInfo{
			Name:       l.Name,
			Visible:    l.Visible,
			Opacity:    float64(l.Opacity),
			OffsetX:    float64(l.OffsetX),
			OffsetY:    float64(l.OffsetY),
			Properties: convertProperties(l.Properties),
		},
	}
	if l.Image == nil || l.Image.Source == "" {
		return out
	}
	out.Source = fsPath(path.Join(b.mapDir, l.Image.Source))
	img, err := decodeImage(b.fsys, out.Source)
	if err != nil {
		b.logger.Warn("image layer unavailable", "layer", l.Name, "image", out.Source, "err", err)
		return out
	}
	out.Image = img
	return out
}

// harvest pulls collision shapes, the player spawn and NPCs out of the
// reserved layers.
func harvest(m *TileMap, o options, logger *log.Logger) {
	names := o.names

	if l, ok := m.LayerByName(names.CollisionLayer); ok {
		for _, obj := range objectsIn(l) {
			switch {
			case obj.Shape == ShapePolygon && len(obj.Polygon) >= 3:
				m.Collisions = append(m.Collisions, obj)
			case (obj.Shape == ShapeRect || obj.Shape == ShapeEllipse) && obj.W > 0 && obj.H > 0:
				m.Collisions = append(m.Collisions, obj)
			}
		}
	} else {
		logger.Warn("no collision layer, map has no obstacles", "layer", names.CollisionLayer)
	}

	if l, ok := m.LayerByName(names.PlayerLayer); ok {
		for _, obj := range objectsIn(l) {
			if obj.Name == names.PlayerSpawn {
				m.PlayerSpawn = gamemath.Point{X: obj.X, Y: obj.Y}
				m.HasPlayerSpawn = true
				break
			}
		}
	}
	if !m.HasPlayerSpawn {
		logger.Warn("no player spawn, using origin", "layer", names.PlayerLayer, "object", names.PlayerSpawn)
	}

	if l, ok := m.LayerByName(names.NPCLayer); ok {
		for _, obj := range objectsIn(l) {
			if !strings.HasPrefix(obj.Name, names.NPCPrefix) {
				continue
			}
			m.NPCs = append(m.NPCs, newNPC(obj, o, logger))
		}
	}
}

func newNPC(obj Object, o options, logger *log.Logger) *NPC {
	actor := movement.NewActor(obj.X, obj.Y, o.npcHitbox, o.npcSpeeds)
	actor.Grid = o.npcGrid

	sprite, _ := obj.Properties.Get(o.names.SpriteProperty)
	if raw, ok := obj.Properties.Int(o.names.FacingProperty); ok {
		d, valid := movement.DirectionFromInt(raw)
		if !valid {
			logger.Warn("npc facing out of range, facing down", "npc", obj.Name, "direction", raw)
		}
		actor.Facing = d
	}
	return &NPC{Name: obj.Name, Sprite: sprite, Actor: actor, Properties: obj.Properties}
}

// objectsIn returns the objects of l, or of every object layer below l when
// l is a group, depth-first in file order.
func objectsIn(l Layer) []Object {
	var out []Object
	walk([]Layer{l}, func(l Layer) bool {
		if ol, ok := l.(*ObjectLayer); ok {
			out = append(out, ol.Objects...)
		}
		return true
	})
	return out
}

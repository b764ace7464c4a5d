package tilemap

import (
	"github.com/automoto/tilewalk/shared/gamemath"
)

// TileMap is a loaded map. Everything except NPC actor state and the
// animated-tile cursors is read-only after Load.
type TileMap struct {
	Path                  string
	Width, Height         int // in tiles
	TileWidth, TileHeight int
	Properties            Properties

	// Layers is the root of the layer tree in file order.
	Layers []Layer
	// Tilesets are sorted by FirstGID.
	Tilesets []*Tileset

	Collisions     []Object
	PlayerSpawn    gamemath.Point
	HasPlayerSpawn bool
	NPCs           []*NPC

	Animations *AnimatedTiles

	names Names
}

// PixelWidth is the world width in pixels.
func (m *TileMap) PixelWidth() int { return m.Width * m.TileWidth }

// PixelHeight is the world height in pixels.
func (m *TileMap) PixelHeight() int { return m.Height * m.TileHeight }

// Names returns the reserved names the map was loaded with.
func (m *TileMap) Names() Names { return m.names }

// TilesetForGID returns the tileset with the largest FirstGID <= gid, or nil
// for gid 0 and ids below every tileset.
func (m *TileMap) TilesetForGID(gid uint32) *Tileset {
	if gid == 0 {
		return nil
	}
	for i := len(m.Tilesets) - 1; i >= 0; i-- {
		if gid >= m.Tilesets[i].FirstGID {
			return m.Tilesets[i]
		}
	}
	return nil
}

// Blocked reports whether hitbox intersects any collision object.
func (m *TileMap) Blocked(hitbox gamemath.Rect) bool {
	for _, obj := range m.Collisions {
		if obj.Intersects(hitbox) {
			return true
		}
	}
	return false
}

// LayerByName finds the first layer or group called name, depth-first.
func (m *TileMap) LayerByName(name string) (Layer, bool) {
	var found Layer
	walk(m.Layers, func(l Layer) bool {
		if l.Info().Name == name {
			found = l
			return false
		}
		return true
	})
	return found, found != nil
}

// ObjectByName returns the first object called name in any object layer,
// depth-first in file order. A miss is not an error.
func (m *TileMap) ObjectByName(name string) (Object, bool) {
	var (
		found Object
		ok    bool
	)
	walk(m.Layers, func(l Layer) bool {
		ol, isObj := l.(*ObjectLayer)
		if !isObj {
			return true
		}
		for _, o := range ol.Objects {
			if o.Name == name {
				found, ok = o, true
				return false
			}
		}
		return true
	})
	return found, ok
}

// ObjectsByType returns every object whose type (class) is typ, depth-first
// in file order. It returns nil when nothing matches.
func (m *TileMap) ObjectsByType(typ string) []Object {
	var out []Object
	walk(m.Layers, func(l Layer) bool {
		if ol, ok := l.(*ObjectLayer); ok {
			for _, o := range ol.Objects {
				if o.Type == typ {
					out = append(out, o)
				}
			}
		}
		return true
	})
	return out
}

// NPCByName returns the NPC spawned from the object called name.
func (m *TileMap) NPCByName(name string) (*NPC, bool) {
	for _, n := range m.NPCs {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Close releases the animated-tile registry and decoded images. The map must
// not be rendered afterwards.
func (m *TileMap) Close() {
	if m.Animations != nil {
		m.Animations.Reset()
		m.Animations = nil
	}
	for _, ts := range m.Tilesets {
		ts.Image = nil
		ts.TileImages = nil
	}
	walk(m.Layers, func(l Layer) bool {
		if il, ok := l.(*ImageLayer); ok {
			il.Image = nil
		}
		return true
	})
}

// walk visits layers depth-first in file order, descending into groups
// after visiting the group itself. Returning false stops the walk.
func walk(layers []Layer, visit func(Layer) bool) bool {
	for _, l := range layers {
		if !visit(l) {
			return false
		}
		if g, ok := l.(*Group); ok {
			if !walk(g.Layers, visit) {
				return false
			}
		}
	}
	return true
}

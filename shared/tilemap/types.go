// Package tilemap loads Tiled maps into an immutable-after-load model shared by
// movement, camera and rendering. It has no dependencies on ebitengine or
// donburi: images are kept as image.Image and converted by the caller.
package tilemap

import (
	"image"
	"strconv"

	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/movement"
)

// Layer is one of *TileLayer, *ObjectLayer, *ImageLayer or *Group.
type Layer interface {
	Info() *LayerInfo
	layer()
}

// LayerInfo is shared by every layer variant.
type LayerInfo struct {
	Name       string
	Visible    bool
	Opacity    float64
	OffsetX    float64
	OffsetY    float64
	Properties Properties
}

func (l *LayerInfo) Info() *LayerInfo { return l }

type TileLayer struct {
	LayerInfo
	Width, Height int
	// GIDs is row-major, 0 means empty.
	GIDs []uint32
}

type ObjectLayer struct {
	LayerInfo
	Objects []Object
}

type ImageLayer struct {
	LayerInfo
	Source string
	Image  image.Image // nil when the image could not be decoded
}

// Group nests layers. A hidden group hides all of its descendants.
type Group struct {
	LayerInfo
	Layers []Layer
}

func (*TileLayer) layer()   {}
func (*ObjectLayer) layer() {}
func (*ImageLayer) layer()  {}
func (*Group) layer()       {}

// Shape identifies the geometry of an Object.
type Shape int

const (
	ShapeRect Shape = iota
	ShapePoint
	ShapePolygon
	ShapeEllipse
)

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapePoint:
		return "point"
	case ShapePolygon:
		return "polygon"
	case ShapeEllipse:
		return "ellipse"
	}
	return "shape(" + strconv.Itoa(int(s)) + ")"
}

// Object is a map object. Polygon points are absolute world coordinates.
type Object struct {
	ID         uint32
	Name       string
	Type       string
	Shape      Shape
	X, Y       float64
	W, H       float64
	Polygon    gamemath.Polygon
	Properties Properties
}

// Bounds returns the axis-aligned extent of the object.
func (o Object) Bounds() gamemath.Rect {
	if o.Shape == ShapePolygon {
		return o.Polygon.Bounds()
	}
	return gamemath.Rect{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// Intersects tests r against the object's collision shape. Points never
// intersect; ellipses are treated as their bounding rectangle.
func (o Object) Intersects(r gamemath.Rect) bool {
	switch o.Shape {
	case ShapePolygon:
		return gamemath.RectIntersectsPolygon(r, o.Polygon)
	case ShapeRect, ShapeEllipse:
		return gamemath.RectIntersectsRect(r, o.Bounds())
	}
	return false
}

// Properties holds Tiled custom properties as their raw string values.
type Properties map[string]string

func (p Properties) Get(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// Int returns the named property as an int. ok is false when the property is
// absent or not an integer.
func (p Properties) Int(name string) (int, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p Properties) Bool(name string) (bool, bool) {
	v, ok := p[name]
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// Tileset owns a contiguous range of global tile ids starting at FirstGID.
type Tileset struct {
	Name       string
	FirstGID   uint32
	TileCount  int
	Columns    int
	TileWidth  int
	TileHeight int
	Margin     int
	Spacing    int

	ImagePath string
	// Image is nil when the sheet failed to load; tiles from this tileset
	// then draw nothing.
	Image image.Image
	// TileImages holds per-tile images of image-collection tilesets, keyed by
	// local id.
	TileImages map[uint32]image.Image
}

// LocalID converts a global id owned by ts into its local index.
func (ts *Tileset) LocalID(gid uint32) uint32 {
	return gid - ts.FirstGID
}

// SourceRect returns the pixel rectangle of a local tile within the sheet.
func (ts *Tileset) SourceRect(local uint32) image.Rectangle {
	cols := ts.Columns
	if cols <= 0 {
		cols = 1
	}
	col := int(local) % cols
	row := int(local) / cols
	x := ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + row*(ts.TileHeight+ts.Spacing)
	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight)
}

// NPC is a non-player actor materialised from the NPC object layer. The map
// owns it; the movement system mutates its Actor during update.
type NPC struct {
	Name       string
	Sprite     string
	Actor      *movement.Actor
	Properties Properties
}

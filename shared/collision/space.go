// Package collision indexes a map's collision objects in a resolv space so
// movement checks only test the shapes near the actor.
package collision

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/tilemap"
)

// Tag marks every static shape added to a Space.
const Tag = "solid"

// DefaultCellSize matches the tile grid.
const DefaultCellSize = 16

// Space answers movement.Blocker queries using resolv cells as the broad
// phase and the exact tilemap shapes as the narrow phase.
type Space struct {
	space   *resolv.Space
	origin  gamemath.Point
	objects []tilemap.Object
	probe   *resolv.Object
}

// NewSpace builds a space covering the map and every collision shape, with
// one spare cell on each side. resolv cells start at zero, so shapes are
// shifted by origin when they are indexed.
func NewSpace(m *tilemap.TileMap, cellSize int) *Space {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	minX, minY := 0.0, 0.0
	maxX, maxY := float64(m.PixelWidth()), float64(m.PixelHeight())
	for _, o := range m.Collisions {
		b := o.Bounds()
		minX, minY = math.Min(minX, b.X), math.Min(minY, b.Y)
		maxX, maxY = math.Max(maxX, b.X+b.W), math.Max(maxY, b.Y+b.H)
	}
	cell := float64(cellSize)
	origin := gamemath.Point{X: math.Floor(minX/cell)*cell - cell, Y: math.Floor(minY/cell)*cell - cell}
	w := int(math.Ceil(maxX-origin.X)) + 2*cellSize
	h := int(math.Ceil(maxY-origin.Y)) + 2*cellSize

	s := &Space{
		space:   resolv.NewSpace(w, h, cellSize, cellSize),
		origin:  origin,
		objects: m.Collisions,
	}
	for i, o := range m.Collisions {
		b := o.Bounds()
		obj := resolv.NewObject(b.X-origin.X, b.Y-origin.Y, b.W, b.H, Tag)
		obj.Data = i
		s.space.Add(obj)
	}
	s.probe = resolv.NewObject(0, 0, 1, 1)
	return s
}

// Blocked reports whether hitbox intersects any indexed shape.
func (s *Space) Blocked(hitbox gamemath.Rect) bool {
	for _, i := range s.candidates(hitbox) {
		if s.objects[i].Intersects(hitbox) {
			return true
		}
	}
	return false
}

// Near returns the collision objects whose cells touch r.
func (s *Space) Near(r gamemath.Rect) []tilemap.Object {
	idx := s.candidates(r)
	out := make([]tilemap.Object, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.objects[i])
	}
	return out
}

// Len is the number of indexed shapes.
func (s *Space) Len() int { return len(s.objects) }

// Resolv exposes the underlying space for debug drawing.
func (s *Space) Resolv() *resolv.Space { return s.space }

// candidates runs the broad phase. The probe is grown by one pixel on every
// side because resolv maps an object to cells using its integer extent,
// which can drop a fractional overlap at a cell boundary.
func (s *Space) candidates(r gamemath.Rect) []int {
	s.probe.X = math.Floor(r.X-s.origin.X) - 1
	s.probe.Y = math.Floor(r.Y-s.origin.Y) - 1
	s.probe.W = math.Ceil(r.W) + 3
	s.probe.H = math.Ceil(r.H) + 3

	s.space.Add(s.probe)
	defer s.space.Remove(s.probe)

	hit := s.probe.Check(0, 0, Tag)
	if hit == nil {
		return nil
	}
	seen := make(map[int]bool, len(hit.Objects))
	out := make([]int, 0, len(hit.Objects))
	for _, obj := range hit.Objects {
		i, ok := obj.Data.(int)
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out
}

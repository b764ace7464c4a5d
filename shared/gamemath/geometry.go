// Package gamemath holds the pure geometry used for collision gating and grid
// alignment. It has no dependencies on ebitengine, donburi, or resolv.
package gamemath

// Point is a position in world pixels.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Polygon is a closed ring of points. The last point connects back to the first.
type Polygon []Point

// Bounds returns the smallest Rect enclosing every vertex.
func (poly Polygon) Bounds() Rect {
	if len(poly) == 0 {
		return Rect{}
	}
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY
	for _, p := range poly[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Translate returns a copy of poly moved by (dx, dy).
func (poly Polygon) Translate(dx, dy float64) Polygon {
	out := make(Polygon, len(poly))
	for i, p := range poly {
		out[i] = Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// PointInPolygon casts a horizontal ray from p towards +X and counts the edges
// it crosses. An edge counts when its Y span straddles p.Y (half-open, so a
// shared vertex is counted once) and the crossing lies strictly right of p.X.
// Odd means inside. For an axis-aligned ring, points on the left or top
// (minimum Y) edge report inside and points on the right or bottom edge
// report outside. Degenerate and self-intersecting rings follow the same
// crossing rule.
func PointInPolygon(p Point, poly Polygon) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		crossX := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if p.X < crossX {
			inside = !inside
		}
	}
	return inside
}

// RectIntersectsPolygon reports whether any corner of r is inside poly or any
// vertex of poly lies within r (edges included).
//
// This is a containment test, not a separating-axis test: a rectangle that
// cuts through a polygon edge without enclosing a vertex, and without a
// corner inside the polygon, reports false. Movement gating relies on this
// permissiveness.
func RectIntersectsPolygon(r Rect, poly Polygon) bool {
	if len(poly) < 3 {
		return false
	}
	for _, c := range r.Corners() {
		if PointInPolygon(c, poly) {
			return true
		}
	}
	for _, v := range poly {
		if r.Contains(v) {
			return true
		}
	}
	return false
}

// RectIntersectsRect reports whether a and b overlap on open intervals.
// Rectangles that only share an edge or a corner do not intersect.
func RectIntersectsRect(a, b Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W &&
		a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

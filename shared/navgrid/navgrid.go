// Package navgrid plans tile-by-tile routes for actors across a map's
// collision geometry.
package navgrid

import (
	"math"

	astar "github.com/beefsack/go-astar"

	"github.com/automoto/tilewalk/shared/gamemath"
	"github.com/automoto/tilewalk/shared/movement"
)

// Grid marks which cells an actor can stand in.
type Grid struct {
	Width, Height int
	CellSize      float64
	nodes         [][]*node
}

// node implements astar.Pather.
type node struct {
	x, y     int
	walkable bool
	grid     *Grid
}

var neighbours = [4]struct{ dx, dy int }{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func (n *node) PathNeighbors() []astar.Pather {
	out := make([]astar.Pather, 0, 4)
	for _, d := range neighbours {
		nx, ny := n.x+d.dx, n.y+d.dy
		if nx < 0 || nx >= n.grid.Width || ny < 0 || ny >= n.grid.Height {
			continue
		}
		if next := n.grid.nodes[ny][nx]; next.walkable {
			out = append(out, next)
		}
	}
	return out
}

func (n *node) PathNeighborCost(astar.Pather) float64 { return 1 }

// PathEstimatedCost is the Manhattan distance, exact on an open 4-way grid.
func (n *node) PathEstimatedCost(to astar.Pather) float64 {
	t := to.(*node)
	return math.Abs(float64(t.x-n.x)) + math.Abs(float64(t.y-n.y))
}

// New samples the world in cells of cellSize pixels. A cell is walkable when
// hitbox, placed with the actor standing on the cell's top-left corner, is
// not blocked.
func New(b movement.Blocker, worldW, worldH, cellSize float64, hitbox gamemath.Rect) *Grid {
	if cellSize <= 0 {
		cellSize = movement.DefaultGrid
	}
	g := &Grid{
		Width:    int(worldW / cellSize),
		Height:   int(worldH / cellSize),
		CellSize: cellSize,
	}
	g.nodes = make([][]*node, g.Height)
	for y := 0; y < g.Height; y++ {
		g.nodes[y] = make([]*node, g.Width)
		for x := 0; x < g.Width; x++ {
			box := hitbox.Translate(float64(x)*cellSize, float64(y)*cellSize)
			g.nodes[y][x] = &node{
				x:        x,
				y:        y,
				walkable: b == nil || !b.Blocked(box),
				grid:     g,
			}
		}
	}
	return g
}

// Walkable reports whether cell (x, y) can be stood in. Cells outside the
// grid are not walkable.
func (g *Grid) Walkable(x, y int) bool {
	if x < 0 || x >= g.Width || y < 0 || y >= g.Height {
		return false
	}
	return g.nodes[y][x].walkable
}

// CellToWorld returns the top-left corner of a cell.
func (g *Grid) CellToWorld(x, y int) gamemath.Point {
	return gamemath.Point{X: float64(x) * g.CellSize, Y: float64(y) * g.CellSize}
}

// WorldToCell returns the cell containing p, clamped to the grid.
func (g *Grid) WorldToCell(p gamemath.Point) (int, int) {
	x, y := gamemath.CellOf(p, g.CellSize)
	return clampInt(x, 0, g.Width-1), clampInt(y, 0, g.Height-1)
}

// Path plans a route between the cells containing from and to. The result
// lists cell corners in travel order, excluding the starting cell. ok is
// false when either end is blocked or no route exists.
func (g *Grid) Path(from, to gamemath.Point) ([]gamemath.Point, bool) {
	if g.Width == 0 || g.Height == 0 {
		return nil, false
	}
	sx, sy := g.WorldToCell(from)
	gx, gy := g.WorldToCell(to)
	start, goal := g.nodes[sy][sx], g.nodes[gy][gx]
	if !start.walkable || !goal.walkable {
		return nil, false
	}
	if start == goal {
		return []gamemath.Point{}, true
	}

	path, _, found := astar.Path(start, goal)
	if !found {
		return nil, false
	}
	// go-astar returns the goal first.
	route := make([]gamemath.Point, 0, len(path)-1)
	for i := len(path) - 2; i >= 0; i-- {
		n := path[i].(*node)
		route = append(route, g.CellToWorld(n.x, n.y))
	}
	return route, true
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
